package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// DefaultBucket is the KV bucket analysis records live in.
const DefaultBucket = "semreview-results"

// NATSStore persists records in a JetStream key-value bucket so a fleet of
// analyzers shares one result set.
type NATSStore struct {
	kv jetstream.KeyValue
}

// NewNATSStore binds to the bucket, creating it when absent. An empty bucket
// name uses DefaultBucket.
func NewNATSStore(ctx context.Context, js jetstream.JetStream, bucket string) (*NATSStore, error) {
	if bucket == "" {
		bucket = DefaultBucket
	}

	kv, err := js.KeyValue(ctx, bucket)
	if err != nil {
		kv, err = js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
			Bucket:      bucket,
			Description: "semreview analysis results",
			History:     5,
		})
		if err != nil {
			return nil, fmt.Errorf("create results bucket %s: %w", bucket, err)
		}
	}

	return &NATSStore{kv: kv}, nil
}

// Put writes the record, replacing any previous run for the same project.
func (s *NATSStore) Put(ctx context.Context, rec *Record) error {
	if rec == nil || rec.Result == nil {
		return fmt.Errorf("record with a result is required")
	}
	if err := checkID(rec.ProjectID); err != nil {
		return err
	}
	if rec.SavedAt.IsZero() {
		rec.SavedAt = time.Now().UTC()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if _, err := s.kv.Put(ctx, rec.ProjectID, data); err != nil {
		return fmt.Errorf("store record: %w", err)
	}
	return nil
}

// Get loads the record for a project id.
func (s *NATSStore) Get(ctx context.Context, projectID string) (*Record, error) {
	if err := checkID(projectID); err != nil {
		return nil, err
	}

	entry, err := s.kv.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(entry.Value(), &rec); err != nil {
		return nil, fmt.Errorf("unmarshal record %s: %w", projectID, err)
	}
	return &rec, nil
}

// List returns the project ids with stored records, sorted.
func (s *NATSStore) List(ctx context.Context) ([]string, error) {
	keys, err := s.kv.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list record keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// Delete removes the record for a project id.
func (s *NATSStore) Delete(ctx context.Context, projectID string) error {
	if err := checkID(projectID); err != nil {
		return err
	}

	// KV Delete tombstones silently; probe first so a missing record
	// surfaces as ErrNotFound like the file backend.
	if _, err := s.kv.Get(ctx, projectID); err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get record: %w", err)
	}
	if err := s.kv.Delete(ctx, projectID); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}
