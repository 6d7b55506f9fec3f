// Package aggregation combines accepted review sentiment into per-dimension
// project scores. Each sample is weighted by reviewer expertise, discounted
// for artificial reviews, and boosted when the dimension belongs to the
// reviewer's home domain.
package aggregation

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/c360studio/semreview/ontology"
	"github.com/c360studio/semreview/workflow"
)

// neutralScore fills dimensions no accepted review rated.
const neutralScore = 3.0

const (
	defaultWeight    = 1.0
	artificialFactor = 0.7
	relevanceFactor  = 1.5
)

// expertiseWeights maps expertise level IDs to their base sample weight.
// Unknown levels weigh defaultWeight.
var expertiseWeights = map[string]float64{
	"expert":   3.0,
	"seasoned": 2.5,
	"talented": 2.0,
	"skilled":  1.5,
	"beginner": 1.0,
}

// Aggregator computes weighted dimension scores against the live graph.
type Aggregator struct {
	graph *ontology.Graph
}

// New creates an Aggregator.
func New(graph *ontology.Graph) *Aggregator {
	return &Aggregator{graph: graph}
}

// Aggregate returns the weighted average score for every dimension currently
// in the graph. Only accepted reviews contribute; a review contributes to a
// dimension only when its sentiment scores contain that dimension. Dimensions
// with no samples score a neutral 3.0, so the result always has exactly one
// entry per graph dimension.
func (a *Aggregator) Aggregate(reviews []*workflow.Review) map[string]float64 {
	dims := a.graph.ImpactDimensions()
	scores := make(map[string]float64, len(dims))

	relevant := a.relevantSets(reviews)

	for _, dim := range dims {
		var weightedSum, totalWeight float64
		for _, review := range reviews {
			if !review.IsAccepted {
				continue
			}
			score, ok := review.SentimentScores[dim.ID]
			if !ok {
				continue
			}

			weight := expertiseWeight(review.ExpertiseLevel)
			if review.IsArtificial {
				weight *= artificialFactor
			}
			if relevant[review.Domain][dim.ID] {
				weight *= relevanceFactor
			}

			weightedSum += score * weight
			totalWeight += weight
		}

		if totalWeight == 0 {
			scores[dim.ID] = neutralScore
			continue
		}
		scores[dim.ID] = round1(weightedSum / totalWeight)
	}

	return scores
}

// Summary returns the raw (unweighted) sample distribution per graph
// dimension for report metadata. Dimensions with no samples report zeros.
func (a *Aggregator) Summary(reviews []*workflow.Review) map[string]workflow.DimensionStat {
	dims := a.graph.ImpactDimensions()
	out := make(map[string]workflow.DimensionStat, len(dims))

	for _, dim := range dims {
		var samples []float64
		for _, review := range reviews {
			if !review.IsAccepted {
				continue
			}
			if score, ok := review.SentimentScores[dim.ID]; ok {
				samples = append(samples, score)
			}
		}

		if len(samples) == 0 {
			out[dim.ID] = workflow.DimensionStat{}
			continue
		}

		mean, _ := stats.Mean(samples)
		median, _ := stats.Median(samples)
		stddev, _ := stats.StandardDeviation(samples)
		out[dim.ID] = workflow.DimensionStat{
			Mean:    mean,
			Median:  median,
			StdDev:  stddev,
			Samples: len(samples),
		}
	}

	return out
}

// Overall reduces aggregated dimension scores to a single project score.
func (a *Aggregator) Overall(scores map[string]float64) float64 {
	return Overall(scores)
}

// Overall reduces aggregated dimension scores to a single project score:
// their mean, rounded to one decimal. An empty score map yields the neutral
// default.
func Overall(scores map[string]float64) float64 {
	if len(scores) == 0 {
		return neutralScore
	}
	var sum float64
	for _, score := range scores {
		sum += score
	}
	return round1(sum / float64(len(scores)))
}

// relevantSets resolves each distinct review domain's relevant dimension set
// once per call.
func (a *Aggregator) relevantSets(reviews []*workflow.Review) map[string]map[string]bool {
	sets := make(map[string]map[string]bool)
	for _, review := range reviews {
		if review.Domain == "" {
			continue
		}
		if _, ok := sets[review.Domain]; ok {
			continue
		}
		ids := a.graph.RelevantDimensionsForDomain(review.Domain)
		set := make(map[string]bool, len(ids))
		for _, id := range ids {
			set[id] = true
		}
		sets[review.Domain] = set
	}
	return sets
}

func expertiseWeight(level string) float64 {
	if w, ok := expertiseWeights[level]; ok {
		return w
	}
	return defaultWeight
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
