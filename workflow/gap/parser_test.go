package gap

import "testing"

func TestParseGenerated(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		wantText       string
		wantConfidence int
	}{
		{
			name:           "full structured response",
			content:        "REVIEW: Strong technical foundation with clear scaling limits.\nCONFIDENCE: 85",
			wantText:       "Strong technical foundation with clear scaling limits.",
			wantConfidence: 85,
		},
		{
			name:           "missing confidence defaults",
			content:        "REVIEW: Looks solid overall.",
			wantText:       "Looks solid overall.",
			wantConfidence: DefaultConfidence,
		},
		{
			name:           "missing review prefix",
			content:        "The project shows real promise.\nCONFIDENCE: 72",
			wantText:       "The project shows real promise.",
			wantConfidence: 72,
		},
		{
			name:           "bare text",
			content:        "Just a plain review without markers.",
			wantText:       "Just a plain review without markers.",
			wantConfidence: DefaultConfidence,
		},
		{
			name:           "confidence above 100 capped",
			content:        "REVIEW: Over-enthusiastic.\nCONFIDENCE: 150",
			wantText:       "Over-enthusiastic.",
			wantConfidence: 100,
		},
		{
			name:           "multiline review preserved",
			content:        "REVIEW: First paragraph.\n\nSecond paragraph.\nCONFIDENCE: 88",
			wantText:       "First paragraph.\n\nSecond paragraph.",
			wantConfidence: 88,
		},
		{
			name:           "lowercase markers accepted",
			content:        "review: Lowercase but well formed.\nconfidence: 50",
			wantText:       "Lowercase but well formed.",
			wantConfidence: 50,
		},
		{
			name:           "mixed-case confidence marker",
			content:        "REVIEW: Capable team, narrow scope.\nConfidence: 64",
			wantText:       "Capable team, narrow scope.",
			wantConfidence: 64,
		},
		{
			name:           "empty content",
			content:        "",
			wantText:       "",
			wantConfidence: DefaultConfidence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseGenerated(tt.content)
			if got.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", got.Text, tt.wantText)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %d, want %d", got.Confidence, tt.wantConfidence)
			}
		})
	}
}
