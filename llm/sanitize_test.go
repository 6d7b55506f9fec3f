package llm

import "testing"

func TestStripReasoning(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no tags",
			input: "This project shows strong technical execution.",
			want:  "This project shows strong technical execution.",
		},
		{
			name:  "think tag",
			input: "<think>Let me consider the architecture first.</think>Solid choice of stack.",
			want:  "Solid choice of stack.",
		},
		{
			name:  "thinking tag multiline",
			input: "<thinking>\nStep 1: read\nStep 2: judge\n</thinking>\nREVIEW: Good work.\nCONFIDENCE: 90",
			want:  "\nREVIEW: Good work.\nCONFIDENCE: 90",
		},
		{
			name:  "reasoning tag",
			input: "<reasoning>weighing options</reasoning>{\"innovation\": 4.0}",
			want:  "{\"innovation\": 4.0}",
		},
		{
			name:  "internal tag",
			input: "<internal>scratch notes</internal>business",
			want:  "business",
		},
		{
			name:  "multiple blocks",
			input: "<think>a</think>first<think>b</think>second",
			want:  "firstsecond",
		},
		{
			name:  "unclosed tag left alone",
			input: "<think>never closed so kept",
			want:  "<think>never closed so kept",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripReasoning(tt.input); got != tt.want {
				t.Errorf("StripReasoning(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
