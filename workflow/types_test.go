package workflow

import "testing"

func TestStateCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from State
		to   State
		want bool
	}{
		{"created to classifying", StateCreated, StateClassifying, true},
		{"classifying to filtering", StateClassifying, StateFiltering, true},
		{"filtering to scoring", StateFiltering, StateScoringHuman, true},
		{"scoring to gaps", StateScoringHuman, StateFillingGaps, true},
		{"gaps to aggregating", StateFillingGaps, StateAggregating, true},
		{"aggregating to synthesizing", StateAggregating, StateSynthesizing, true},
		{"synthesizing to completed", StateSynthesizing, StateCompleted, true},
		{"created to failed", StateCreated, StateFailed, true},
		{"synthesizing to failed", StateSynthesizing, StateFailed, true},
		{"no stage skipping", StateCreated, StateFiltering, false},
		{"no going back", StateFiltering, StateClassifying, false},
		{"completed is terminal", StateCompleted, StateFailed, false},
		{"failed is terminal", StateFailed, StateClassifying, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestStateIsTerminal(t *testing.T) {
	for _, state := range []State{StateCreated, StateClassifying, StateFiltering, StateScoringHuman, StateFillingGaps, StateAggregating, StateSynthesizing} {
		if state.IsTerminal() {
			t.Errorf("%s should not be terminal", state)
		}
	}
	for _, state := range []State{StateCompleted, StateFailed} {
		if !state.IsTerminal() {
			t.Errorf("%s should be terminal", state)
		}
	}
}

func TestStateStageLabels(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateCreated, ""},
		{StateClassifying, "classify"},
		{StateFiltering, "filter"},
		{StateScoringHuman, "sentiment"},
		{StateFillingGaps, "gapfill"},
		{StateAggregating, "aggregate"},
		{StateSynthesizing, "narrative"},
		{StateCompleted, ""},
		{StateFailed, ""},
	}
	for _, tt := range tests {
		if got := tt.state.Stage(); got != tt.want {
			t.Errorf("Stage(%s) = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestProjectFullDescription(t *testing.T) {
	p := &Project{
		Name:        "Cluster Billing",
		Description: "Usage based billing for kubernetes.",
		WorkDone:    "Prototype in staging.",
	}
	want := "Project Name: Cluster Billing\n\nProject Description: Usage based billing for kubernetes.\n\nWork Done So Far: Prototype in staging."
	if got := p.FullDescription(); got != want {
		t.Errorf("FullDescription() = %q, want %q", got, want)
	}
}

func TestProjectAcceptedReviews(t *testing.T) {
	a := &Review{ReviewerName: "a", IsAccepted: true}
	b := &Review{ReviewerName: "b"}
	c := &Review{ReviewerName: "c", IsAccepted: true}
	p := &Project{Reviews: []*Review{a, b, c}}

	accepted := p.AcceptedReviews()
	if len(accepted) != 2 {
		t.Fatalf("len(accepted) = %d, want 2", len(accepted))
	}
	if accepted[0] != a || accepted[1] != c {
		t.Errorf("accepted = [%s %s], want [a c]", accepted[0].ReviewerName, accepted[1].ReviewerName)
	}
}
