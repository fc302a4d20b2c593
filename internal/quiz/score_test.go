package quiz

import "testing"

func TestScore(t *testing.T) {
	qs := []Question{
		{ID: "q1", Correct: "A"},
		{ID: "q2", Correct: "B"},
		{ID: "q3", Correct: "C"},
	}
	tests := []struct {
		name     string
		selected map[string]string
		correct  int
		pct      int
	}{
		{"all correct", map[string]string{"q1": "A", "q2": "B", "q3": "C"}, 3, 100},
		{"none answered", map[string]string{}, 0, 0},
		{"two of three", map[string]string{"q1": "A", "q2": "B", "q3": "A"}, 2, 67},
		{"one of three", map[string]string{"q1": "A", "q2": "C"}, 1, 33},
		{"unknown ids ignored", map[string]string{"zz": "A"}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Score(qs, tt.selected)
			if res.Correct != tt.correct || res.Percentage != tt.pct {
				t.Errorf("Score = %d correct %d%%, want %d correct %d%%", res.Correct, res.Percentage, tt.correct, tt.pct)
			}
			if res.Correct+res.Incorrect() != res.Total || res.Total != len(qs) {
				t.Errorf("correct %d + incorrect %d != total %d", res.Correct, res.Incorrect(), res.Total)
			}
			if len(res.Breakdown) != len(qs) {
				t.Fatalf("breakdown has %d entries, want %d", len(res.Breakdown), len(qs))
			}
			for i, r := range res.Breakdown {
				if r.Question.ID != qs[i].ID {
					t.Errorf("breakdown[%d] = %s, want question order kept", i, r.Question.ID)
				}
			}
		})
	}
}

func TestScoreEmpty(t *testing.T) {
	res := Score(nil, nil)
	if res.Total != 0 || res.Percentage != 0 || res.Correct != 0 {
		t.Errorf("Score(nil) = %+v, want zero", res)
	}
}

func TestScoreSkippedReview(t *testing.T) {
	res := Score([]Question{{ID: "q1", Correct: "A"}, {ID: "q2", Correct: "A"}}, map[string]string{"q2": "B"})
	if !res.Breakdown[0].Skipped() || res.Breakdown[0].IsCorrect {
		t.Errorf("q1 review = %+v, want skipped", res.Breakdown[0])
	}
	if res.Breakdown[1].Skipped() || res.Breakdown[1].Chosen != "B" {
		t.Errorf("q2 review = %+v, want chosen B", res.Breakdown[1])
	}
}

func TestHeadline(t *testing.T) {
	tests := []struct {
		pct  int
		want string
	}{
		{100, "Outstanding!"},
		{80, "Outstanding!"},
		{79, "Good Job!"},
		{60, "Good Job!"},
		{59, "Keep Practicing!"},
		{0, "Keep Practicing!"},
	}
	for _, tt := range tests {
		if got := (ScoreResult{Percentage: tt.pct}).Headline(); got != tt.want {
			t.Errorf("Headline(%d) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestCollectionFor(t *testing.T) {
	for _, topic := range Topics() {
		if _, ok := CollectionFor(topic); !ok {
			t.Errorf("topic %q has no collection", topic)
		}
	}
	if c, _ := CollectionFor("Computer Networking"); c != "cn_mcqs" {
		t.Errorf("CollectionFor(Computer Networking) = %q, want cn_mcqs", c)
	}
	if _, ok := CollectionFor(""); ok {
		t.Error("empty topic mapped to a collection")
	}
}

func TestOptionText(t *testing.T) {
	q := Question{Options: []Option{{Key: "A", Text: "TCP"}, {Key: "B", Text: "UDP"}}}
	if got, ok := q.OptionText("B"); !ok || got != "UDP" {
		t.Errorf("OptionText(B) = %q, %v", got, ok)
	}
	if _, ok := q.OptionText("C"); ok {
		t.Error("OptionText(C) found a missing option")
	}
}
