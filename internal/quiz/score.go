package quiz

import "math"

// Pass marks the percentage from which an attempt is celebrated.
const Pass = 60

// Review is the outcome of one question in a finished attempt.
type Review struct {
	Question  Question `json:"question"`
	Chosen    string   `json:"chosen"` // empty when skipped
	IsCorrect bool     `json:"isCorrect"`
}

// Skipped reports whether the question was left unanswered.
func (r Review) Skipped() bool { return r.Chosen == "" }

// ScoreResult is computed once when an attempt finishes.
type ScoreResult struct {
	Correct    int      `json:"correct"`
	Total      int      `json:"total"`
	Percentage int      `json:"percentage"`
	Breakdown  []Review `json:"breakdown"`
}

// Incorrect counts wrong and skipped answers.
func (r ScoreResult) Incorrect() int { return r.Total - r.Correct }

// Headline is the banner shown above the result.
func (r ScoreResult) Headline() string {
	switch {
	case r.Percentage >= 80:
		return "Outstanding!"
	case r.Percentage >= Pass:
		return "Good Job!"
	default:
		return "Keep Practicing!"
	}
}

// Score compares each question's recorded selection with its correct key,
// in question order. An empty question set scores zero.
func Score(questions []Question, selected map[string]string) ScoreResult {
	res := ScoreResult{
		Total:     len(questions),
		Breakdown: make([]Review, 0, len(questions)),
	}
	for _, q := range questions {
		chosen, answered := selected[q.ID]
		ok := answered && chosen == q.Correct
		if ok {
			res.Correct++
		}
		res.Breakdown = append(res.Breakdown, Review{Question: q, Chosen: chosen, IsCorrect: ok})
	}
	if res.Total > 0 {
		res.Percentage = int(math.Round(100 * float64(res.Correct) / float64(res.Total)))
	}
	return res
}
