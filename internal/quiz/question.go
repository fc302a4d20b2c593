// Package quiz implements the interview-practice quiz: loading a topic's
// question set, recording answers, scoring and persisting the attempt.
package quiz

import "context"

// Option is one answer choice of a question.
type Option struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Question is a multiple-choice question as stored in a topic's collection.
// Options keep the order of the source document.
type Question struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"q"`
	Options []Option `json:"options"`
	Correct string   `json:"correct"`
}

// OptionText returns the text of the option with the given key.
func (q Question) OptionText(key string) (string, bool) {
	for _, o := range q.Options {
		if o.Key == key {
			return o.Text, true
		}
	}
	return "", false
}

// QuestionBank reads question collections.
type QuestionBank interface {
	Questions(ctx context.Context, collection string) ([]Question, error)
}

// HistoryStore appends completed attempts.
type HistoryStore interface {
	Record(ctx context.Context, rec HistoryRecord) error
}
