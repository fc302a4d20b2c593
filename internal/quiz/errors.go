package quiz

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownTopic    = errors.New("topic has no question collection")
	ErrNoQuestions     = errors.New("question collection is empty")
	ErrSuperseded      = errors.New("load superseded by a newer load")
	ErrNotInProgress   = errors.New("quiz is not in progress")
	ErrUnknownQuestion = errors.New("question is not part of this quiz")
)

// LoadError reports why a topic's questions could not be loaded.
type LoadError struct {
	Topic string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %q: %v", e.Topic, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
