package quiz

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is the phase of a quiz session.
type State int

const (
	Idle State = iota
	Loading
	InProgress
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case InProgress:
		return "in_progress"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *State) UnmarshalText(text []byte) error {
	for _, st := range []State{Idle, Loading, InProgress, Finished} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown quiz state %q", text)
}

// HistoryRecord is the document written for a finished attempt.
type HistoryRecord struct {
	ID         string
	Topic      string
	Date       string // M/D/YYYY, as shown in the session history table
	Score      string // e.g. "80%"
	Percentage int
	Correct    int
	Total      int
	UserID     string
	Timestamp  time.Time
}

// View is a snapshot of the session for rendering.
type View struct {
	State    State        `json:"state"`
	Topic    string       `json:"topic"`
	Index    int          `json:"index"`
	Total    int          `json:"total"`
	Question *Question    `json:"question,omitempty"`
	Selected string       `json:"selected,omitempty"`
	IsLast   bool         `json:"isLast"`
	Result   *ScoreResult `json:"result,omitempty"`
}

// Engine runs one quiz session. A fresh Load starts a new session.
type Engine struct {
	bank       QuestionBank
	history    HistoryStore
	celebrator Celebrator
	log        *zap.Logger
	now        func() time.Time

	mu        sync.Mutex
	gen       uint64
	state     State
	topic     string
	questions []Question
	index     int
	selected  map[string]string
	result    *ScoreResult

	// Finished attempts not yet handed to Persist. A new Load leaves them alone.
	pending []HistoryRecord
}

// EngineOption customizes an Engine.
type EngineOption func(*Engine)

// WithCelebrator sets the effect played for passing scores.
func WithCelebrator(c Celebrator) EngineOption { return func(e *Engine) { e.celebrator = c } }

// WithClock overrides the time source used for history records.
func WithClock(now func() time.Time) EngineOption { return func(e *Engine) { e.now = now } }

// NewEngine returns an idle engine.
func NewEngine(bank QuestionBank, history HistoryStore, log *zap.Logger, opts ...EngineOption) *Engine {
	e := &Engine{
		bank:       bank,
		history:    history,
		celebrator: NopCelebrator{},
		log:        log,
		now:        time.Now,
		selected:   map[string]string{},
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Load fetches the questions for topic and starts a new session. When Load is
// called again before an earlier call returns, only the latest result is kept
// and the earlier call reports ErrSuperseded.
func (e *Engine) Load(ctx context.Context, topic string) error {
	e.mu.Lock()
	e.gen++
	gen := e.gen
	e.reset(Loading, topic)
	e.mu.Unlock()

	var (
		questions []Question
		err       error
	)
	collection, ok := CollectionFor(topic)
	if !ok {
		err = ErrUnknownTopic
	} else {
		questions, err = e.bank.Questions(ctx, collection)
		if err == nil && len(questions) == 0 {
			err = ErrNoQuestions
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen {
		return ErrSuperseded
	}
	if err != nil {
		e.reset(Idle, topic)
		e.log.Warn("Failed to load questions", zap.String("topic", topic), zap.Error(err))
		return &LoadError{Topic: topic, Err: err}
	}
	e.questions = questions
	e.state = InProgress
	e.log.Debug("Quiz loaded", zap.String("topic", topic), zap.String("collection", collection), zap.Int("questions", len(questions)))
	return nil
}

// reset clears the session. Callers hold e.mu.
func (e *Engine) reset(state State, topic string) {
	e.state = state
	e.topic = topic
	e.questions = nil
	e.index = 0
	e.selected = map[string]string{}
	e.result = nil
}

// SelectOption records the answer for a question, replacing any earlier one.
// The option key is not checked against the question's options.
func (e *Engine) SelectOption(questionID, optionKey string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != InProgress {
		return ErrNotInProgress
	}
	if !e.hasQuestion(questionID) {
		return ErrUnknownQuestion
	}
	e.selected[questionID] = optionKey
	return nil
}

func (e *Engine) hasQuestion(id string) bool {
	for _, q := range e.questions {
		if q.ID == id {
			return true
		}
	}
	return false
}

// Advance moves to the next question, or finishes and scores the session
// when the current question is the last one.
func (e *Engine) Advance(ctx context.Context) (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != InProgress {
		return e.state, ErrNotInProgress
	}
	if e.index+1 < len(e.questions) {
		e.index++
		return e.state, nil
	}

	res := Score(e.questions, e.selected)
	e.result = &res
	e.state = Finished
	e.pending = append(e.pending, e.attempt(res))
	e.log.Info("Quiz finished",
		zap.String("topic", e.topic),
		zap.Int("correct", res.Correct),
		zap.Int("total", res.Total),
		zap.Int("percentage", res.Percentage),
	)
	if res.Percentage >= Pass {
		// The effect bounds itself; it outlives the request that finished the quiz.
		e.celebrator.Celebrate(context.WithoutCancel(ctx))
	}
	return e.state, nil
}

// Result returns the score of a finished session.
func (e *Engine) Result() (ScoreResult, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.result == nil {
		return ScoreResult{}, false
	}
	return *e.result, true
}

// State returns the current phase.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// View returns a snapshot of the session.
func (e *Engine) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	v := View{
		State: e.state,
		Topic: e.topic,
		Index: e.index,
		Total: len(e.questions),
	}
	switch e.state {
	case InProgress:
		q := e.questions[e.index]
		v.Question = &q
		v.Selected = e.selected[q.ID]
		v.IsLast = e.index == len(e.questions)-1
	case Finished:
		res := *e.result
		v.Result = &res
		v.IsLast = true
	}
	return v
}

// attempt snapshots a finished session. Callers hold e.mu.
func (e *Engine) attempt(res ScoreResult) HistoryRecord {
	now := e.now()
	return HistoryRecord{
		ID:         uuid.NewString(),
		Topic:      e.topic,
		Date:       now.Format("1/2/2006"),
		Score:      fmt.Sprintf("%d%%", res.Percentage),
		Percentage: res.Percentage,
		Correct:    res.Correct,
		Total:      res.Total,
		Timestamp:  now,
	}
}

// Persist writes every attempt finished since the last call to the history
// store, each exactly once. Attempts are taken as they were when they finished,
// so a quiz started in between does not affect them. Without a user the
// attempts are dropped. Failures are logged and otherwise ignored; the
// displayed result never depends on them.
func (e *Engine) Persist(ctx context.Context, userID string) {
	e.mu.Lock()
	pending := e.pending
	e.pending = nil
	e.mu.Unlock()
	if userID == "" || e.history == nil {
		return
	}

	for _, rec := range pending {
		rec.UserID = userID
		if err := e.history.Record(ctx, rec); err != nil {
			e.log.Error("Failed to save history", zap.Error(err), zap.String("userID", userID), zap.String("topic", rec.Topic))
			continue
		}
		e.log.Debug("History saved", zap.String("userID", userID), zap.String("id", rec.ID))
	}
}

// IsLoadError reports whether err came from Load failing, as opposed to being superseded.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
