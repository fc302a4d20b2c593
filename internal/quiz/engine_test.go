package quiz

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeBank struct {
	collections map[string][]Question
	err         error
	calls       []string
}

func (b *fakeBank) Questions(_ context.Context, collection string) ([]Question, error) {
	b.calls = append(b.calls, collection)
	if b.err != nil {
		return nil, b.err
	}
	return b.collections[collection], nil
}

type fakeHistory struct {
	mu      sync.Mutex
	records []HistoryRecord
	err     error
}

func (h *fakeHistory) Record(_ context.Context, rec HistoryRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	h.records = append(h.records, rec)
	return nil
}

type countingCelebrator struct {
	mu    sync.Mutex
	count int
}

func (c *countingCelebrator) Celebrate(context.Context) {
	c.mu.Lock()
	c.count++
	c.mu.Unlock()
}

func networkingQuestions() []Question {
	return []Question{
		{ID: "cn1", Prompt: "Which layer does IP belong to?", Options: []Option{{"A", "Transport"}, {"B", "Network"}}, Correct: "B"},
		{ID: "cn2", Prompt: "Default HTTP port?", Options: []Option{{"A", "80"}, {"B", "21"}}, Correct: "A"},
	}
}

func newTestEngine(bank QuestionBank, history HistoryStore, opts ...EngineOption) *Engine {
	return NewEngine(bank, history, zap.NewNop(), opts...)
}

func TestEngineComputerNetworkingScenario(t *testing.T) {
	bank := &fakeBank{collections: map[string][]Question{"cn_mcqs": networkingQuestions()}}
	e := newTestEngine(bank, nil)
	ctx := context.Background()

	if err := e.Load(ctx, "Computer Networking"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(bank.calls) != 1 || bank.calls[0] != "cn_mcqs" {
		t.Fatalf("bank calls = %v, want [cn_mcqs]", bank.calls)
	}
	if got := e.State(); got != InProgress {
		t.Fatalf("state = %v, want in_progress", got)
	}

	if err := e.SelectOption("cn1", "B"); err != nil {
		t.Fatal(err)
	}
	if err := e.SelectOption("cn2", "A"); err != nil {
		t.Fatal(err)
	}
	if st, err := e.Advance(ctx); err != nil || st != InProgress {
		t.Fatalf("first Advance = %v, %v", st, err)
	}
	if st, err := e.Advance(ctx); err != nil || st != Finished {
		t.Fatalf("second Advance = %v, %v", st, err)
	}

	res, ok := e.Result()
	if !ok {
		t.Fatal("no result after finishing")
	}
	if res.Correct != 2 || res.Total != 2 || res.Percentage != 100 {
		t.Errorf("result = %d/%d %d%%, want 2/2 100%%", res.Correct, res.Total, res.Percentage)
	}
}

func TestEngineSelectionDoesNotAdvance(t *testing.T) {
	e := newTestEngine(&fakeBank{collections: map[string][]Question{"cn_mcqs": networkingQuestions()}}, nil)
	if err := e.Load(context.Background(), TopicNetworking); err != nil {
		t.Fatal(err)
	}
	if err := e.SelectOption("cn1", "A"); err != nil {
		t.Fatal(err)
	}
	v := e.View()
	if v.Index != 0 || v.Selected != "A" || v.IsLast {
		t.Errorf("view = %+v, want index 0 with A selected", v)
	}
}

func TestEngineSelectionLastWriteWins(t *testing.T) {
	bank := &fakeBank{collections: map[string][]Question{"cn_mcqs": networkingQuestions()}}

	orders := [][][2]string{
		{{"cn1", "A"}, {"cn2", "A"}, {"cn1", "B"}},
		{{"cn2", "A"}, {"cn1", "B"}},
		{{"cn1", "B"}, {"cn2", "B"}, {"cn2", "A"}},
	}
	for _, order := range orders {
		e := newTestEngine(bank, nil)
		ctx := context.Background()
		if err := e.Load(ctx, TopicNetworking); err != nil {
			t.Fatal(err)
		}
		for _, sel := range order {
			if err := e.SelectOption(sel[0], sel[1]); err != nil {
				t.Fatal(err)
			}
		}
		e.Advance(ctx)
		e.Advance(ctx)
		res, _ := e.Result()
		if res.Percentage != 100 {
			t.Errorf("order %v: percentage = %d, want 100", order, res.Percentage)
		}
	}
}

func TestEngineSelectOptionAcceptsAnyKey(t *testing.T) {
	e := newTestEngine(&fakeBank{collections: map[string][]Question{"cn_mcqs": networkingQuestions()}}, nil)
	if err := e.Load(context.Background(), TopicNetworking); err != nil {
		t.Fatal(err)
	}
	if err := e.SelectOption("cn1", "Z"); err != nil {
		t.Errorf("SelectOption with unlisted key: %v", err)
	}
	if err := e.SelectOption("nope", "A"); !errors.Is(err, ErrUnknownQuestion) {
		t.Errorf("SelectOption unknown question = %v, want ErrUnknownQuestion", err)
	}
}

func TestEngineLoadFailures(t *testing.T) {
	bankErr := errors.New("firestore unavailable")
	tests := []struct {
		name  string
		bank  *fakeBank
		topic string
		want  error
	}{
		{"unknown topic", &fakeBank{}, "Cooking", ErrUnknownTopic},
		{"fetch error", &fakeBank{err: bankErr}, TopicML, bankErr},
		{"empty bank", &fakeBank{collections: map[string][]Question{}}, TopicML, ErrNoQuestions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(tt.bank, nil)
			err := e.Load(context.Background(), tt.topic)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Load error = %v, want %v", err, tt.want)
			}
			if !IsLoadError(err) {
				t.Errorf("Load error %T is not a *LoadError", err)
			}
			v := e.View()
			if v.State != Idle || v.Total != 0 || v.Question != nil || v.Result != nil {
				t.Errorf("view after failure = %+v, want empty idle", v)
			}
			if _, err := e.Advance(context.Background()); !errors.Is(err, ErrNotInProgress) {
				t.Errorf("Advance after failure = %v, want ErrNotInProgress", err)
			}
		})
	}
}

// blockingBank holds the first call until release is closed.
type blockingBank struct {
	started chan struct{}
	release chan struct{}
	first   []Question
	second  []Question
	mu      sync.Mutex
	calls   int
}

func (b *blockingBank) Questions(ctx context.Context, _ string) ([]Question, error) {
	b.mu.Lock()
	b.calls++
	n := b.calls
	b.mu.Unlock()
	if n == 1 {
		close(b.started)
		<-b.release
		return b.first, nil
	}
	return b.second, nil
}

func TestEngineLaterLoadSupersedes(t *testing.T) {
	bank := &blockingBank{
		started: make(chan struct{}),
		release: make(chan struct{}),
		first:   []Question{{ID: "old", Correct: "A"}},
		second:  networkingQuestions(),
	}
	e := newTestEngine(bank, nil)
	ctx := context.Background()

	firstErr := make(chan error, 1)
	go func() { firstErr <- e.Load(ctx, TopicML) }()
	<-bank.started

	if err := e.Load(ctx, TopicNetworking); err != nil {
		t.Fatalf("second Load: %v", err)
	}
	close(bank.release)

	if err := <-firstErr; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("first Load = %v, want ErrSuperseded", err)
	}
	v := e.View()
	if v.Topic != TopicNetworking || v.Total != 2 || v.Question.ID != "cn1" {
		t.Errorf("view = %+v, want the networking questions", v)
	}
}

func TestEngineFinishedIsTerminal(t *testing.T) {
	e := newTestEngine(&fakeBank{collections: map[string][]Question{"ml_mcqs": {{ID: "m1", Correct: "A"}}}}, nil)
	ctx := context.Background()
	if err := e.Load(ctx, TopicML); err != nil {
		t.Fatal(err)
	}
	if st, _ := e.Advance(ctx); st != Finished {
		t.Fatalf("state = %v, want finished", st)
	}
	if _, err := e.Advance(ctx); !errors.Is(err, ErrNotInProgress) {
		t.Errorf("Advance after finish = %v, want ErrNotInProgress", err)
	}
	if err := e.SelectOption("m1", "A"); !errors.Is(err, ErrNotInProgress) {
		t.Errorf("SelectOption after finish = %v, want ErrNotInProgress", err)
	}
	res, _ := e.Result()
	if res.Correct != 0 || res.Incorrect() != 1 || !res.Breakdown[0].Skipped() {
		t.Errorf("result = %+v, want one skipped question", res)
	}

	// A fresh load is the only way back to a running session.
	if err := e.Load(ctx, TopicML); err != nil {
		t.Fatal(err)
	}
	if e.State() != InProgress {
		t.Errorf("state after reload = %v", e.State())
	}
	if _, ok := e.Result(); ok {
		t.Error("result survived a reload")
	}
}

func TestEngineCelebratesPassingScores(t *testing.T) {
	qs := []Question{{ID: "1", Correct: "A"}, {ID: "2", Correct: "A"}, {ID: "3", Correct: "A"}, {ID: "4", Correct: "A"}, {ID: "5", Correct: "A"}}
	tests := []struct {
		right int
		want  int
	}{
		{5, 1},
		{3, 1}, // exactly 60%
		{2, 0},
	}
	for _, tt := range tests {
		c := &countingCelebrator{}
		e := newTestEngine(&fakeBank{collections: map[string][]Question{"ui_mcqs": qs}}, nil, WithCelebrator(c))
		ctx := context.Background()
		if err := e.Load(ctx, TopicUIUX); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < tt.right; i++ {
			e.SelectOption(qs[i].ID, "A")
		}
		for range qs {
			e.Advance(ctx)
		}
		if c.count != tt.want {
			t.Errorf("%d/5 right: celebrations = %d, want %d", tt.right, c.count, tt.want)
		}
	}
}

func TestEnginePersist(t *testing.T) {
	at := time.Date(2025, time.November, 1, 10, 30, 0, 0, time.UTC)
	history := &fakeHistory{}
	e := newTestEngine(&fakeBank{collections: map[string][]Question{"cn_mcqs": networkingQuestions()}}, history, WithClock(func() time.Time { return at }))
	ctx := context.Background()

	if err := e.Load(ctx, TopicNetworking); err != nil {
		t.Fatal(err)
	}
	e.Persist(ctx, "user-1") // not finished yet
	if len(history.records) != 0 {
		t.Fatal("persisted an unfinished session")
	}

	e.SelectOption("cn1", "B")
	e.Advance(ctx)
	e.Advance(ctx)
	e.Persist(ctx, "user-1")
	e.Persist(ctx, "user-1")

	if len(history.records) != 1 {
		t.Fatalf("records = %d, want 1", len(history.records))
	}
	rec := history.records[0]
	if rec.Topic != TopicNetworking || rec.UserID != "user-1" || rec.Correct != 1 || rec.Total != 2 {
		t.Errorf("record = %+v", rec)
	}
	if rec.Score != "50%" || rec.Percentage != 50 || rec.Date != "11/1/2025" || !rec.Timestamp.Equal(at) || rec.ID == "" {
		t.Errorf("record = %+v", rec)
	}
}

func TestEnginePersistAfterRestart(t *testing.T) {
	history := &fakeHistory{}
	bank := &fakeBank{collections: map[string][]Question{
		"cn_mcqs": networkingQuestions(),
		"ml_mcqs": {{ID: "m1", Correct: "A"}},
	}}
	e := newTestEngine(bank, history)
	ctx := context.Background()

	if err := e.Load(ctx, TopicNetworking); err != nil {
		t.Fatal(err)
	}
	e.SelectOption("cn1", "B")
	e.SelectOption("cn2", "A")
	e.Advance(ctx)
	e.Advance(ctx)

	// The browser retries before the write for the finished quiz runs.
	if err := e.Load(ctx, TopicNetworking); err != nil {
		t.Fatal(err)
	}
	e.Persist(ctx, "user-1")

	if len(history.records) != 1 {
		t.Fatalf("records = %d, want 1", len(history.records))
	}
	if rec := history.records[0]; rec.Topic != TopicNetworking || rec.Correct != 2 || rec.Percentage != 100 {
		t.Errorf("record = %+v, want the finished 2/2 attempt", rec)
	}

	// Two attempts finished before either write lands are both stored once.
	if err := e.Load(ctx, TopicML); err != nil {
		t.Fatal(err)
	}
	e.Advance(ctx)
	e.Load(ctx, TopicNetworking)
	e.Advance(ctx)
	e.Advance(ctx)
	e.Persist(ctx, "user-1")
	e.Persist(ctx, "user-1")

	if len(history.records) != 3 {
		t.Fatalf("records = %d, want 3", len(history.records))
	}
	if history.records[1].Topic != TopicML || history.records[2].Topic != TopicNetworking {
		t.Errorf("topics = %q, %q", history.records[1].Topic, history.records[2].Topic)
	}
}

func TestEnginePersistDropsGuestAttempts(t *testing.T) {
	history := &fakeHistory{}
	e := newTestEngine(&fakeBank{collections: map[string][]Question{"cn_mcqs": networkingQuestions()}}, history)
	ctx := context.Background()
	e.Load(ctx, TopicNetworking)
	e.Advance(ctx)
	e.Advance(ctx)
	e.Persist(ctx, "")

	// Signing in afterwards does not claim the guest's attempt.
	e.Persist(ctx, "user-1")
	if len(history.records) != 0 {
		t.Errorf("records = %d, want none", len(history.records))
	}
}

func TestEnginePersistFailureKeepsResult(t *testing.T) {
	history := &fakeHistory{err: errors.New("permission denied")}
	e := newTestEngine(&fakeBank{collections: map[string][]Question{"cn_mcqs": networkingQuestions()}}, history)
	ctx := context.Background()
	if err := e.Load(ctx, TopicNetworking); err != nil {
		t.Fatal(err)
	}
	e.Advance(ctx)
	e.Advance(ctx)
	e.Persist(ctx, "user-1")

	v := e.View()
	if v.State != Finished || v.Result == nil || v.Result.Total != 2 {
		t.Errorf("view after failed persist = %+v", v)
	}
}

func TestEnginePersistSkipsAnonymous(t *testing.T) {
	history := &fakeHistory{}
	e := newTestEngine(&fakeBank{collections: map[string][]Question{"cn_mcqs": networkingQuestions()}}, history)
	ctx := context.Background()
	e.Load(ctx, TopicNetworking)
	e.Advance(ctx)
	e.Advance(ctx)
	e.Persist(ctx, "")
	if len(history.records) != 0 {
		t.Errorf("records = %d, want none without a user", len(history.records))
	}
}
