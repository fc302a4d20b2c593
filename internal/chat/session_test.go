package chat

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/NoorJehan20/CareerCompass-FYP/internal/gateway"
	"go.uber.org/zap"
)

type fakeAdvisor struct {
	reply gateway.ChatReply
	err   error

	mu    sync.Mutex
	calls []string
}

func (f *fakeAdvisor) Chat(_ context.Context, message string) (gateway.ChatReply, error) {
	f.mu.Lock()
	f.calls = append(f.calls, message)
	f.mu.Unlock()
	return f.reply, f.err
}

func TestNewSessionGreets(t *testing.T) {
	s := NewSession(&fakeAdvisor{}, zap.NewNop())
	msgs := s.Transcript()
	if len(msgs) != 1 || msgs[0].Text != Greeting || msgs[0].Sender != Assistant {
		t.Fatalf("transcript = %+v, want the greeting", msgs)
	}
}

func TestSendBackendUnreachable(t *testing.T) {
	s := NewSession(&fakeAdvisor{err: gateway.ErrNetwork}, zap.NewNop())
	before := len(s.Transcript())

	if !s.Send(context.Background(), "What is my ideal role?") {
		t.Fatal("Send rejected a non-empty message")
	}
	msgs := s.Transcript()
	if len(msgs) != before+2 {
		t.Fatalf("transcript grew by %d, want 2", len(msgs)-before)
	}
	if u := msgs[before]; u.Sender != User || u.Text != "What is my ideal role?" {
		t.Errorf("user message = %+v", u)
	}
	if a := msgs[before+1]; a.Sender != Assistant || a.Text != ErrorText || len(a.Sources) != 0 {
		t.Errorf("assistant message = %+v", a)
	}
	if s.Loading() {
		t.Error("Loading() = true after the reply arrived")
	}
}

func TestSendReply(t *testing.T) {
	tests := []struct {
		name  string
		reply gateway.ChatReply
		want  string
	}{
		{"reply", gateway.ChatReply{Reply: "Try data engineering.", Sources: []string{"BLS"}}, "Try data engineering."},
		{"empty reply", gateway.ChatReply{}, EmptyReply},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adv := &fakeAdvisor{reply: tt.reply}
			s := NewSession(adv, zap.NewNop())
			s.Send(context.Background(), "  hello  ")
			if len(adv.calls) != 1 || adv.calls[0] != "hello" {
				t.Errorf("advisor calls = %q, want trimmed text", adv.calls)
			}
			msgs := s.Transcript()
			last := msgs[len(msgs)-1]
			if last.Text != tt.want || len(last.Sources) != len(tt.reply.Sources) {
				t.Errorf("last message = %+v", last)
			}
		})
	}
}

func TestSendBlankIsNoop(t *testing.T) {
	adv := &fakeAdvisor{}
	s := NewSession(adv, zap.NewNop())
	for _, text := range []string{"", "   ", "\n\t"} {
		if s.Send(context.Background(), text) {
			t.Errorf("Send(%q) = true", text)
		}
	}
	if len(s.Transcript()) != 1 || len(adv.calls) != 0 {
		t.Errorf("blank sends changed state: %d messages, %d calls", len(s.Transcript()), len(adv.calls))
	}
}

// gatedAdvisor blocks every call until release is closed.
type gatedAdvisor struct {
	entered chan struct{}
	release chan struct{}
}

func (g *gatedAdvisor) Chat(ctx context.Context, message string) (gateway.ChatReply, error) {
	g.entered <- struct{}{}
	<-g.release
	return gateway.ChatReply{Reply: "re: " + message}, nil
}

func TestLoadingWhileInFlight(t *testing.T) {
	adv := &gatedAdvisor{entered: make(chan struct{}, 2), release: make(chan struct{})}
	s := NewSession(adv, zap.NewNop())

	var wg sync.WaitGroup
	for _, text := range []string{"one", "two"} {
		wg.Add(1)
		go func(text string) {
			defer wg.Done()
			s.Send(context.Background(), text)
		}(text)
	}
	<-adv.entered
	<-adv.entered
	if !s.Loading() {
		t.Error("Loading() = false with requests in flight")
	}
	close(adv.release)
	wg.Wait()

	if s.Loading() {
		t.Error("Loading() = true after all replies")
	}
	msgs := s.Transcript()
	if len(msgs) != 5 {
		t.Fatalf("transcript has %d messages, want 5", len(msgs))
	}
	seen := map[string]bool{}
	for _, m := range msgs {
		if seen[m.ID] {
			t.Errorf("duplicate message id %s", m.ID)
		}
		seen[m.ID] = true
	}
}

func TestCloseDropsLateReply(t *testing.T) {
	adv := &gatedAdvisor{entered: make(chan struct{}, 1), release: make(chan struct{})}
	s := NewSession(adv, zap.NewNop())

	done := make(chan struct{})
	go func() {
		s.Send(context.Background(), "hello")
		close(done)
	}()
	<-adv.entered
	s.Close()
	close(adv.release)
	<-done

	msgs := s.Transcript()
	if len(msgs) != 2 || msgs[1].Sender != User {
		t.Errorf("transcript = %+v, want greeting and user message only", msgs)
	}
	if s.Send(context.Background(), "again") {
		t.Error("Send succeeded on a closed session")
	}
}

func waitIdle(t *testing.T, s *Session) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.Loading() {
		if time.Now().After(deadline) {
			t.Fatal("session still loading")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestStartRunsOnce(t *testing.T) {
	adv := &fakeAdvisor{reply: gateway.ChatReply{Reply: "ok"}}
	s := NewSession(adv, zap.NewNop())
	s.Start(context.Background(), "Career paths in AI")
	s.Start(context.Background(), "Career paths in AI")
	waitIdle(t, s)

	adv.mu.Lock()
	calls := len(adv.calls)
	adv.mu.Unlock()
	if calls != 1 {
		t.Errorf("advisor called %d times, want 1", calls)
	}
	if len(s.Transcript()) != 3 {
		t.Errorf("transcript has %d messages, want 3", len(s.Transcript()))
	}
}

func TestSubmitAppendsUserMessageImmediately(t *testing.T) {
	adv := &gatedAdvisor{entered: make(chan struct{}, 1), release: make(chan struct{})}
	s := NewSession(adv, zap.NewNop())

	if !s.Submit(context.Background(), "hello") {
		t.Fatal("Submit = false")
	}
	msgs := s.Transcript()
	if len(msgs) != 2 || msgs[1].Text != "hello" || !s.Loading() {
		t.Fatalf("after Submit: %d messages, loading %v", len(msgs), s.Loading())
	}
	<-adv.entered
	close(adv.release)
	waitIdle(t, s)
	if got := s.Transcript()[2].Text; got != "re: hello" {
		t.Errorf("reply = %q", got)
	}
}

func TestInitialPrompt(t *testing.T) {
	if got := InitialPrompt("  "); got != GeneralQuery {
		t.Errorf("InitialPrompt(blank) = %q", got)
	}
	if got := InitialPrompt(" resume tips "); got != "resume tips" {
		t.Errorf("InitialPrompt = %q", got)
	}
}

func TestSendPropagatesNoError(t *testing.T) {
	s := NewSession(&fakeAdvisor{err: errors.New("boom")}, zap.NewNop())
	if !s.Send(context.Background(), "x") {
		t.Fatal("Send = false")
	}
	if got := s.Transcript()[2].Text; got != ErrorText {
		t.Errorf("error message = %q", got)
	}
}
