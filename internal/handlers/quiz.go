package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"
	"sync"

	"github.com/NoorJehan20/CareerCompass-FYP/internal/quiz"

	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"go.uber.org/zap"
)

// effectSink buffers confetti bursts until the browser next polls.
type effectSink struct {
	mu     sync.Mutex
	bursts []quiz.Burst
}

func (s *effectSink) emit(b quiz.Burst) {
	s.mu.Lock()
	s.bursts = append(s.bursts, b)
	s.mu.Unlock()
}

func (s *effectSink) drain() []quiz.Burst {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.bursts
	s.bursts = nil
	return out
}

type quizSession struct {
	engine  *quiz.Engine
	effects *effectSink
}

type QuizHandler struct {
	log       *zap.Logger
	bank      quiz.QuestionBank
	history   quiz.HistoryStore
	celebrate bool
	sessions  *registry[*quizSession]
}

func NewQuizHandler(log *zap.Logger, bank quiz.QuestionBank, history quiz.HistoryStore, celebrate bool) *QuizHandler {
	return &QuizHandler{
		log:       log,
		bank:      bank,
		history:   history,
		celebrate: celebrate,
		sessions:  newRegistry[*quizSession](nil),
	}
}

func (h *QuizHandler) session(c *gin.Context) *quizSession {
	return h.sessions.getOrCreate(browserID(c), func() *quizSession {
		s := &quizSession{effects: &effectSink{}}
		var opts []quiz.EngineOption
		if h.celebrate {
			opts = append(opts, quiz.WithCelebrator(quiz.NewConfetti(s.effects.emit)))
		}
		s.engine = quiz.NewEngine(h.bank, h.history, h.log.Named("quiz"), opts...)
		return s
	})
}

// Forget drops a browser's quiz, e.g. after sign-out.
func (h *QuizHandler) Forget(browser string) {
	h.sessions.delete(browser)
}

// Sweep drops quizzes of browsers not seen within idle.
func (h *QuizHandler) Sweep(idle time.Duration) int {
	return h.sessions.sweep(idle)
}

func (h *QuizHandler) Topics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"topics": quiz.Topics()})
}

// Start loads the chosen topic's questions into a fresh session.
func (h *QuizHandler) Start(c *gin.Context) {
	var form struct {
		Topic string `json:"topic"`
	}
	if err := c.ShouldBindJSON(&form); err != nil || form.Topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select a topic first!"})
		return
	}

	s := h.session(c)
	if err := s.engine.Load(c.Request.Context(), form.Topic); err != nil {
		switch {
		case errors.Is(err, quiz.ErrSuperseded):
			c.JSON(http.StatusConflict, gin.H{"error": "A newer quiz was started."})
		case errors.Is(err, quiz.ErrUnknownTopic):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown topic."})
		case errors.Is(err, quiz.ErrNoQuestions):
			c.JSON(http.StatusNotFound, gin.H{"error": "No questions available for this topic yet."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load questions."})
		}
		return
	}
	s.effects.drain()
	h.respond(c, s)
}

func (h *QuizHandler) Show(c *gin.Context) {
	h.respond(c, h.session(c))
}

func (h *QuizHandler) Select(c *gin.Context) {
	var form struct {
		QuestionID string `json:"questionId"`
		Option     string `json:"option"`
	}
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	s := h.session(c)
	if err := s.engine.SelectOption(form.QuestionID, form.Option); err != nil {
		h.stateError(c, err)
		return
	}
	h.respond(c, s)
}

// Next advances the quiz. Finishing it stores the attempt for signed-in users
// without holding up the response; guests' attempts are dropped.
func (h *QuizHandler) Next(c *gin.Context) {
	s := h.session(c)
	state, err := s.engine.Advance(c.Request.Context())
	if err != nil {
		h.stateError(c, err)
		return
	}
	if state == quiz.Finished {
		go s.engine.Persist(context.WithoutCancel(c.Request.Context()), currentUserID(c))
	}
	h.respond(c, s)
}

func (h *QuizHandler) stateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, quiz.ErrNotInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": "No quiz in progress."})
	case errors.Is(err, quiz.ErrUnknownQuestion):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown question."})
	default:
		h.log.Error("Quiz update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong."})
	}
}

func (h *QuizHandler) respond(c *gin.Context, s *quizSession) {
	view := s.engine.View()
	resp := gin.H{"quiz": view}
	if view.Result != nil {
		resp["headline"] = view.Result.Headline()
		resp["incorrect"] = view.Result.Incorrect()
		resp["chart"] = generateResultChart(*view.Result).JSON()
	}
	if h.celebrate {
		resp["confetti"] = s.effects.drain()
	}
	c.JSON(http.StatusOK, resp)
}

func generateResultChart(res quiz.ScoreResult) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: res.Headline()}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	pie.AddSeries("Answers", []opts.PieData{
		{Name: "Correct", Value: res.Correct},
		{Name: "Incorrect", Value: res.Incorrect()},
	}).SetSeriesOptions(charts.WithPieChartOpts(opts.PieChart{Radius: []string{"40%", "70%"}}))
	return pie
}
