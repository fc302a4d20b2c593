package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/NoorJehan20/CareerCompass-FYP/internal/chat"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChatHandler struct {
	log      *zap.Logger
	advisor  chat.Advisor
	sessions *registry[*chat.Session]
}

func NewChatHandler(log *zap.Logger, advisor chat.Advisor) *ChatHandler {
	return &ChatHandler{
		log:      log,
		advisor:  advisor,
		sessions: newRegistry(func(s *chat.Session) { s.Close() }),
	}
}

// Forget closes a browser's chat, e.g. after sign-out.
func (h *ChatHandler) Forget(browser string) {
	h.sessions.delete(browser)
}

// Sweep closes chats of browsers not seen within idle.
func (h *ChatHandler) Sweep(idle time.Duration) int {
	return h.sessions.sweep(idle)
}

// Open replaces the browser's chat with a fresh transcript and submits the
// prompt the page was opened with, if any.
func (h *ChatHandler) Open(c *gin.Context) {
	var form struct {
		InitialPrompt string `json:"initialPrompt"`
	}
	if err := c.ShouldBindJSON(&form); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	s := chat.NewSession(h.advisor, h.log.Named("chat"))
	h.sessions.put(browserID(c), s)
	s.Start(context.WithoutCancel(c.Request.Context()), form.InitialPrompt)
	h.respond(c, s, gin.H{})
}

func (h *ChatHandler) Show(c *gin.Context) {
	s, ok := h.sessions.get(browserID(c))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No chat open."})
		return
	}
	h.respond(c, s, gin.H{})
}

// Send posts a message and waits for the advisor's reply.
func (h *ChatHandler) Send(c *gin.Context) {
	var form struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	s := h.sessions.getOrCreate(browserID(c), func() *chat.Session {
		return chat.NewSession(h.advisor, h.log.Named("chat"))
	})
	accepted := s.Send(c.Request.Context(), form.Text)
	h.respond(c, s, gin.H{"accepted": accepted})
}

func (h *ChatHandler) respond(c *gin.Context, s *chat.Session, resp gin.H) {
	resp["messages"] = s.Transcript()
	resp["loading"] = s.Loading()
	c.JSON(http.StatusOK, resp)
}
