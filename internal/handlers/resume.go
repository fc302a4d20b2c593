package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/NoorJehan20/CareerCompass-FYP/internal/gateway"
	"github.com/NoorJehan20/CareerCompass-FYP/internal/render"
	"github.com/NoorJehan20/CareerCompass-FYP/internal/resume"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ResumeParser sends an uploaded resume to the advisor for analysis.
type ResumeParser interface {
	UploadResume(ctx context.Context, filename string, file io.Reader) (json.RawMessage, error)
}

// DefaultMaxUpload matches the advisor's own upload limit.
const DefaultMaxUpload int64 = 10 << 20

type ResumeHandler struct {
	log       *zap.Logger
	parser    ResumeParser
	maxUpload int64
	analyses  *registry[resume.Document]
}

// NewResumeHandler caps upload bodies at maxUpload bytes, or DefaultMaxUpload when it is not positive.
func NewResumeHandler(log *zap.Logger, parser ResumeParser, maxUpload int64) *ResumeHandler {
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUpload
	}
	return &ResumeHandler{log: log, parser: parser, maxUpload: maxUpload, analyses: newRegistry[resume.Document](nil)}
}

// Forget drops a browser's last analysis.
func (h *ResumeHandler) Forget(browser string) {
	h.analyses.delete(browser)
}

func (h *ResumeHandler) Sweep(idle time.Duration) int {
	return h.analyses.sweep(idle)
}

func (h *ResumeHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	header, err := c.FormFile("resume")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large."})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please upload a resume first."})
		return
	}
	file, err := header.Open()
	if err != nil {
		h.log.Error("Failed to open uploaded resume", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please upload a resume first."})
		return
	}
	defer file.Close()

	raw, err := h.parser.UploadResume(c.Request.Context(), header.Filename, file)
	if err != nil {
		h.log.Warn("Resume analysis failed", zap.String("file", header.Filename), zap.Error(err))
		status := http.StatusInternalServerError
		if gateway.IsUnavailable(err) {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": "Error uploading resume. Please try again."})
		return
	}
	doc, err := resume.Decode(raw)
	if err != nil {
		h.log.Warn("Unreadable resume analysis", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error uploading resume. Please try again."})
		return
	}

	h.analyses.put(browserID(c), doc)
	c.JSON(http.StatusOK, gin.H{"analysis": doc, "sample": false})
}

// Analysis returns the last uploaded analysis, or the sample before any upload.
func (h *ResumeHandler) Analysis(c *gin.Context) {
	if doc, ok := h.analyses.get(browserID(c)); ok {
		c.JSON(http.StatusOK, gin.H{"analysis": doc, "sample": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"analysis": resume.Sample(), "sample": true})
}

func (h *ResumeHandler) Templates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": render.Variants()})
}

// Render previews the builder form in the requested layout.
func (h *ResumeHandler) Render(c *gin.Context) {
	variant, err := render.ParseVariant(c.Param("variant"))
	if errors.Is(err, render.ErrUnknownVariant) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown template."})
		return
	}
	var draft resume.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := render.Render(variant, draft.Document()).Render(c.Request.Context(), c.Writer); err != nil {
		h.log.Error("Failed to render resume", zap.String("variant", string(variant)), zap.Error(err))
	}
}
