package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

var contentTypes = map[string]string{
	"pdf":  "application/pdf",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// Server answers the web service's /chat and /upload-resume calls.
type Server struct {
	log       *zap.Logger
	chat      Chatter
	extractor Extractor
	archive   Archive
	maxUpload int64

	extractText func(fileType string, data []byte) (string, error)
}

// Option customizes a Server.
type Option func(*Server)

// WithArchive keeps a copy of every upload.
func WithArchive(a Archive) Option { return func(s *Server) { s.archive = a } }

// WithMaxUpload caps the size of an uploaded resume in bytes.
func WithMaxUpload(n int64) Option { return func(s *Server) { s.maxUpload = n } }

func NewServer(log *zap.Logger, chat Chatter, extractor Extractor, opts ...Option) *Server {
	s := &Server{
		log:         log,
		chat:        chat,
		extractor:   extractor,
		maxUpload:   10 << 20,
		extractText: ExtractText,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Routes returns the advisor's HTTP handler, allowing browser calls from origins.
func (s *Server) Routes(origins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, s.requestLogger, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", s.home)
	r.Post("/chat", s.handleChat)
	r.Post("/upload-resume", s.handleUpload)
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		}
		switch status := ww.Status(); {
		case status >= 500:
			s.log.Error("Server error", fields...)
		case status >= 400:
			s.log.Warn("Client error", fields...)
		default:
			s.log.Debug("Request processed", fields...)
		}
	})
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "CareerCompass Backend Running"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	// A malformed body is treated like a missing message.
	_ = json.NewDecoder(r.Body).Decode(&req)
	if strings.TrimSpace(req.Message) == "" {
		respondError(w, http.StatusBadRequest, "Message is required")
		return
	}

	reply, err := s.chat.Reply(r.Context(), req.Message)
	if err != nil {
		s.log.Error("Chat error", zap.Error(err))
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	file, header, err := r.FormFile("resume")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		respondError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	fileType, err := FileType(header.Filename)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Unsupported file type")
		return
	}
	data, err := io.ReadAll(file)
	if err != nil {
		s.log.Error("Failed to read upload", zap.Error(err))
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if s.archive != nil {
		key, err := s.archive.Store(r.Context(), header.Filename, contentTypes[fileType], data)
		if err != nil {
			s.log.Warn("Failed to archive resume", zap.String("file", header.Filename), zap.Error(err))
		} else {
			s.log.Debug("Resume archived", zap.String("key", key))
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(s.analyze(r.Context(), fileType, data))
}

// analyze returns the model's JSON for the resume, or the empty analysis when
// any step fails.
func (s *Server) analyze(ctx context.Context, fileType string, data []byte) []byte {
	text, err := s.extractText(fileType, data)
	if err != nil {
		s.log.Warn("Text extraction failed", zap.String("type", fileType), zap.Error(err))
		return []byte(emptyAnalysis)
	}
	if strings.TrimSpace(text) == "" {
		s.log.Warn("Could not extract text from resume", zap.String("type", fileType))
		return []byte(emptyAnalysis)
	}

	output, err := s.extractor.Extract(ctx, text)
	if err != nil {
		s.log.Warn("Resume parsing failed", zap.Error(err))
		return []byte(emptyAnalysis)
	}
	cleaned := CleanJSON(output)
	if !json.Valid([]byte(cleaned)) {
		s.log.Warn("Model returned invalid JSON", zap.Int("length", len(cleaned)))
		return []byte(emptyAnalysis)
	}
	return []byte(cleaned)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
