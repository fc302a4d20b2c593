// Package gateway is the HTTP client for the advisor backend that produces
// chat replies and parses uploaded resumes.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrNetwork is returned when the backend could not be reached at all.
var ErrNetwork = errors.New("advisor backend unreachable")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: backend returned %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.StatusCode, e.Message)
}

// ChatReply is the body of a successful POST /chat.
type ChatReply struct {
	Reply   string   `json:"reply"`
	Sources []string `json:"sources,omitempty"`
}

// Client talks to the advisor backend.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New returns a client for baseURL. A zero timeout leaves calls bounded only by their context.
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.Named("gateway"),
	}
}

// Chat sends one user message and returns the model's reply.
func (c *Client) Chat(ctx context.Context, message string) (ChatReply, error) {
	body, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return ChatReply{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return ChatReply{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	raw, err := c.do(req, "chat")
	if err != nil {
		return ChatReply{}, err
	}
	var reply ChatReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return ChatReply{}, fmt.Errorf("chat: decode reply: %w", err)
	}
	return reply, nil
}

// UploadResume posts the file as the multipart field "resume" and returns the
// parser's JSON untouched.
func (c *Client) UploadResume(ctx context.Context, filename string, file io.Reader) (json.RawMessage, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("resume", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("upload-resume: read file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload-resume", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	raw, err := c.do(req, "upload-resume")
	if err != nil {
		return nil, err
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("upload-resume: backend returned invalid JSON")
	}
	return json.RawMessage(raw), nil
}

func (c *Client) do(req *http.Request, op string) ([]byte, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s: %w", op, ctxErr)
		}
		c.log.Warn("Backend request failed", zap.String("op", op), zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %v", op, ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrNetwork, err)
	}
	c.log.Debug("Backend request",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Op: op, StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}
	return raw, nil
}

// errorMessage pulls {"error": "..."} out of a failed response when present.
func errorMessage(raw []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(raw))
}

// IsUnavailable reports whether err means the backend could not serve the request.
func IsUnavailable(err error) bool {
	var se *StatusError
	return errors.Is(err, ErrNetwork) || errors.As(err, &se)
}
