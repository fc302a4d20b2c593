package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/chat" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["message"] != "What is my ideal role?" {
			t.Errorf("message = %q", body["message"])
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"reply":"Backend engineer","sources":["O*NET","BLS"]}`)
	}))
	defer srv.Close()

	c := New(srv.URL+"/", 0, zap.NewNop())
	reply, err := c.Chat(context.Background(), "What is my ideal role?")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply.Reply != "Backend engineer" || len(reply.Sources) != 2 || reply.Sources[0] != "O*NET" {
		t.Errorf("reply = %+v", reply)
	}
}

func TestChatStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error":"quota exceeded"}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL, 0, zap.NewNop()).Chat(context.Background(), "hi")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if se.StatusCode != http.StatusInternalServerError || se.Message != "quota exceeded" {
		t.Errorf("status error = %+v", se)
	}
	if !IsUnavailable(err) {
		t.Error("IsUnavailable = false for a 500")
	}
}

func TestChatUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, 0, zap.NewNop()).Chat(context.Background(), "hi")
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("err = %v, want ErrNetwork", err)
	}
}

func TestChatCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(srv.URL, 0, zap.NewNop()).Chat(ctx, "hi")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestUploadResume(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/upload-resume" {
			t.Errorf("path = %s", r.URL.Path)
		}
		file, header, err := r.FormFile("resume")
		if err != nil {
			t.Fatalf("FormFile: %v", err)
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		if header.Filename != "cv.pdf" || string(data) != "%PDF-1.4" {
			t.Errorf("got file %q with %q", header.Filename, data)
		}
		io.WriteString(w, `{"personalInfo":{"name":"Ada"},"skills":[]}`)
	}))
	defer srv.Close()

	raw, err := New(srv.URL, 0, zap.NewNop()).UploadResume(context.Background(), "cv.pdf", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("UploadResume: %v", err)
	}
	if !strings.Contains(string(raw), `"Ada"`) {
		t.Errorf("raw = %s", raw)
	}
}

func TestUploadResumeInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>oops</html>")
	}))
	defer srv.Close()

	if _, err := New(srv.URL, 0, zap.NewNop()).UploadResume(context.Background(), "cv.docx", strings.NewReader("x")); err == nil {
		t.Fatal("expected an error for a non-JSON body")
	}
}
