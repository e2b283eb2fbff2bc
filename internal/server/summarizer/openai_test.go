package summarizer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func fakeCompletionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}))
}

func TestOpenAISummarizer_Summarize(t *testing.T) {
	srv := fakeCompletionServer(t, "  a tidy summary \n")
	defer srv.Close()

	s := NewOpenAISummarizer("test-key", srv.URL, "gpt-4o-mini")

	got, err := s.Summarize(context.Background(), "a very long note")
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if got != "a tidy summary" {
		t.Fatalf("summary = %q", got)
	}
}

func TestOpenAISummarizer_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	s := NewOpenAISummarizer("test-key", srv.URL, "gpt-4o-mini")

	if _, err := s.Summarize(context.Background(), "text"); err == nil {
		t.Fatal("expected an error for an empty choice list")
	}
}

func TestOpenAISummarizer_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := NewOpenAISummarizer("test-key", srv.URL, "gpt-4o-mini")

	if _, err := s.Summarize(context.Background(), "text"); err == nil {
		t.Fatal("expected an upstream error")
	}
}
