package answersvc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/classreconnect/backend/core/assist"
	logsvc "github.com/classreconnect/backend/services/logger"
)

func newTestClient(srv *httptest.Server) *grokClient {
	return &grokClient{
		key:     "test-key",
		model:   "grok-2",
		baseURL: srv.URL,
		client:  srv.Client(),
		logger:  logsvc.NewNopLogger(),
	}
}

func Test_grokClient_Answer(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != chatCompletionsPath {
			t.Errorf("path = %v; want %v", r.URL.Path, chatCompletionsPath)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %v; want Bearer test-key", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(chatResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{
				{Message: chatMessage{Role: "assistant", Content: "  An index speeds up lookups.  "}},
			},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	text, err := client.Answer(context.Background(), "What is an index?", "- DBMS Module 1")
	if err != nil {
		t.Fatalf("Answer() failed: %v", err)
	}
	if text != "An index speeds up lookups." {
		t.Errorf("Answer() = %q; want trimmed answer", text)
	}

	if gotReq.Model != "grok-2" {
		t.Errorf("request model = %v; want grok-2", gotReq.Model)
	}
	if len(gotReq.Messages) != 3 {
		t.Fatalf("request messages = %v; want 3", len(gotReq.Messages))
	}
	if gotReq.Messages[1].Content != "Local study context:\n- DBMS Module 1" {
		t.Errorf("context message = %q", gotReq.Messages[1].Content)
	}
	if gotReq.Messages[2].Role != "user" || gotReq.Messages[2].Content != "What is an index?" {
		t.Errorf("user message = %+v", gotReq.Messages[2])
	}
}

func Test_grokClient_Answer_noKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request with no API key configured")
	}))
	defer srv.Close()

	client := newTestClient(srv)
	client.key = ""
	if _, err := client.Answer(context.Background(), "Hello?", ""); err != assist.ErrUnavailable {
		t.Errorf("Answer() error = %v; want %v", err, assist.ErrUnavailable)
	}
}

func Test_grokClient_Answer_retriesServerErrors(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(srv)
	if _, err := client.Answer(context.Background(), "Anyone home?", ""); err != assist.ErrUnavailable {
		t.Errorf("Answer() error = %v; want %v", err, assist.ErrUnavailable)
	}
	if requests != 3 {
		t.Errorf("requests = %v; want 3 attempts", requests)
	}
}

func Test_grokClient_Answer_emptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(chatResponse{})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	if _, err := client.Answer(context.Background(), "Anyone home?", ""); err != assist.ErrUnavailable {
		t.Errorf("Answer() error = %v; want %v", err, assist.ErrUnavailable)
	}
}
