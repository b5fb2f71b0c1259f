package generation_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-sitebuilder/internal/generation"
)

func TestOpenAICompleteSendsJSONModeRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("unexpected auth header %q", got)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		format, _ := body["response_format"].(map[string]any)
		if format["type"] != "json_object" {
			t.Errorf("expected json_object response format, got %v", body["response_format"])
		}
		messages, _ := body["messages"].([]any)
		if len(messages) != 2 {
			t.Errorf("expected system and user messages, got %d", len(messages))
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"ok\":true}"}}]}`))
	}))
	defer server.Close()

	provider := generation.NewOpenAI("sk-test", generation.WithOpenAIBaseURL(server.URL))
	out, err := provider.Complete(context.Background(), generation.Request{System: "json only", Prompt: "hi"})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if out != `{"ok":true}` {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestOpenAICompleteReportsUpstreamStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down"}}`))
	}))
	defer server.Close()

	provider := generation.NewOpenAI("sk-test", generation.WithOpenAIBaseURL(server.URL))
	_, err := provider.Complete(context.Background(), generation.Request{Prompt: "hi"})

	var upstream *generation.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.Status != http.StatusTooManyRequests || upstream.Message != "slow down" {
		t.Fatalf("unexpected upstream error %#v", upstream)
	}
}

func TestOpenAIRequiresKey(t *testing.T) {
	_, err := generation.NewOpenAI("").Complete(context.Background(), generation.Request{Prompt: "hi"})
	if !errors.Is(err, generation.ErrProviderRequired) {
		t.Fatalf("expected ErrProviderRequired, got %v", err)
	}
}
