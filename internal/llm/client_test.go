package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newPingServer(t *testing.T, reply string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("chemin appelé = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("corps de requête illisible : %v", err)
		}
		if req.Model == "" || len(req.Messages) == 0 {
			t.Errorf("requête incomplète : %+v", req)
		}

		w.WriteHeader(status)
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": reply}},
			},
			"usage": map[string]int{"prompt_tokens": 7, "completion_tokens": 1},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestPing(t *testing.T) {
	t.Setenv(apiKeyEnvVar, "test-key")

	srv := newPingServer(t, "ok", http.StatusOK)
	defer srv.Close()

	c := NewClient(srv.URL, "openai/gpt-5-chat")
	report, err := c.Ping(context.Background())
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if report.Reply != "ok" {
		t.Errorf("Reply = %q", report.Reply)
	}
	if report.PromptTokens != 7 || report.CompletionTokens != 1 {
		t.Errorf("usage = %d/%d", report.PromptTokens, report.CompletionTokens)
	}
	if report.Latency <= 0 {
		t.Error("latence non mesurée")
	}
}

func TestPingUnexpectedReply(t *testing.T) {
	t.Setenv(apiKeyEnvVar, "test-key")

	srv := newPingServer(t, "bonjour", http.StatusOK)
	defer srv.Close()

	c := NewClient(srv.URL, "openai/gpt-5-chat")
	if _, err := c.Ping(context.Background()); err == nil {
		t.Fatal("réponse inattendue acceptée")
	}
}

func TestPingMissingKey(t *testing.T) {
	t.Setenv(apiKeyEnvVar, "")

	c := NewClient("https://openrouter.ai/api/v1", "openai/gpt-5-chat")
	if _, err := c.Ping(context.Background()); err == nil {
		t.Fatal("ping sans clé API accepté")
	}
}
