// Package llm fournit un client minimal pour les API de chat completions
// compatibles OpenRouter. Seul un ping de connectivité est nécessaire ici,
// la génération proprement dite se fait hors de cet outil.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	apiKeyEnvVar       = "OPENROUTER_API_KEY"
	maxResponseBytes   = 1 << 20 // 1 MiB, largement suffisant pour une completion
)

// Client encapsule un endpoint de chat completions et un modèle.
type Client struct {
	endpoint string // base, ex: https://openrouter.ai/api/v1
	model    string
	apiKey   string
	http     *http.Client
}

// NewClient construit un client. La clé API vient de l'environnement
// (OPENROUTER_API_KEY), jamais du fichier de configuration.
func NewClient(endpoint, model string) *Client {
	return &Client{
		endpoint: strings.TrimRight(strings.TrimSpace(endpoint), "/"),
		model:    strings.TrimSpace(model),
		apiKey:   strings.TrimSpace(os.Getenv(apiKeyEnvVar)),
		http:     &http.Client{Timeout: defaultHTTPTimeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// PingReport résume un ping réussi.
type PingReport struct {
	Model            string
	Latency          time.Duration
	Reply            string
	PromptTokens     int
	CompletionTokens int
}

// Ping envoie une sonde triviale ("respond with exactly: ok") et vérifie la
// réponse. Sert à valider clé API, endpoint et modèle avant usage.
func (c *Client) Ping(ctx context.Context) (*PingReport, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("clé API absente : définir %s dans l'environnement", apiKeyEnvVar)
	}

	start := time.Now()
	resp, err := c.complete(ctx, []chatMessage{
		{Role: "user", Content: "respond with exactly: ok"},
	})
	if err != nil {
		return nil, err
	}

	reply := ""
	if len(resp.Choices) > 0 {
		reply = strings.TrimSpace(resp.Choices[0].Message.Content)
	}
	if !strings.EqualFold(strings.Trim(reply, ".!"), "ok") {
		return nil, fmt.Errorf("réponse inattendue du modèle : %q", reply)
	}

	return &PingReport{
		Model:            c.model,
		Latency:          time.Since(start),
		Reply:            reply,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}, nil
}

// Complete envoie un prompt utilisateur unique et retourne le texte de la
// première completion. Utilisé pour le brief de style du prompt "vibe".
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("clé API absente : définir %s dans l'environnement", apiKeyEnvVar)
	}
	resp, err := c.complete(ctx, []chatMessage{{Role: "user", Content: prompt}})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("réponse LLM sans completion")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("completion LLM vide")
	}
	return content, nil
}

func (c *Client) complete(ctx context.Context, messages []chatMessage) (*chatResponse, error) {
	payload := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("échec de sérialisation de la requête : %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("échec de construction de la requête : %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	// en-têtes d'attribution OpenRouter (facultatifs mais recommandés)
	req.Header.Set("HTTP-Referer", "https://github.com/dage/karaoke")
	req.Header.Set("X-Title", "karaoke")

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("échec de l'appel LLM : %w", err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("échec de lecture de la réponse LLM : %w", err)
	}

	var resp chatResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("réponse LLM illisible (HTTP %d) : %w", httpResp.StatusCode, err)
	}
	if resp.Error != nil && resp.Error.Message != "" {
		return nil, fmt.Errorf("erreur API LLM (HTTP %d) : %s", httpResp.StatusCode, resp.Error.Message)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("statut HTTP inattendu du LLM : %d", httpResp.StatusCode)
	}

	return &resp, nil
}
