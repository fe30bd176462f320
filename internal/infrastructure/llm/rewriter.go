package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"BlogAuditor/internal/config"
	"BlogAuditor/internal/domain"
	"BlogAuditor/internal/ports"
)

// RewriteClient implements ports.Rewriter backed by OpenAI-compatible APIs.
// It lives on the remediation side only; the audit engine never calls it.
type RewriteClient struct {
	endpoint     string
	model        string
	apiKey       string
	systemPrompt string
	httpClient   *http.Client
}

var _ ports.Rewriter = (*RewriteClient)(nil)

// NewRewriteClient builds a client from configuration.
func NewRewriteClient(cfg config.RewriterConfig) *RewriteClient {
	return &RewriteClient{
		endpoint:     cfg.Endpoint,
		model:        cfg.Model,
		apiKey:       cfg.APIKey,
		systemPrompt: cfg.SystemPrompt,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Rewrite asks the model for a revised article body following the fixer's
// instructions. The response is the raw HTML of the first choice.
func (c *RewriteClient) Rewrite(ctx context.Context, article domain.Article, instructions string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("rewrite client is nil")
	}
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return "", fmt.Errorf("rewrite client misconfigured")
	}

	user := fmt.Sprintf("Title: %s\n\nInstructions: %s\n\nArticle HTML:\n%s",
		article.Title, instructions, article.BodyHTML)

	body, err := json.Marshal(map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": safePrompt(c.systemPrompt)},
			{"role": "user", "content": user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal rewrite payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send rewrite request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("rewrite error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode rewrite response: %w", err)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("rewrite response carried no content")
	}

	return parsed.Choices[0].Message.Content, nil
}

func safePrompt(prompt string) string {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "You rewrite blog article HTML while preserving structure and facts."
	}
	return prompt
}
