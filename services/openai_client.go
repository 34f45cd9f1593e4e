package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ChatRequest is a single system + user exchange.
type ChatRequest struct {
	Model       string
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// Completer returns the assistant text for a chat request.
type Completer interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

type OpenAIOptions struct {
	APIKey  string
	OrgID   string
	BaseURL string
	Timeout time.Duration
}

// OpenAIClient speaks the chat completions API.
type OpenAIClient struct {
	apiKey     string
	orgID      string
	baseURL    string
	httpClient *http.Client
}

var _ Completer = (*OpenAIClient)(nil)

func NewOpenAIClient(opts OpenAIOptions) *OpenAIClient {
	base := opts.BaseURL
	if base == "" {
		base = "https://api.openai.com/v1"
	}
	return &OpenAIClient{
		apiKey:     opts.APIKey,
		orgID:      opts.OrgID,
		baseURL:    strings.TrimSuffix(base, "/"),
		httpClient: &http.Client{Timeout: opts.Timeout},
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, r ChatRequest) (string, error) {
	reqBody := map[string]any{
		"model": r.Model,
		"messages": []map[string]string{
			{"role": "system", "content": r.System},
			{"role": "user", "content": r.User},
		},
		"temperature": r.Temperature,
		"max_tokens":  r.MaxTokens,
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.orgID != "" {
		req.Header.Set("OpenAI-Organization", c.orgID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openAI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}
	return result.Choices[0].Message.Content, nil
}
