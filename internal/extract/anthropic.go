package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"career-studio/internal/domain/analysis"
)

const (
	defaultAnthropicBaseURL = "https://api.anthropic.com"
	defaultAnthropicModel   = "claude-sonnet-4-20250514"
	anthropicAPIVersion     = "2023-06-01"

	insightMaxTokens = 4096
)

// InsightClient calls an Anthropic-shape messages endpoint with the strategic
// analysis prompt. It runs independently of the structured client; one
// provider's outage must never sink the whole analysis.
type InsightClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *log.Logger
}

func NewInsightClient(baseURL, apiKey, model string, timeout time.Duration, logger *log.Logger) *InsightClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultAnthropicBaseURL
	}
	if strings.TrimSpace(model) == "" {
		model = defaultAnthropicModel
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &InsightClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type messagesRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Extract runs the insight pass over postingText. Transport failures return an
// error; an unparseable model payload returns (nil, nil), explicitly signaling
// "insight tier degraded" without treating it as a hard failure.
func (c *InsightClient) Extract(ctx context.Context, postingText string) (*analysis.InsightExtraction, error) {
	reqBody := messagesRequest{
		Model:     c.model,
		MaxTokens: insightMaxTokens,
		Messages: []chatMessage{
			{Role: "user", Content: insightPrompt(postingText)},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal insight request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create insight request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Anthropic-Version", anthropicAPIVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("insight request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read insight response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("insight endpoint returned HTTP %d: %s", resp.StatusCode, firstBytes(respBytes, 200))
	}

	var msgResp messagesResponse
	if err := json.Unmarshal(respBytes, &msgResp); err != nil {
		return nil, fmt.Errorf("parse insight response: %w", err)
	}
	if msgResp.Error != nil {
		return nil, fmt.Errorf("insight endpoint error (%s): %s", msgResp.Error.Type, msgResp.Error.Message)
	}
	if len(msgResp.Content) == 0 {
		return nil, fmt.Errorf("insight endpoint returned no content")
	}

	var out analysis.InsightExtraction
	if err := decodeModelJSON(msgResp.Content[0].Text, true, &out); err != nil {
		if c.logger != nil {
			c.logger.Printf("AI insight parse failed, degrading | model=%s err=%v", c.model, err)
		}
		return nil, nil
	}

	if c.logger != nil {
		c.logger.Printf("AI insight ok | model=%s red_flags=%d signals=%d", c.model, len(out.HiddenInsights.RedFlags), len(out.HiddenInsights.PositiveSignals))
	}
	return &out, nil
}
