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
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4o-mini"

	// Extraction wants determinism and room to be exhaustive.
	structuredTemperature = 0.1
	structuredMaxTokens   = 4000
)

// StructuredClient calls an OpenAI-shape chat-completions endpoint with the
// strict extraction prompt and parses the JSON payload of the first choice.
type StructuredClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *log.Logger
}

func NewStructuredClient(baseURL, apiKey, model string, timeout time.Duration, logger *log.Logger) *StructuredClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if strings.TrimSpace(model) == "" {
		model = defaultOpenAIModel
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &StructuredClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Extract runs the structured-extraction pass over postingText. Any transport
// or parse failure is returned as an error; the caller degrades that side of
// the analysis to fallback data rather than aborting.
func (c *StructuredClient) Extract(ctx context.Context, postingText string) (out analysis.StructuredExtraction, err error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: structuredPrompt(postingText)},
		},
		Temperature: structuredTemperature,
		MaxTokens:   structuredMaxTokens,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return out, fmt.Errorf("marshal extraction request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return out, fmt.Errorf("create extraction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return out, fmt.Errorf("extraction request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, fmt.Errorf("read extraction response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return out, fmt.Errorf("extraction endpoint returned HTTP %d: %s", resp.StatusCode, firstBytes(respBytes, 200))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBytes, &chatResp); err != nil {
		return out, fmt.Errorf("parse extraction response: %w", err)
	}
	if chatResp.Error != nil {
		return out, fmt.Errorf("extraction endpoint error (%s): %s", chatResp.Error.Type, chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return out, fmt.Errorf("extraction endpoint returned no choices")
	}

	if err := decodeModelJSON(chatResp.Choices[0].Message.Content, false, &out); err != nil {
		return out, fmt.Errorf("structured extraction: %w", err)
	}

	if c.logger != nil {
		c.logger.Printf("AI extraction ok | model=%s hard_skills=%d technologies=%d", c.model, len(out.HardSkills), len(out.Technologies))
	}
	return out, nil
}

func firstBytes(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n])
}
