package ai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/johnquangdev/meeting-notes/pkg/config"
)

// Chat roles understood by the completion endpoint
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat turn sent to the model
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client calls an OpenAI-compatible chat completion endpoint
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
	client      *http.Client
	// stream has no overall Timeout; a long reply must not be cut off mid-body
	stream  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a completion client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewClient(cfg *config.LLMConfig) *Client {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	base := "https://api.openai.com"
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	}

	c := &Client{
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(base, "/"),
		model:       "gpt-4o-mini",
		temperature: 0.3,
		limiter:     rate.NewLimiter(rate.Inf, 1),
	}
	timeout := 60 * time.Second
	if cfg != nil {
		if cfg.Model != "" {
			c.model = cfg.Model
		}
		c.temperature = cfg.Temperature
		c.maxTokens = cfg.MaxTokens
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
		if cfg.RequestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
		}
	}
	c.client = &http.Client{Timeout: timeout}
	c.stream = &http.Client{Transport: streamTransport(timeout)}
	return c
}

// streamTransport waits at most timeout for response headers and leaves the
// body to the request context
func streamTransport(timeout time.Duration) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.ResponseHeaderTimeout = timeout
	return t
}

// Model returns the default model name
func (c *Client) Model() string {
	return c.model
}

// ResponseFormat asks the endpoint for a constrained output type
type ResponseFormat struct {
	Type string `json:"type"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
	Stream         bool            `json:"stream,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// chatChunk is one server-sent event of a streamed completion
type chatChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Option customises a single request
type Option func(*ChatRequest)

// WithModel overrides the model for one request
func WithModel(model string) Option {
	return func(r *ChatRequest) {
		if model != "" {
			r.Model = model
		}
	}
}

// WithJSONResponse asks the endpoint to return a JSON object
func WithJSONResponse() Option {
	return func(r *ChatRequest) {
		r.ResponseFormat = &ResponseFormat{Type: "json_object"}
	}
}

// StatusError is returned when the endpoint answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("completion endpoint returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("completion endpoint returned status %d: %s", e.StatusCode, e.Body)
}

// Temporary reports whether retrying the same request may succeed
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Complete sends messages and returns the content of the first choice.
// An empty string with a nil error means the model produced no content.
func (c *Client) Complete(ctx context.Context, messages []Message, opts ...Option) (string, error) {
	resp, err := c.do(ctx, c.newRequest(messages, false, opts))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", nil
	}
	return cr.Choices[0].Message.Content, nil
}

// Stream sends messages in streaming mode and calls onDelta for every content fragment
func (c *Client) Stream(ctx context.Context, messages []Message, onDelta func(string) error, opts ...Option) error {
	resp, err := c.do(ctx, c.newRequest(messages, true, opts))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "[DONE]" {
			return nil
		}

		var chunk chatChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return fmt.Errorf("failed to decode stream chunk: %w", err)
		}
		for _, choice := range chunk.Choices {
			if choice.Delta.Content == "" {
				continue
			}
			if err := onDelta(choice.Delta.Content); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read stream: %w", err)
	}
	return nil
}

func (c *Client) newRequest(messages []Message, stream bool, opts []Option) ChatRequest {
	req := ChatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Stream:      stream,
	}
	for _, opt := range opts {
		opt(&req)
	}
	return req
}

func (c *Client) do(ctx context.Context, reqBody ChatRequest) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")
	if reqBody.Stream {
		req.Header.Set("Accept", "text/event-stream")
	}

	hc := c.client
	if reqBody.Stream {
		hc = c.stream
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return resp, nil
}
