package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// ErrEmptyGeneration indicates the model returned empty or whitespace-only
// text. That is a summarization failure, never a valid empty summary.
var ErrEmptyGeneration = errors.New("model returned empty text")

// Summarizer produces prose summarizing a non-empty input text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

const systemPrompt = "You are a helpful assistant that summarizes online discussions and articles concisely."

const instructions = `Summarize the content below in English, in at most 200 words.

Requirements:
- Be clear and concise, in well-structured prose.
- Highlight the main points and skip incidental detail.
- Use bullet points when multiple distinct viewpoints are present.

Content:
`

const (
	defaultModel       = "gpt-4o-mini"
	defaultMaxTokens   = 1024
	defaultTemperature = 0.3
	defaultTimeout     = 60 * time.Second

	// One bounded retry on transient transport errors. The model call is the
	// slowest, most failure-prone step in the pipeline.
	maxRetries   = 1
	retryBackoff = 2 * time.Second
)

// Config holds settings for the OpenAI-compatible summarization backend.
type Config struct {
	APIKey      string
	BaseURL     string // empty means the provider default
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// OpenAISummarizer calls an OpenAI-compatible chat-completion API with a fixed
// instructional prompt wrapped around the input.
type OpenAISummarizer struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
}

func NewOpenAISummarizer(cfg Config) (*OpenAISummarizer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("summarizer: API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout: 10 * time.Second,
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	s := &OpenAISummarizer{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
	}
	if s.model == "" {
		s.model = defaultModel
	}
	if s.maxTokens <= 0 {
		s.maxTokens = defaultMaxTokens
	}
	if s.temperature <= 0 {
		s.temperature = defaultTemperature
	}
	if s.timeout <= 0 {
		s.timeout = defaultTimeout
	}
	return s, nil
}

func (s *OpenAISummarizer) Summarize(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       s.model,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: instructions + text},
		},
	}

	var resp openai.ChatCompletionResponse
	var err error
	for attempt := 0; ; attempt++ {
		resp, err = s.client.CreateChatCompletion(ctx, req)
		if err == nil {
			break
		}
		if attempt >= maxRetries || !retryable(err) {
			return "", fmt.Errorf("chat completion: %w", err)
		}
		slog.Warn("summarizer: transient failure, retrying", "attempt", attempt+1, "error", err)
		select {
		case <-time.After(retryBackoff):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyGeneration
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", ErrEmptyGeneration
	}
	return out, nil
}

// retryable reports whether an error is worth one more attempt. Client errors
// (bad key, bad request) never are; transport failures and 5xx responses are.
func retryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode >= 500
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}
