// Package llm wraps an OpenAI-compatible chat-completions endpoint used to
// condense article content into a short title and a three-line summary.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"newschomp/internal/config"
	"newschomp/internal/domain"
	"newschomp/internal/ports"
)

const systemPrompt = `You are a news article condenser.
Summarize the article into 3 concise lines.
Include specific details: people, places, things.
Express the main idea of the article in those three lines.
Take the most interesting points made in the article and provide a comprehensive narrative for the reader.
Cut filler. Be direct and objective.
Finally, provide a unique, 4 word title.
Present the news as an original source. Do not reference 'the article' explicitly.

Output format:
TITLE: <4 word title>
<summary line 1>
<summary line 2>
<summary line 3>`

const titleSentinel = "TITLE:"

// Summarizer talks to an OpenAI-compatible API. Every failure mode —
// missing key, transport error, malformed response — degrades to a nil
// summary rather than an error, so the pipeline never blocks on it.
type Summarizer struct {
	endpoint   string
	model      string
	apiKey     string
	maxChars   int
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ports.Summarizer = (*Summarizer)(nil)

// NewSummarizer builds a client from configuration.
func NewSummarizer(cfg config.OpenAIConfig, logger *slog.Logger) *Summarizer {
	maxChars := cfg.MaxChars
	if maxChars <= 0 {
		maxChars = 4000
	}
	return &Summarizer{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		maxChars: maxChars,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Summarize condenses content into a short title plus summary body.
// Empty content and missing credentials return nil without any call.
func (s *Summarizer) Summarize(ctx context.Context, content string) *domain.Summary {
	if strings.TrimSpace(content) == "" {
		return nil
	}
	if s.apiKey == "" || s.endpoint == "" || s.model == "" {
		s.debug("summarizer not configured, skipping enrichment")
		return nil
	}

	if len(content) > s.maxChars {
		content = content[:s.maxChars]
	}

	raw, err := s.complete(ctx, content)
	if err != nil {
		s.debug("summary generation failed", "error", err)
		return nil
	}

	summary := parseSummary(raw)
	if summary == nil {
		s.debug("summary response had no usable lines")
	}
	return summary
}

func (s *Summarizer) complete(ctx context.Context, content string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"model": s.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": "Summarize this article:\n\n" + content},
		},
		"temperature":           0.7,
		"max_completion_tokens": 250,
	})
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send completion: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("completion error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("response carried no choices")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// parseSummary splits the model output on the TITLE: sentinel line; all
// remaining non-empty lines become the summary body, joined in order.
func parseSummary(raw string) *domain.Summary {
	var (
		title string
		body  []string
	)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, titleSentinel) {
			title = strings.TrimSpace(strings.TrimPrefix(line, titleSentinel))
			continue
		}
		body = append(body, line)
	}

	if title == "" && len(body) == 0 {
		return nil
	}
	return &domain.Summary{Title: title, Body: strings.Join(body, "\n")}
}

func (s *Summarizer) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
