// Package flavor fetches short generated quips for the start and end screens.
// Every path returns usable text: failures degrade to fixed fallbacks.
package flavor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Kind selects which message is requested.
type Kind uint8

const (
	Intro Kind = iota
	Outro
)

func (k Kind) String() string {
	switch k {
	case Intro:
		return "intro"
	case Outro:
		return "outro"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Source produces flavor text. Implementations never fail; they fall back.
type Source interface {
	Message(ctx context.Context, kind Kind, score int) string
}

// Fallback returns the fixed text used when generation fails.
func Fallback(kind Kind, score int) string {
	switch kind {
	case Intro:
		return "Navigate the grid. Consume the data."
	case Outro:
		return fmt.Sprintf("Final Score: %d. Try again.", score)
	}
	return ""
}

// emptyFallback is used when the service answers but says nothing.
func emptyFallback(kind Kind, score int) string {
	switch kind {
	case Intro:
		return "Navigate the grid. Consume the data."
	case Outro:
		return fmt.Sprintf("Score: %d. You tangled yourself up.", score)
	}
	return ""
}

// Prompt builds the generation prompt for kind.
func Prompt(kind Kind, score int) string {
	switch kind {
	case Intro:
		return "Generate a short, cool 1-sentence message for a snake game pilot entering the 'Neon Grid'. " +
			"Keep it under 12 words and use snake-like or grid-based terminology."
	case Outro:
		return fmt.Sprintf("Generate a short, snarky 1-sentence commentary for a player who just crashed their snake "+
			"with a score of %d. Be witty and mention their length or the grid. Under 18 words.", score)
	}
	return ""
}

// Static always answers with the fallback text.
type Static struct{}

// Message returns Fallback(kind, score).
func (Static) Message(_ context.Context, kind Kind, score int) string {
	return Fallback(kind, score)
}

// Config describes the generative language endpoint.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	Timeout     time.Duration
}

// DefaultConfig returns the standard endpoint settings without a key.
func DefaultConfig() Config {
	return Config{
		Model:       "gemini-3-flash-preview",
		BaseURL:     "https://generativelanguage.googleapis.com/v1beta",
		Temperature: 0.9,
		Timeout:     10 * time.Second,
	}
}

// Client calls the generateContent REST method.
type Client struct {
	cfg  Config
	http *http.Client
	log  *log.Logger
}

// NewClient builds a client. A nil logger uses log.Default().
func NewClient(cfg Config, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  logger,
	}
}

// New returns a Client when an API key is configured and Static otherwise.
func New(cfg Config, logger *log.Logger) Source {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return Static{}
	}
	return NewClient(cfg, logger)
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents         []content `json:"contents"`
	GenerationConfig struct {
		Temperature float64 `json:"temperature"`
	} `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Message requests generated text for kind, falling back on any failure.
func (c *Client) Message(ctx context.Context, kind Kind, score int) string {
	text, err := c.generate(ctx, Prompt(kind, score))
	if err != nil {
		c.log.Printf("flavor: %s: %v", kind, err)
		return Fallback(kind, score)
	}
	if text == "" {
		return emptyFallback(kind, score)
	}
	return text
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	var req generateRequest
	req.Contents = []content{{Parts: []part{{Text: prompt}}}}
	req.GenerationConfig.Temperature = c.cfg.Temperature
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(c.cfg.BaseURL, "/"), url.PathEscape(c.cfg.Model))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Candidates) == 0 {
		return "", nil
	}
	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}
