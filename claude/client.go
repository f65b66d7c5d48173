// Package claude is a minimal client for the Anthropic Messages API.
package claude

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.anthropic.com"
	DefaultVersion = "2023-06-01"
	DefaultModel   = "claude-sonnet-4-20250514"
	DefaultTimeout = 30 * time.Second

	maxResponseBytes = 4 << 20
)

// Config configures a Client. Zero values fall back to the defaults above.
type Config struct {
	APIKey  string
	BaseURL string
	Version string
	Model   string
	Timeout time.Duration
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int
	// RequestsPerSecond throttles outbound calls; 0 means unlimited.
	RequestsPerSecond float64
	// Logger receives retryablehttp's request logs; nil silences them.
	Logger retryablehttp.LeveledLogger
}

type Client struct {
	key     string
	baseURL string
	version string
	model   string
	http    *retryablehttp.Client
	limiter *rate.Limiter
}

func NewClient(cfg Config) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 250 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.RetryMax = cfg.MaxRetries
	rc.HTTPClient.Timeout = orDuration(cfg.Timeout, DefaultTimeout)
	// Hand every final response back so callers see the real status code.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = nil
	if cfg.Logger != nil {
		rc.Logger = cfg.Logger
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		key:     cfg.APIKey,
		baseURL: strings.TrimRight(orString(cfg.BaseURL, DefaultBaseURL), "/"),
		version: orString(cfg.Version, DefaultVersion),
		model:   orString(cfg.Model, DefaultModel),
		http:    rc,
		limiter: limiter,
	}
}

// Model is the model identifier sent with every request.
func (c *Client) Model() string { return c.model }

// CreateMessage posts one Messages API request.
func (c *Client) CreateMessage(ctx context.Context, in MessageRequest) (*MessageResponse, error) {
	if in.Model == "" {
		in.Model = c.model
	}
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("post messages: %w", err)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("wait for rate limiter: %w", ctxErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrRateLimited, err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-api-key", c.key)
	req.Header.Set("anthropic-version", c.version)
	req.Header.Set("content-type", "application/json")
	req.Header.Set("accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, fmt.Errorf("post messages: %w", err)
	}
	defer resp.Body.Close()

	raw, err := ioReadAllLimit(resp.Body, maxResponseBytes)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, raw)
	}

	var out MessageResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &out, nil
}

// Complete sends prompt as a single user message and returns the first text
// block of the answer.
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := c.CreateMessage(ctx, MessageRequest{
		MaxTokens: maxTokens,
		Messages:  []Message{{Role: RoleUser, Content: prompt}},
	})
	if err != nil {
		return "", err
	}
	text, ok := resp.FirstText()
	if !ok {
		return "", ErrEmptyContent
	}
	return text, nil
}

func statusError(code int, raw []byte) error {
	var envelope struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.Unmarshal(raw, &envelope)
	return &StatusError{StatusCode: code, Type: envelope.Error.Type, Message: envelope.Error.Message}
}

func ioReadAllLimit(r io.Reader, limit int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, errors.New("payload too large")
	}
	return b, nil
}

func orString(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func orDuration(v, def time.Duration) time.Duration {
	if v > 0 {
		return v
	}
	return def
}
