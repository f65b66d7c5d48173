package claude_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/listing-api/claude"
)

func newServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestComplete_SendsMessagesRequest(t *testing.T) {
	t.Parallel()

	var got claude.MessageRequest
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-test", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		assert.Equal(t, "application/json", r.Header.Get("content-type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant",
			"content":[{"type":"text","text":"A bright home."},{"type":"text","text":"ignored"}],
			"stop_reason":"end_turn","usage":{"input_tokens":10,"output_tokens":4}}`))
	})

	c := claude.NewClient(claude.Config{APIKey: "sk-test", BaseURL: srv.URL + "/"})
	text, err := c.Complete(context.Background(), "Describe it", 500)
	require.NoError(t, err)

	assert.Equal(t, "A bright home.", text)
	assert.Equal(t, claude.DefaultModel, got.Model)
	assert.Equal(t, 500, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, claude.RoleUser, got.Messages[0].Role)
	assert.Equal(t, "Describe it", got.Messages[0].Content)
}

func TestComplete_StatusErrorNoRetry(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"boom"}}`))
	})

	c := claude.NewClient(claude.Config{APIKey: "k", BaseURL: srv.URL})
	_, err := c.Complete(context.Background(), "p", 10)
	require.Error(t, err)

	var se *claude.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Equal(t, "api_error", se.Type)
	assert.Equal(t, "boom", se.Message)
	assert.EqualValues(t, 1, calls.Load(), "a single attempt only")
}

func TestComplete_ClientErrorStatus(t *testing.T) {
	t.Parallel()

	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`not json`))
	})

	c := claude.NewClient(claude.Config{APIKey: "bad", BaseURL: srv.URL})
	_, err := c.Complete(context.Background(), "p", 10)

	var se *claude.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Equal(t, "claude error 401", se.Error())
}

func TestComplete_EmptyContent(t *testing.T) {
	t.Parallel()

	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	})

	c := claude.NewClient(claude.Config{APIKey: "k", BaseURL: srv.URL})
	_, err := c.Complete(context.Background(), "p", 10)
	assert.ErrorIs(t, err, claude.ErrEmptyContent)
}

func TestComplete_MalformedBody(t *testing.T) {
	t.Parallel()

	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content": "oops"`))
	})

	c := claude.NewClient(claude.Config{APIKey: "k", BaseURL: srv.URL})
	_, err := c.Complete(context.Background(), "p", 10)
	assert.ErrorIs(t, err, claude.ErrMalformedResponse)
}

func TestComplete_Timeout(t *testing.T) {
	t.Parallel()

	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	c := claude.NewClient(claude.Config{APIKey: "k", BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := c.Complete(context.Background(), "p", 10)
	require.Error(t, err)

	var se *claude.StatusError
	assert.False(t, errors.As(err, &se))
}

func TestCreateMessage_RateLimited(t *testing.T) {
	t.Parallel()

	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"ok"}]}`))
	})

	c := claude.NewClient(claude.Config{APIKey: "k", BaseURL: srv.URL, RequestsPerSecond: 0.01})
	_, err := c.Complete(context.Background(), "p", 10)
	require.NoError(t, err, "the first call spends the initial token")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.Complete(ctx, "p", 10)
	assert.ErrorIs(t, err, claude.ErrRateLimited)
}

func TestCreateMessage_CanceledContextIsNotRateLimited(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"ok"}]}`))
	})

	for _, rps := range []float64{0, 0.01} {
		c := claude.NewClient(claude.Config{APIKey: "k", BaseURL: srv.URL, RequestsPerSecond: rps})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := c.Complete(ctx, "p", 10)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.NotErrorIs(t, err, claude.ErrRateLimited)
	}
	assert.Zero(t, calls.Load())
}

func TestCreateMessage_ExpiredDeadlineIsNotRateLimited(t *testing.T) {
	t.Parallel()

	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"ok"}]}`))
	})

	c := claude.NewClient(claude.Config{APIKey: "k", BaseURL: srv.URL})
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := c.Complete(ctx, "p", 10)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, claude.ErrRateLimited)
}

func TestFirstText(t *testing.T) {
	t.Parallel()

	var nilResp *claude.MessageResponse
	_, ok := nilResp.FirstText()
	assert.False(t, ok)

	resp := &claude.MessageResponse{Content: []claude.ContentBlock{{Type: "thinking"}, {Type: "text", Text: "later"}}}
	_, ok = resp.FirstText()
	assert.False(t, ok, "only the first block counts")
}
