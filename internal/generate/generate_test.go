package generate_test

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/listing-api/claude"
	"github.com/yourorg/listing-api/internal/generate"
	"github.com/yourorg/listing-api/internal/listing"
)

type fakeCompleter struct {
	mu      sync.Mutex
	text    string
	err     error
	prompts []string
	budgets []int
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string, maxTokens int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	f.budgets = append(f.budgets, maxTokens)
	return f.text, f.err
}

type observation struct{ kind, source, reason string }

type fakeObserver struct {
	mu       sync.Mutex
	gens     []observation
	upstream []observation
}

func (o *fakeObserver) ObserveGeneration(kind, source, reason string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.gens = append(o.gens, observation{kind, source, reason})
}

func (o *fakeObserver) ObserveUpstream(kind, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.upstream = append(o.upstream, observation{kind: kind, reason: outcome})
}

func mustListing(t *testing.T, body string) listing.Listing {
	t.Helper()
	l, err := listing.Parse([]byte(body))
	require.NoError(t, err)
	return l
}

const elmStreet = `{"address": "42 Elm St", "price": 300000, "bedrooms": 2, "bathrooms": 1}`

func TestDescription_Disabled(t *testing.T) {
	t.Parallel()

	obs := &fakeObserver{}
	g := generate.New(nil, generate.WithObserver(obs))
	res := g.Description(context.Background(), listing.Listing{})

	assert.False(t, g.Enabled())
	assert.Equal(t, generate.SourceFallback, res.Source)
	assert.Equal(t, generate.ReasonAIDisabled, res.Reason)
	assert.True(t, strings.HasPrefix(res.Value, "Welcome to your dream home at 123 Main Street!"))
	assert.Contains(t, res.Value, "Schedule your private showing today!")
	assert.Equal(t, []observation{{"description", "fallback", "ai_disabled"}}, obs.gens)
	assert.Empty(t, obs.upstream)
}

func TestDescription_AI(t *testing.T) {
	t.Parallel()

	llm := &fakeCompleter{text: "Charming bungalow."}
	g := generate.New(llm, generate.WithTokenBudgets(321, 0))
	res := g.Description(context.Background(), mustListing(t, elmStreet))

	require.True(t, res.UsedAI())
	assert.Equal(t, "Charming bungalow.", res.Value)
	assert.Equal(t, []int{321}, llm.budgets)

	prompt := llm.prompts[0]
	assert.Contains(t, prompt, "Property Type: Single Family Home")
	assert.Contains(t, prompt, "Address: 42 Elm St")
	assert.Contains(t, prompt, "Price: $300,000")
	assert.Contains(t, prompt, "Bedrooms: 2")
	assert.Contains(t, prompt, "Bathrooms: 1")
	assert.Contains(t, prompt, "Square Feet: Not specified")
	assert.Contains(t, prompt, "Style: cinematic")
}

func TestDescriptionPrompt_Defaults(t *testing.T) {
	t.Parallel()

	prompt := generate.DescriptionPrompt(listing.Listing{})
	assert.Contains(t, prompt, "Address: Beautiful Home")
	assert.Contains(t, prompt, "Price: $500,000")
	assert.Contains(t, prompt, "Bedrooms: 4")
	assert.Contains(t, prompt, "Bathrooms: 3")
}

func TestDescription_UpstreamFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want generate.Reason
	}{
		{"status", &claude.StatusError{StatusCode: 529}, generate.ReasonUpstreamStatus},
		{"wrapped status", fmt.Errorf("call: %w", &claude.StatusError{StatusCode: 400}), generate.ReasonUpstreamStatus},
		{"empty", claude.ErrEmptyContent, generate.ReasonEmptyContent},
		{"malformed", fmt.Errorf("%w: eof", claude.ErrMalformedResponse), generate.ReasonMalformedResponse},
		{"rate limited", fmt.Errorf("%w: wait", claude.ErrRateLimited), generate.ReasonRateLimited},
		{"deadline", context.DeadlineExceeded, generate.ReasonTimeout},
		{"canceled", fmt.Errorf("post messages: %w", context.Canceled), generate.ReasonCanceled},
		{"net timeout", &url.Error{Op: "Post", URL: "x", Err: timeoutErr{}}, generate.ReasonTimeout},
		{"network", errors.New("connection refused"), generate.ReasonUpstreamError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			obs := &fakeObserver{}
			g := generate.New(&fakeCompleter{err: tc.err}, generate.WithObserver(obs))
			res := g.Description(context.Background(), mustListing(t, `{"address": "7 Oak Ave"}`))

			assert.Equal(t, generate.SourceFallback, res.Source)
			assert.Equal(t, tc.want, res.Reason)
			assert.ErrorIs(t, res.Err, tc.err)
			assert.Equal(t, "Welcome to 7 Oak Ave! This beautiful home awaits you. Contact us for a showing today!", res.Value)
			require.Len(t, obs.upstream, 1)
			assert.Equal(t, string(tc.want), obs.upstream[0].reason)
		})
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string { return "i/o timeout" }
func (timeoutErr) Timeout() bool { return true }

func TestSocialPosts_DisabledExample(t *testing.T) {
	t.Parallel()

	res := generate.New(nil).SocialPosts(context.Background(), mustListing(t, elmStreet))

	assert.Equal(t, generate.ReasonAIDisabled, res.Reason)
	assert.Equal(t, "Just Listed: 42 Elm St\n$300,000 | 2BD/1BA\nDM for details! #RealEstate", res.Value.Twitter)
	assert.Equal(t, "JUST LISTED\n\n42 Elm St\n$300,000 | 2 BD / 1 BA\n\nDream home alert! Tap link in bio!\n\n#JustListed #RealEstate #DreamHome #HomeForSale", res.Value.Instagram)
	assert.Equal(t, "NEW LISTING!\n\n42 Elm St\n$300,000\n\n2 Bedrooms | 1 Bathrooms\n\nContact me today for a private showing!", res.Value.Facebook)
	assert.Equal(t, "POV: You just found your dream home $300,000 | 2BD/1BA #realestate #housetour #dreamhome #justlisted", res.Value.TikTok)
	assert.Equal(t, "42 Elm St | Home Tour | $300,000 | 2 BD / 1 BA\n\nTake a virtual tour of this incredible property...", res.Value.YouTube)
}

func TestSocialPosts_EmptyListingDefaults(t *testing.T) {
	t.Parallel()

	res := generate.New(nil).SocialPosts(context.Background(), listing.Listing{})
	assert.Equal(t, "Just Listed: 123 Main Street\n$500,000 | 4BD/3BA\nDM for details! #RealEstate", res.Value.Twitter)
	for _, p := range generate.Platforms {
		assert.NotEmpty(t, res.Value.Get(p), p)
	}
}

func TestSocialPosts_AI(t *testing.T) {
	t.Parallel()

	llm := &fakeCompleter{text: "Here you go:\n```json\n" + `{
		"instagram": "IG post", "facebook": "FB post", "TikTok": "TT post",
		"twitter": "X post", "youtube": "YT post", "linkedin": "dropped"
	}` + "\n```"}
	res := generate.New(llm).SocialPosts(context.Background(), mustListing(t, elmStreet))

	require.True(t, res.UsedAI())
	assert.Equal(t, generate.ReasonNone, res.Reason)
	assert.Equal(t, generate.SocialPosts{
		Instagram: "IG post", Facebook: "FB post", TikTok: "TT post", Twitter: "X post", YouTube: "YT post",
	}, res.Value)
	assert.Equal(t, []int{generate.DefaultSocialMaxTokens}, llm.budgets)
	assert.Contains(t, llm.prompts[0], "Specs: 2 BD / 1 BA")
	assert.Contains(t, llm.prompts[0], "Return ONLY a JSON object")
}

func TestSocialPosts_PartialFilledFromFallback(t *testing.T) {
	t.Parallel()

	llm := &fakeCompleter{text: `{"instagram": "IG only", "twitter": {"text": "nested"}, "facebook": "  "}`}
	l := mustListing(t, elmStreet)
	res := generate.New(llm).SocialPosts(context.Background(), l)

	fallback := generate.FallbackPosts(l)
	assert.Equal(t, generate.SourceAI, res.Source)
	assert.Equal(t, generate.ReasonPartialPosts, res.Reason)
	assert.Equal(t, "IG only", res.Value.Instagram)
	assert.Equal(t, fallback.Twitter, res.Value.Twitter)
	assert.Equal(t, fallback.Facebook, res.Value.Facebook)
}

func TestSocialPosts_FallbackReasons(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		llm  *fakeCompleter
		want generate.Reason
	}{
		{"prose", &fakeCompleter{text: "Sorry, I can't help with that."}, generate.ReasonNoJSONObject},
		{"malformed", &fakeCompleter{text: `{"instagram": "unterminated}`}, generate.ReasonInvalidJSON},
		{"no platforms", &fakeCompleter{text: `{"posts": ["a", "b"]}`}, generate.ReasonIncompletePosts},
		{"upstream", &fakeCompleter{err: &claude.StatusError{StatusCode: 500}}, generate.ReasonUpstreamStatus},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			l := mustListing(t, elmStreet)
			res := generate.New(tc.llm).SocialPosts(context.Background(), l)

			assert.Equal(t, generate.SourceFallback, res.Source)
			assert.Equal(t, tc.want, res.Reason)
			assert.Equal(t, generate.FallbackPosts(l), res.Value)
		})
	}
}

func TestSocialPosts_AlwaysFiveKeys(t *testing.T) {
	t.Parallel()

	for _, llm := range []generate.Completer{nil, &fakeCompleter{text: "{}"}, &fakeCompleter{err: errors.New("down")}} {
		res := generate.New(llm).SocialPosts(context.Background(), listing.Listing{})
		m := res.Value.Map()
		assert.Len(t, m, 5)
		for _, p := range generate.Platforms {
			assert.NotEmpty(t, m[p])
		}
	}
}

func TestSocialPosts_Get(t *testing.T) {
	t.Parallel()

	p := generate.SocialPosts{YouTube: "yt"}
	assert.Equal(t, "yt", p.Get(generate.PlatformYouTube))
	assert.Empty(t, p.Get("myspace"))
}

func TestDescription_CanceledRequestAgainstClient(t *testing.T) {
	t.Parallel()

	obs := &fakeObserver{}
	client := claude.NewClient(claude.Config{APIKey: "k", BaseURL: "http://127.0.0.1:1"})
	g := generate.New(client, generate.WithObserver(obs))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := g.Description(ctx, listing.Listing{})

	assert.Equal(t, generate.SourceFallback, res.Source)
	assert.Equal(t, generate.ReasonCanceled, res.Reason)
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.Equal(t, []observation{{"description", "fallback", "canceled"}}, obs.gens)
}
