package generate

import (
	"context"
	"errors"
	"strings"

	"github.com/yourorg/listing-api/internal/listing"
)

// Platform keys, in the order the posts are presented.
const (
	PlatformInstagram = "instagram"
	PlatformFacebook  = "facebook"
	PlatformTikTok    = "tiktok"
	PlatformTwitter   = "twitter"
	PlatformYouTube   = "youtube"
)

var Platforms = []string{PlatformInstagram, PlatformFacebook, PlatformTikTok, PlatformTwitter, PlatformYouTube}

// SocialPosts holds one post per supported platform.
type SocialPosts struct {
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	TikTok    string `json:"tiktok"`
	Twitter   string `json:"twitter"`
	YouTube   string `json:"youtube"`
}

func (p *SocialPosts) field(platform string) *string {
	switch platform {
	case PlatformInstagram:
		return &p.Instagram
	case PlatformFacebook:
		return &p.Facebook
	case PlatformTikTok:
		return &p.TikTok
	case PlatformTwitter:
		return &p.Twitter
	case PlatformYouTube:
		return &p.YouTube
	}
	return nil
}

// Get returns the post for platform, or "" for an unknown platform.
func (p SocialPosts) Get(platform string) string {
	if f := p.field(platform); f != nil {
		return *f
	}
	return ""
}

// Map returns the posts keyed by platform.
func (p SocialPosts) Map() map[string]string {
	out := make(map[string]string, len(Platforms))
	for _, k := range Platforms {
		out[k] = p.Get(k)
	}
	return out
}

// SocialPosts returns one post per platform. The fallback set is built up
// front so every failure path can return it.
func (g *Generator) SocialPosts(ctx context.Context, l listing.Listing) Result[SocialPosts] {
	fallback := FallbackPosts(l)
	if !g.Enabled() {
		res := fallbackResult(fallback, ReasonAIDisabled, nil)
		g.record(ctx, KindSocial, l, res.Source, res.Reason, nil)
		return res
	}

	res := g.socialFromModel(ctx, l, fallback)
	g.record(ctx, KindSocial, l, res.Source, res.Reason, res.Err)
	return res
}

func (g *Generator) socialFromModel(ctx context.Context, l listing.Listing, fallback SocialPosts) Result[SocialPosts] {
	text, err := g.complete(ctx, KindSocial, SocialPrompt(l), g.socialTokens)
	if err != nil {
		return fallbackResult(fallback, classify(err), err)
	}

	obj, err := ExtractJSONObject(text)
	if err != nil {
		reason := ReasonInvalidJSON
		if errors.Is(err, ErrNoJSONObject) {
			reason = ReasonNoJSONObject
		}
		return fallbackResult(fallback, reason, err)
	}

	posts, used := mergePosts(obj, fallback)
	switch {
	case used == 0:
		return fallbackResult(fallback, ReasonIncompletePosts, nil)
	case used < len(Platforms):
		return Result[SocialPosts]{Value: posts, Source: SourceAI, Reason: ReasonPartialPosts}
	default:
		return aiResult(posts)
	}
}

// mergePosts takes every non-blank string the model produced for a known
// platform and fills the rest from fallback. Unknown keys are dropped.
func mergePosts(obj map[string]any, fallback SocialPosts) (SocialPosts, int) {
	out := fallback
	used := 0
	for _, platform := range Platforms {
		s, ok := lookupPlatform(obj, platform).(string)
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}
		*out.field(platform) = s
		used++
	}
	return out, used
}

// lookupPlatform matches keys case-insensitively ("TikTok" finds tiktok).
func lookupPlatform(obj map[string]any, platform string) any {
	if v, ok := obj[platform]; ok {
		return v
	}
	for k, v := range obj {
		if strings.EqualFold(strings.TrimSpace(k), platform) {
			return v
		}
	}
	return nil
}
