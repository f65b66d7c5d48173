package generate

import (
	"context"

	"github.com/yourorg/listing-api/internal/listing"
)

// Description returns a listing description. Without a provider it returns
// the long demo template; when the provider call fails it returns the short
// template.
func (g *Generator) Description(ctx context.Context, l listing.Listing) Result[string] {
	if !g.Enabled() {
		res := fallbackResult(DemoDescription(l), ReasonAIDisabled, nil)
		g.record(ctx, KindDescription, l, res.Source, res.Reason, nil)
		return res
	}

	text, err := g.complete(ctx, KindDescription, DescriptionPrompt(l), g.descriptionTokens)
	if err != nil {
		res := fallbackResult(ShortDescription(l), classify(err), err)
		g.record(ctx, KindDescription, l, res.Source, res.Reason, err)
		return res
	}

	g.record(ctx, KindDescription, l, SourceAI, ReasonNone, nil)
	return aiResult(text)
}
