package generate

import (
	"fmt"

	"github.com/yourorg/listing-api/internal/listing"
)

const demoDescriptionTemplate = `Welcome to your dream home at %s! This stunning property offers the perfect blend of comfort and elegance.

Step inside to discover an open-concept living space bathed in natural light, featuring gleaming hardwood floors and designer finishes throughout. The gourmet kitchen boasts premium appliances, quartz countertops, and a spacious island perfect for entertaining.

The primary suite is a true retreat with a spa-inspired ensuite and walk-in closet. Additional bedrooms offer flexibility for family, guests, or home office space.

Located in a sought-after neighborhood, this home won't last long. Schedule your private showing today!`

const shortDescriptionTemplate = "Welcome to %s! This beautiful home awaits you. Contact us for a showing today!"

const descriptionPromptTemplate = `Write a compelling real estate listing description for:

Property Type: %s
Address: %s
Price: $%s
Bedrooms: %s
Bathrooms: %s
Square Feet: %s
Style: %s

Write 2-3 engaging paragraphs (150-200 words). No headers, just the description text.`

const socialPromptTemplate = `Create social media posts for this real estate listing:

Address: %s
Price: $%s
Specs: %s BD / %s BA
Type: %s

Return ONLY a JSON object with posts for: instagram, facebook, tiktok, twitter, youtube
No markdown, no explanation, just the JSON.`

// DemoDescription is returned when no provider is configured.
func DemoDescription(l listing.Listing) string {
	return fmt.Sprintf(demoDescriptionTemplate, l.Address(listing.DefaultAddress))
}

// ShortDescription is returned when the provider call fails.
func ShortDescription(l listing.Listing) string {
	return fmt.Sprintf(shortDescriptionTemplate, l.Address(listing.DefaultAddress))
}

func DescriptionPrompt(l listing.Listing) string {
	return fmt.Sprintf(descriptionPromptTemplate,
		l.PropertyType(),
		l.Address(listing.DefaultPromptAddr),
		l.FormattedPrice(),
		l.Bedrooms(),
		l.Bathrooms(),
		l.Sqft(),
		l.Style(),
	)
}

func SocialPrompt(l listing.Listing) string {
	return fmt.Sprintf(socialPromptTemplate,
		l.Address(listing.DefaultAddress),
		l.FormattedPrice(),
		l.Bedrooms(),
		l.Bathrooms(),
		l.PropertyType(),
	)
}

// FallbackPosts builds the deterministic post set for every platform.
func FallbackPosts(l listing.Listing) SocialPosts {
	addr := l.Address(listing.DefaultAddress)
	price := l.FormattedPrice()
	beds := l.Bedrooms()
	baths := l.Bathrooms()
	return SocialPosts{
		Instagram: fmt.Sprintf("JUST LISTED\n\n%s\n$%s | %s BD / %s BA\n\nDream home alert! Tap link in bio!\n\n#JustListed #RealEstate #DreamHome #HomeForSale", addr, price, beds, baths),
		Facebook:  fmt.Sprintf("NEW LISTING!\n\n%s\n$%s\n\n%s Bedrooms | %s Bathrooms\n\nContact me today for a private showing!", addr, price, beds, baths),
		TikTok:    fmt.Sprintf("POV: You just found your dream home $%s | %sBD/%sBA #realestate #housetour #dreamhome #justlisted", price, beds, baths),
		Twitter:   fmt.Sprintf("Just Listed: %s\n$%s | %sBD/%sBA\nDM for details! #RealEstate", addr, price, beds, baths),
		YouTube:   fmt.Sprintf("%s | Home Tour | $%s | %s BD / %s BA\n\nTake a virtual tour of this incredible property...", addr, price, beds, baths),
	}
}
