package listing

import (
	"regexp"
	"strings"
)

var rePunct = regexp.MustCompile(`[^A-Za-z0-9\s]`)

// suffixes maps street suffixes to their USPS abbreviations.
var suffixes = []struct{ long, short string }{
	{" STREET", " ST"},
	{" ROAD", " RD"},
	{" AVENUE", " AVE"},
	{" BOULEVARD", " BLVD"},
	{" DRIVE", " DR"},
	{" LANE", " LN"},
	{" COURT", " CT"},
	{" CIRCLE", " CIR"},
	{" TERRACE", " TER"},
	{" PLACE", " PL"},
	{" PARKWAY", " PKWY"},
	{" HIGHWAY", " HWY"},
}

// NormalizeAddress upper-cases, strips punctuation and unit designators and
// abbreviates street suffixes so spelling variants of one address compare equal.
func NormalizeAddress(line string) string {
	n := strings.TrimSpace(strings.ToUpper(line))
	n = stripUnit(n)
	n = rePunct.ReplaceAllString(n, " ")
	n = collapseSpaces(n)
	n = abbreviateSuffix(n)
	return n
}

// Key is a stable identifier for log correlation. Listings without an address
// share the empty key.
func (l Listing) Key() string {
	v, ok := l.lookup(FieldAddress)
	if !ok {
		return ""
	}
	return strings.ToLower(NormalizeAddress(render(v)))
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func stripUnit(s string) string {
	up := " " + s + " "
	for _, t := range []string{" APT ", " UNIT ", " STE ", " SUITE ", " #"} {
		if i := strings.Index(up, t); i >= 0 {
			return strings.TrimSpace(up[:i])
		}
	}
	return strings.TrimSpace(s)
}

// abbreviateSuffix only rewrites whole words: "STREETSVILLE" stays intact.
func abbreviateSuffix(s string) string {
	out := " " + s + " "
	for _, sfx := range suffixes {
		out = strings.ReplaceAll(out, sfx.long+" ", sfx.short+" ")
	}
	return strings.TrimSpace(out)
}
