// Package listing models the caller-supplied property attributes. A Listing is
// a loose JSON object: no field is required and every accessor takes a default.
package listing

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Field keys accepted from callers.
const (
	FieldAddress      = "address"
	FieldPrice        = "price"
	FieldBedrooms     = "bedrooms"
	FieldBathrooms    = "bathrooms"
	FieldSqft         = "sqft"
	FieldPropertyType = "property_type"
	FieldStyle        = "style"
)

// Defaults used when a field is absent.
const (
	DefaultAddress      = "123 Main Street"
	DefaultPromptAddr   = "Beautiful Home"
	DefaultPrice        = 500000.0
	DefaultBedrooms     = "4"
	DefaultBathrooms    = "3"
	DefaultSqft         = "Not specified"
	DefaultPropertyType = "Single Family Home"
	DefaultStyle        = "cinematic"
)

// Listing wraps the decoded request body.
type Listing struct {
	fields map[string]any
}

// Decode reads a JSON object from r. Anything that is not a JSON object
// (empty body, invalid JSON, arrays, scalars) yields an empty listing and the
// decode error, which callers are free to ignore.
func Decode(r io.Reader) (Listing, error) {
	if r == nil {
		return Listing{}, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Listing{}, fmt.Errorf("read listing: %w", err)
	}
	return Parse(data)
}

// Parse is Decode for an in-memory body.
func Parse(data []byte) (Listing, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Listing{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return Listing{}, fmt.Errorf("decode listing: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Listing{}, errors.New("decode listing: trailing data after object")
	}
	return Listing{fields: fields}, nil
}

func (l Listing) lookup(key string) (any, bool) {
	v, ok := l.fields[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Text renders the field the way it was supplied: strings verbatim, numbers in
// their original JSON form.
func (l Listing) Text(key, def string) string {
	v, ok := l.lookup(key)
	if !ok {
		return def
	}
	return render(v)
}

// Number reads a numeric field. Numeric strings are accepted; anything else
// yields def.
func (l Listing) Number(key string, def float64) float64 {
	v, ok := l.lookup(key)
	if !ok {
		return def
	}
	if f, ok := toFloat(v); ok && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return def
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(n, ",", "")), 64)
		return f, err == nil
	}
	return 0, false
}

func (l Listing) Address(def string) string { return l.Text(FieldAddress, def) }
func (l Listing) Price() float64            { return l.Number(FieldPrice, DefaultPrice) }
func (l Listing) Bedrooms() string          { return l.Text(FieldBedrooms, DefaultBedrooms) }
func (l Listing) Bathrooms() string         { return l.Text(FieldBathrooms, DefaultBathrooms) }
func (l Listing) Sqft() string              { return l.Text(FieldSqft, DefaultSqft) }
func (l Listing) PropertyType() string      { return l.Text(FieldPropertyType, DefaultPropertyType) }
func (l Listing) Style() string             { return l.Text(FieldStyle, DefaultStyle) }

// FormattedPrice is Price rendered as whole dollars with thousands separators.
func (l Listing) FormattedPrice() string { return FormatDollars(l.Price()) }

func render(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "True"
		}
		return "False"
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// FormatDollars rounds to whole units and groups digits by thousands:
// 1234567.5 -> "1,234,568".
func FormatDollars(v float64) string {
	s := strconv.FormatFloat(v, 'f', 0, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		if s == "0" {
			sign = ""
		}
		return sign + s
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/3 + 1)
	b.WriteString(sign)
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > len(sign) {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
