package generate

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrNoJSONObject means the model answered without any {...} span.
	ErrNoJSONObject = errors.New("no JSON object in model output")
	// ErrInvalidJSON means a {...} span was found but does not parse.
	ErrInvalidJSON = errors.New("invalid JSON object in model output")
)

// jsonSpan is greedy: it runs from the first '{' to the last '}'.
var jsonSpan = regexp.MustCompile(`(?s)\{.*\}`)

// ExtractJSONObject is a best-effort parse of free-form model output. It
// takes the span from the first '{' to the last '}' and decodes it as a JSON
// object. Markdown fences or prose around the object are tolerated; two
// separate objects in one answer are not.
func ExtractJSONObject(text string) (map[string]any, error) {
	span := jsonSpan.FindString(text)
	if span == "" {
		return nil, ErrNoJSONObject
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(span), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return out, nil
}
