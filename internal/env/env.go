// Package env reads and parses process environment values for the config loader.
package env

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Get returns the value of k, or def when k is unset or empty.
func Get(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

// ParseDuration accepts Go duration syntax ("30s", "1m30s") or a bare number
// of seconds. Unparseable input yields def.
func ParseDuration(v string, def time.Duration) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}

var boolWords = map[string]bool{
	"1": true, "true": true, "yes": true, "y": true, "on": true,
	"0": false, "false": false, "no": false, "n": false, "off": false,
}

// ParseBool understands the usual yes/no spellings; anything else yields def.
func ParseBool(v string, def bool) bool {
	if b, ok := boolWords[strings.ToLower(strings.TrimSpace(v))]; ok {
		return b
	}
	return def
}

// SplitList splits on commas, semicolons and whitespace separators other than
// spaces, dropping empty items.
func SplitList(v string) []string {
	var out []string
	for _, item := range strings.FieldsFunc(v, isListSep) {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func isListSep(r rune) bool {
	return r == ',' || r == ';' || r == '\n' || r == '\r' || r == '\t'
}
