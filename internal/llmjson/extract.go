// Package llmjson extracts structured JSON from LLM completion text. The
// completion service is treated as an untrusted text source: the model is
// asked for pure JSON but may wrap it in prose or code fences, so extraction
// scans for the first well-formed value and fails closed on anything
// ambiguous.
package llmjson

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/pulseboard/pulseboard/internal/domain"
)

// ExtractArray returns the first well-formed JSON array found in text.
func ExtractArray(text string) (gjson.Result, error) {
	return extract(text, '[', ']')
}

// ExtractObject returns the first well-formed JSON object found in text.
func ExtractObject(text string) (gjson.Result, error) {
	return extract(text, '{', '}')
}

func extract(text string, open, close byte) (gjson.Result, error) {
	offset := 0
	for {
		idx := strings.IndexByte(text[offset:], open)
		if idx < 0 {
			return gjson.Result{}, domain.ErrUnparseableCompletion
		}
		start := offset + idx
		if candidate, ok := balanced(text[start:], open, close); ok && gjson.Valid(candidate) {
			return gjson.Parse(candidate), nil
		}
		offset = start + 1
	}
}

// balanced returns the shortest prefix of s that closes the opening bracket
// at s[0], tracking string literals and escapes so brackets inside strings
// don't count.
func balanced(s string, open, close byte) (string, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return "", false
}
