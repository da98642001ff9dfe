// Package llmjson recovers and validates JSON documents from generated text.
package llmjson

import "strings"

const fence = "```"

// Strategy rewrites generated text one step closer to a bare JSON document.
// A strategy that does not apply returns its input unchanged.
type Strategy func(text string) string

// DefaultChain is the ordered repair chain applied before decoding.
var DefaultChain = []Strategy{TrimSpace, StripFence, ExtractObject}

// Repair runs text through every strategy of chain in order.
func Repair(text string, chain []Strategy) string {
	for _, strategy := range chain {
		text = strategy(text)
	}
	return text
}

// TrimSpace drops surrounding whitespace.
func TrimSpace(text string) string {
	return strings.TrimSpace(text)
}

// StripFence returns the first fenced segment when text opens with a markdown fence
// that is closed later on. A leading "json" info string is removed.
func StripFence(text string) string {
	if !strings.HasPrefix(text, fence) {
		return text
	}
	parts := strings.Split(text, fence)
	if len(parts) < 3 {
		return text
	}
	inner := parts[1]
	if strings.HasPrefix(inner, "json") {
		inner = strings.TrimSpace(inner[len("json"):])
	}
	return inner
}

// ExtractObject narrows text to the span between the first '{' and the last '}'
// unless it already starts with an object.
func ExtractObject(text string) string {
	if strings.HasPrefix(text, "{") {
		return text
	}
	start := strings.Index(text, "{")
	if start < 0 {
		return text
	}
	end := strings.LastIndex(text, "}")
	if end < start {
		return text
	}
	return text[start : end+1]
}
