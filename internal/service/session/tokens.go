package session

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const truncationMarker = "\n... [result truncated]"

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

func getEncoding() *tiktoken.Tiktoken {
	encodingOnce.Do(func() {
		// Best effort: the encoding may be unavailable offline, in which
		// case truncation falls back to a character estimate.
		encoding, _ = tiktoken.GetEncoding("cl100k_base")
	})
	return encoding
}

// truncateToolResult bounds a tool result so a single large envelope cannot
// crowd the history out of the model context.
func truncateToolResult(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return text
	}

	if enc := getEncoding(); enc != nil {
		tokens := enc.Encode(text, nil, nil)
		if len(tokens) <= maxTokens {
			return text
		}
		return enc.Decode(tokens[:maxTokens]) + truncationMarker
	}

	// Rough 4 chars/token estimate.
	limit := maxTokens * 4
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + truncationMarker
}
