package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateToolResultShortTextUnchanged(t *testing.T) {
	text := `{"sql_results":{"status":"success"}}`

	assert.Equal(t, text, truncateToolResult(text, 4000))
}

func TestTruncateToolResultBoundsLargeText(t *testing.T) {
	text := strings.Repeat("brushless motor upgrade kit ", 5000)

	out := truncateToolResult(text, 100)

	assert.Less(t, len(out), len(text))
	assert.True(t, strings.HasSuffix(out, truncationMarker))
}

func TestTruncateToolResultDisabled(t *testing.T) {
	text := strings.Repeat("x", 100000)

	assert.Equal(t, text, truncateToolResult(text, 0))
}
