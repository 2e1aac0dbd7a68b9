package share

import (
	"strings"

	"github.com/atotto/clipboard"
)

// clipboardWriteAll is swapped out in tests.
var clipboardWriteAll = clipboard.WriteAll

// CopyResult reports whether text reached the clipboard. When it did not,
// Fallback holds a block the user can copy by hand.
type CopyResult struct {
	Copied   bool   `json:"copied"`
	Fallback string `json:"fallback,omitempty"`
	Error    string `json:"error,omitempty"`
}

// CopyOrFallback writes text to the system clipboard. A missing or failing
// clipboard is not an error.
func CopyOrFallback(text string) CopyResult {
	if err := clipboardWriteAll(text); err != nil {
		return CopyResult{Fallback: fallbackBlock(text), Error: err.Error()}
	}
	return CopyResult{Copied: true}
}

func fallbackBlock(text string) string {
	rule := strings.Repeat("-", 40)
	return "Copy the link below:\n" + rule + "\n" + text + "\n" + rule + "\n"
}
