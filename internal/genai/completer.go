// Package genai holds the adapters for the two external model capabilities:
// guardrailed chat completion and emotion-from-text estimation. Everything
// here is replaceable by a test double; the orchestrator only sees the
// interfaces.
package genai

// #region imports
import "context"

// #endregion

// #region message
// Message is one chat turn in a completion request.
type Message struct {
	Role    string // "system" | "user" | "assistant"
	Content string
}

// #endregion message

// #region completer
// ChatCompleter is the generative completion capability. Callers bound the
// call with a context deadline; on error they fall back to rendering
// retrieved content directly.
type ChatCompleter interface {
	Complete(ctx context.Context, messages []Message, maxTokens int, temperature float32) (string, error)
}

// #endregion completer
