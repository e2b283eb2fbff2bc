// Package summarizer wraps the external text-to-text summarization service.
// The core treats it as untrusted and best-effort: calls are bounded by the
// caller's context and failures never take a request down with them.
package summarizer

import "context"

// Summarizer produces a short summary of the given text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}
