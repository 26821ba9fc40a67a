// Package ai defines the text summarization and translation ports, with an
// Ollama-backed implementation for local models and a no-op fallback used
// when no model endpoint is configured.
package ai

import "context"

// Summarizer condenses a piece of text into a short summary.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Translator translates text into the target language code, e.g. "ko".
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}
