package ai

import "context"

// Noop satisfies both ports without doing any work. Summaries come back
// empty and translations echo the input, so callers degrade gracefully when
// no model endpoint is configured.
type Noop struct{}

var (
	_ Summarizer = Noop{}
	_ Translator = Noop{}
)

func (Noop) Summarize(ctx context.Context, text string) (string, error) {
	return "", nil
}

func (Noop) Translate(ctx context.Context, text, targetLang string) (string, error) {
	return text, nil
}
