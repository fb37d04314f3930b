package llm

import "context"

// Client abstracts chat-completion providers for document analysis.
type Client interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
