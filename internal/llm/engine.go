package llm

import (
	"context"
	"fmt"
	"time"

	"lexibridge-backend/internal/shared/telemetry"
)

const mockPreviewLength = 500

// Engine produces analysis text for a document, degrading gracefully: a
// missing provider yields a deterministic mock response and a provider
// failure yields failure text, so the analysis pipeline always completes.
type Engine struct {
	client  Client
	timeout time.Duration
}

// NewEngine constructs an Engine. A nil client means no provider is
// configured and every call returns a mock response.
func NewEngine(client Client, timeout time.Duration) *Engine {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Engine{client: client, timeout: timeout}
}

// Available reports whether a real provider is configured.
func (e *Engine) Available() bool {
	return e.client != nil
}

// Analyze returns a summary of documentText, or an answer when question is
// non-empty. It never fails: provider errors come back as failure text.
func (e *Engine) Analyze(ctx context.Context, documentText, question string) string {
	if e.client == nil {
		telemetry.Warn("llm.mock", map[string]any{"reason": "provider not configured"})
		return mockResponse(documentText, question)
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	answer, err := e.client.Complete(callCtx, SystemPrompt, BuildPrompt(documentText, question))
	if err != nil {
		telemetry.Error("llm.call failed", map[string]any{"error": err.Error()})
		return fmt.Sprintf("AI analysis failed: %v. Please try again later.", err)
	}
	return answer
}

func mockResponse(documentText, question string) string {
	if question != "" {
		preview := truncateRunes(documentText, mockPreviewLength)
		return fmt.Sprintf("Mock AI Response to: %s\n\n"+
			"This is a mock response since the AI service is not configured. "+
			"Please set up Groq API key in .env file.\n\n"+
			"Document preview: %s...", question, preview)
	}
	return `# Document Analysis (Mock)

## Summary
This is a mock analysis since the AI service is not configured.

## Key Points
1. Mock point one
2. Mock point two
3. Mock point three

## Recommendations
Set up Groq API key in .env file for real AI analysis.

**Disclaimer:** This is mock data for testing purposes only.`
}
