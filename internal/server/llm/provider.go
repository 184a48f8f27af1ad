// Package llm abstracts the chat-completion providers behind a single
// interface. Two SDK-backed implementations exist (Gemini and OpenAI); the
// active one is chosen by configuration at startup.
package llm

import (
	"context"
	"fmt"

	"github.com/degreedialog/advisor/internal/server/config"
)

// advisorPrompt steers the model towards higher-education topics. Sent as the
// system instruction with every request.
const advisorPrompt = `You are an AI College Advisor assistant. Your role is to provide helpful, accurate information
about all aspects of college education. This includes but is not limited to:

- Admissions processes and requirements
- Courses and academic programs
- Scholarships and financial aid
- Campus facilities and student life
- Career opportunities after graduation
- College rankings and comparisons
- Study tips and academic advice
- Extracurricular activities
- Any other higher education related queries

For questions outside this scope, politely inform the user that you specialize in college-related
topics. Be friendly, professional, and provide detailed, accurate information. If you don't know
an answer, say so rather than making up information.`

// fallbackReply is returned when the provider answers with empty content.
const fallbackReply = "I'm not sure how to answer that. Could you provide more details about your college-related question?"

// Provider produces a completion for a single user message.
type Provider interface {
	Complete(ctx context.Context, message string) (string, error)
}

// NewProvider builds the provider selected by cfg.LLMProvider.
func NewProvider(ctx context.Context, cfg *config.Config) (Provider, error) {
	switch cfg.LLMProvider {
	case config.LLMProviderGemini:
		return NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.LLMModel)
	case config.LLMProviderOpenAI:
		return NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.LLMModel), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", cfg.LLMProvider)
	}
}
