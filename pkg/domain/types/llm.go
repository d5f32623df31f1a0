package types

import "log/slog"

type (
	LLMProvider string
	LLMModel    string
	LLMAPIKey   string
)

const (
	LLMProviderAnthropic LLMProvider = "anthropic"
	LLMProviderOpenAI    LLMProvider = "openai"
	LLMProviderOllama    LLMProvider = "ollama"
)

// DefaultModel returns the model used when no model is configured for the provider
func (x LLMProvider) DefaultModel() LLMModel {
	switch x {
	case LLMProviderAnthropic:
		return "claude-3-5-sonnet-20241022"
	case LLMProviderOpenAI:
		return "gpt-4o-mini"
	case LLMProviderOllama:
		return "llama3"
	default:
		return ""
	}
}

func (x LLMAPIKey) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x LLMAPIKey) String() string {
	return "***********"
}
