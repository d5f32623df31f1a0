package llm

import (
	"context"
	"log/slog"
	"strings"

	"github.com/m-mizutani/devpost/pkg/domain/interfaces"
	"github.com/m-mizutani/devpost/pkg/domain/types"
	"github.com/m-mizutani/devpost/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

const defaultOllamaURL = "http://localhost:11434"

// Client calls a generative model through langchaingo
type Client struct {
	model       llms.Model
	name        types.LLMModel
	temperature float64
}

var _ interfaces.LLM = (*Client)(nil)

type Option func(*Client)

func WithTemperature(t float64) Option {
	return func(x *Client) {
		x.temperature = t
	}
}

// Config selects the provider. Empty Model falls back to the default model of the provider.
type Config struct {
	Provider types.LLMProvider
	Model    types.LLMModel
	APIKey   types.LLMAPIKey
	BaseURL  string
}

func (x Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("Provider", x.Provider),
		slog.Any("Model", x.Model),
		slog.Int("APIKey.len", len(x.APIKey)),
		slog.String("BaseURL", x.BaseURL),
	)
}

func New(cfg Config, options ...Option) (*Client, error) {
	name := cfg.Model
	if name == "" {
		name = cfg.Provider.DefaultModel()
	}

	var (
		model llms.Model
		err   error
	)

	switch cfg.Provider {
	case types.LLMProviderAnthropic:
		if cfg.APIKey == "" {
			return nil, goerr.Wrap(types.ErrInvalidOption, "API key is required for anthropic")
		}
		opts := []anthropic.Option{
			anthropic.WithToken(string(cfg.APIKey)),
			anthropic.WithModel(string(name)),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
		}
		model, err = anthropic.New(opts...)

	case types.LLMProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, goerr.Wrap(types.ErrInvalidOption, "API key is required for openai")
		}
		opts := []openai.Option{
			openai.WithToken(string(cfg.APIKey)),
			openai.WithModel(string(name)),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		model, err = openai.New(opts...)

	case types.LLMProviderOllama:
		serverURL := cfg.BaseURL
		if serverURL == "" {
			serverURL = defaultOllamaURL
		}
		model, err = ollama.New(
			ollama.WithServerURL(serverURL),
			ollama.WithModel(string(name)),
		)

	default:
		return nil, goerr.Wrap(types.ErrInvalidOption, "unsupported LLM provider", goerr.V("provider", cfg.Provider))
	}

	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM client", goerr.V("provider", cfg.Provider), goerr.V("model", name))
	}

	return NewWithModel(model, name, options...), nil
}

// NewWithModel wraps an existing langchaingo model
func NewWithModel(model llms.Model, name types.LLMModel, options ...Option) *Client {
	client := &Client{
		model:       model,
		name:        name,
		temperature: 0.7,
	}
	for _, opt := range options {
		opt(client)
	}
	return client
}

// Generate sends instruction as the system message and prompt as the user message, and returns the text of the first choice.
func (x *Client) Generate(ctx context.Context, instruction, prompt string, maxTokens int) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, instruction),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	resp, err := x.model.GenerateContent(ctx, messages,
		llms.WithMaxTokens(maxTokens),
		llms.WithTemperature(x.temperature),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate content", goerr.V("model", x.name))
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", goerr.New("no choice in LLM response", goerr.V("model", x.name))
	}

	choice := resp.Choices[0]
	logging.From(ctx).Debug("LLM responded",
		slog.Any("model", x.name),
		slog.String("stop_reason", choice.StopReason),
		slog.Int("length", len(choice.Content)),
	)

	return strings.TrimSpace(choice.Content), nil
}
