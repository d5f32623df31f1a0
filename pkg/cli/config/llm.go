package config

import (
	"log/slog"

	"github.com/m-mizutani/devpost/pkg/domain/types"
	"github.com/m-mizutani/devpost/pkg/infra/llm"
	"github.com/urfave/cli/v3"
)

type LLM struct {
	provider    string
	model       string
	apiKey      types.LLMAPIKey `masq:"secret"`
	baseURL     string
	temperature float64
}

func (x *LLM) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "llm-provider",
			Usage:       "Generative model provider [anthropic|openai|ollama]",
			Category:    "LLM",
			Value:       string(types.LLMProviderAnthropic),
			Destination: &x.provider,
			Sources:     cli.EnvVars("DEVPOST_LLM_PROVIDER"),
		},
		&cli.StringFlag{
			Name:        "llm-model",
			Usage:       "Model name (provider default if not set)",
			Category:    "LLM",
			Destination: &x.model,
			Sources:     cli.EnvVars("DEVPOST_LLM_MODEL"),
		},
		&cli.StringFlag{
			Name:        "llm-api-key",
			Usage:       "API key of the provider",
			Category:    "LLM",
			Destination: (*string)(&x.apiKey),
			Sources:     cli.EnvVars("DEVPOST_LLM_API_KEY", "ANTHROPIC_API_KEY"),
		},
		&cli.StringFlag{
			Name:        "llm-base-url",
			Usage:       "API base URL, e.g. an ollama server",
			Category:    "LLM",
			Destination: &x.baseURL,
			Sources:     cli.EnvVars("DEVPOST_LLM_BASE_URL"),
		},
		&cli.FloatFlag{
			Name:        "llm-temperature",
			Usage:       "Sampling temperature",
			Category:    "LLM",
			Value:       0.7,
			Destination: &x.temperature,
			Sources:     cli.EnvVars("DEVPOST_LLM_TEMPERATURE"),
		},
	}
}

func (x *LLM) New() (*llm.Client, error) {
	return llm.New(llm.Config{
		Provider: types.LLMProvider(x.provider),
		Model:    types.LLMModel(x.model),
		APIKey:   x.apiKey,
		BaseURL:  x.baseURL,
	}, llm.WithTemperature(x.temperature))
}

func (x LLM) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("Provider", x.provider),
		slog.String("Model", x.model),
		slog.Int("APIKey.len", len(x.apiKey)),
		slog.String("BaseURL", x.baseURL),
		slog.Float64("Temperature", x.temperature),
	)
}
