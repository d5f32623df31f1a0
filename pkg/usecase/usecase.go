package usecase

import (
	"github.com/m-mizutani/devpost/pkg/domain/interfaces"
	"github.com/m-mizutani/devpost/pkg/domain/model"
	"github.com/m-mizutani/devpost/pkg/infra"
	"github.com/m-mizutani/devpost/pkg/utils/retry"
)

type UseCase struct {
	clients     *infra.Clients
	config      model.PipelineConfig
	retryPolicy retry.Policy
}

var _ interfaces.UseCase = (*UseCase)(nil)

type Option func(*UseCase)

// WithConfig replaces the default pipeline config. It is validated when a run starts.
func WithConfig(cfg model.PipelineConfig) Option {
	return func(x *UseCase) {
		x.config = cfg
	}
}

// WithGenerationRetry sets the retry policy of each content generation call
func WithGenerationRetry(p retry.Policy) Option {
	return func(x *UseCase) {
		x.retryPolicy = p
	}
}

func New(clients *infra.Clients, options ...Option) *UseCase {
	uc := &UseCase{
		clients:     clients,
		config:      model.DefaultPipelineConfig(),
		retryPolicy: retry.GenerationPolicy(),
	}
	for _, opt := range options {
		opt(uc)
	}
	return uc
}
