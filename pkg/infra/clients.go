package infra

import (
	"github.com/m-mizutani/devpost/pkg/domain/interfaces"
)

type Clients struct {
	github interfaces.GitHub
	llm    interfaces.LLM
	sink   interfaces.ContentSink
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) GitHub() interfaces.GitHub {
	return x.github
}
func (x *Clients) LLM() interfaces.LLM {
	return x.llm
}

// Sink returns nil if no sink is configured
func (x *Clients) Sink() interfaces.ContentSink {
	return x.sink
}

func WithGitHub(client interfaces.GitHub) Option {
	return func(x *Clients) {
		x.github = client
	}
}

func WithLLM(client interfaces.LLM) Option {
	return func(x *Clients) {
		x.llm = client
	}
}

func WithSink(sink interfaces.ContentSink) Option {
	return func(x *Clients) {
		x.sink = sink
	}
}
