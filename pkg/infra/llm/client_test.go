package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/devpost/pkg/domain/types"
	"github.com/m-mizutani/devpost/pkg/infra/llm"
	"github.com/m-mizutani/devpost/pkg/utils/testutil"
	"github.com/m-mizutani/gt"
	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	messages []llms.MessageContent
	opts     llms.CallOptions
	resp     *llms.ContentResponse
	err      error
}

func (x *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	x.messages = messages
	for _, opt := range options {
		opt(&x.opts)
	}
	return x.resp, x.err
}

func (x *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, x, prompt, options...)
}

func TestGenerate(t *testing.T) {
	t.Run("instruction is system message and context is user message", func(t *testing.T) {
		model := &fakeModel{resp: &llms.ContentResponse{
			Choices: []*llms.ContentChoice{{Content: "  Just shipped streaming mode!  "}},
		}}
		client := llm.NewWithModel(model, "fake")

		out := gt.R1(client.Generate(context.Background(), "write a post", "PR Title: x", 200)).NoError(t)
		gt.V(t, out).Equal("Just shipped streaming mode!")

		gt.A(t, model.messages).Length(2)
		gt.V(t, model.messages[0].Role).Equal(llms.ChatMessageTypeSystem)
		gt.V(t, model.messages[0].Parts[0]).Equal(llms.ContentPart(llms.TextContent{Text: "write a post"}))
		gt.V(t, model.messages[1].Role).Equal(llms.ChatMessageTypeHuman)
		gt.V(t, model.opts.MaxTokens).Equal(200)
	})

	t.Run("empty choices is an error", func(t *testing.T) {
		client := llm.NewWithModel(&fakeModel{resp: &llms.ContentResponse{}}, "fake")
		_, err := client.Generate(context.Background(), "i", "c", 10)
		gt.Error(t, err)
	})

	t.Run("model error is wrapped", func(t *testing.T) {
		cause := errors.New("overloaded")
		client := llm.NewWithModel(&fakeModel{err: cause}, "fake")
		_, err := client.Generate(context.Background(), "i", "c", 10)
		gt.True(t, errors.Is(err, cause))
	})
}

func TestNew(t *testing.T) {
	t.Run("unsupported provider", func(t *testing.T) {
		_, err := llm.New(llm.Config{Provider: "unknown"})
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("anthropic requires API key", func(t *testing.T) {
		_, err := llm.New(llm.Config{Provider: types.LLMProviderAnthropic})
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("ollama works without API key", func(t *testing.T) {
		gt.R1(llm.New(llm.Config{Provider: types.LLMProviderOllama})).NoError(t)
	})
}

func TestOpenAICompatibleServer(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Merged a PR today"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`))
	}))
	defer srv.Close()

	client := gt.R1(llm.New(llm.Config{
		Provider: types.LLMProviderOpenAI,
		APIKey:   "sk-test",
		BaseURL:  srv.URL,
	})).NoError(t)

	out := gt.R1(client.Generate(context.Background(), "write", "context", 100)).NoError(t)
	gt.V(t, out).Equal("Merged a PR today")
	gt.V(t, received["model"]).Equal(any("gpt-4o-mini"))
}

func TestAnthropicIntegration(t *testing.T) {
	apiKey := testutil.GetEnvOrSkip(t, "TEST_ANTHROPIC_API_KEY")

	client := gt.R1(llm.New(llm.Config{
		Provider: types.LLMProviderAnthropic,
		APIKey:   types.LLMAPIKey(apiKey),
	})).NoError(t)

	out := gt.R1(client.Generate(context.Background(), "Reply with a single word.", "Say hello", 20)).NoError(t)
	gt.V(t, out).NotEqual("")
}
