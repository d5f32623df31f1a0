package cli_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/devpost/pkg/cli"
	"github.com/m-mizutani/devpost/pkg/domain/mock"
	"github.com/m-mizutani/devpost/pkg/domain/model"
	"github.com/m-mizutani/devpost/pkg/domain/types"
	"github.com/m-mizutani/devpost/pkg/infra/sink"
	"github.com/m-mizutani/gt"
)

func TestOpenOutput(t *testing.T) {
	t.Run("text to stdout", func(t *testing.T) {
		s, closer, err := cli.OpenOutputForTest("text", "-", false)
		gt.NoError(t, err)
		gt.True(t, closer == nil)
		_, ok := s.(*sink.Terminal)
		gt.True(t, ok)
	})

	t.Run("json to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")
		s, closer, err := cli.OpenOutputForTest("json", path, false)
		gt.NoError(t, err)
		_, ok := s.(*sink.JSON)
		gt.True(t, ok)

		result := &model.RunResult{Status: model.RunStatusNoActivity, User: "alice"}
		gt.NoError(t, s.Publish(context.Background(), result))
		gt.NoError(t, closer.Close())

		raw := gt.R1(os.ReadFile(path)).NoError(t)
		gt.V(t, string(raw)).Equal("{\n  \"status\": \"no_activity\",\n  \"user\": \"alice\"\n}\n")
	})

	t.Run("invalid format", func(t *testing.T) {
		_, _, err := cli.OpenOutputForTest("xml", "-", false)
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})
}

func TestRunGenerate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc := &mock.UseCaseMock{
			GeneratePostsFunc: func(ctx context.Context, input *model.GeneratePostsInput) (*model.RunResult, error) {
				gt.V(t, input.User).Equal("alice")
				return &model.RunResult{Status: model.RunStatusGenerated, User: input.User}, nil
			},
		}
		gt.NoError(t, cli.RunGenerateForTest(context.Background(), uc, "alice"))
		gt.A(t, uc.GeneratePostsCalls()).Length(1)
	})

	t.Run("failure is returned", func(t *testing.T) {
		uc := &mock.UseCaseMock{
			GeneratePostsFunc: func(ctx context.Context, input *model.GeneratePostsInput) (*model.RunResult, error) {
				return nil, types.ErrSourceUnavailable
			},
		}
		err := cli.RunGenerateForTest(context.Background(), uc, "alice")
		gt.True(t, errors.Is(err, types.ErrSourceUnavailable))
	})
}

func TestGenerateCommandInvalidFormat(t *testing.T) {
	err := cli.New().Run([]string{
		"devpost", "generate",
		"--user", "alice",
		"--llm-provider", "ollama",
		"--format", "xml",
	})
	gt.True(t, errors.Is(err, types.ErrInvalidOption))
}
