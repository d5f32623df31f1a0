package interfaces

//go:generate moq -out ../mock/usecase.go -pkg mock . UseCase

import (
	"context"

	"github.com/m-mizutani/devpost/pkg/domain/model"
)

type UseCase interface {
	GeneratePosts(ctx context.Context, input *model.GeneratePostsInput) (*model.RunResult, error)
}
