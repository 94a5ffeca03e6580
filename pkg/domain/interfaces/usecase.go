package interfaces

//go:generate moq -out ../mock/usecase.go -pkg mock . UseCase

import (
	"context"
	"time"

	"github.com/m-mizutani/octopages/pkg/domain/model"
)

type UseCase interface {
	AssembleSite(ctx context.Context, input *model.AssembleSiteInput) (*model.SiteModel, error)
	PruneCache(ctx context.Context, olderThan time.Duration) (int, error)
}
