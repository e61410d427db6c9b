package repository

import (
	"context"

	"github.com/justishika/DevSecOps-SweetSpot/internal/domain/model"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, c model.Category) (model.Category, error)
}
