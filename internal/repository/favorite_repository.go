package repository

import (
	"context"

	"github.com/justishika/DevSecOps-SweetSpot/internal/domain/model"
)

type FavoriteRepository interface {
	ListByCustomerID(ctx context.Context, customerID int64) ([]model.Favorite, error)
	Find(ctx context.Context, customerID int64, productID int64) (model.Favorite, error)
	Create(ctx context.Context, fav model.Favorite) (model.Favorite, error)
	//無くてもエラーにしない
	Delete(ctx context.Context, customerID int64, productID int64) error
	DeleteByCustomerID(ctx context.Context, customerID int64) error
	DeleteByProductID(ctx context.Context, productID int64) error
	Exists(ctx context.Context, customerID int64, productID int64) (bool, error)
}
