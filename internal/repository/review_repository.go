package repository

import (
	"context"

	"github.com/justishika/DevSecOps-SweetSpot/internal/domain/model"
)

type ReviewRepository interface {
	ListByProductID(ctx context.Context, productID int64) ([]model.Review, error)
	Create(ctx context.Context, review model.Review) (model.Review, error)
	DeleteByCustomerID(ctx context.Context, customerID int64) error

	//ベンダーの全商品に対する平均評価。レビューが無ければ0。
	AverageRatingByVendor(ctx context.Context, vendorID int64) (float64, error)
}
