package usecase

import (
	"context"
	"net/http"

	repo "github.com/justishika/DevSecOps-SweetSpot/internal/repository"
)

type StatsUsecase struct {
	orderRepo   repo.OrderRepository
	productRepo repo.ProductRepository
	reviewRepo  repo.ReviewRepository
}

// DI
func NewStatsUsecase(orderRepo repo.OrderRepository, productRepo repo.ProductRepository, reviewRepo repo.ReviewRepository) *StatsUsecase {
	return &StatsUsecase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
	}
}

type VendorStatsOutput struct {
	TotalSales     int64   `json:"total_sales"`
	OrderCount     int64   `json:"order_count"`
	ActiveProducts int64   `json:"active_products"`
	AverageRating  float64 `json:"average_rating"`
}

// ベンダーのダッシュボード集計。売上はキャンセル含む全注文が対象。
func (u *StatsUsecase) VendorStats(ctx context.Context, vendorID int64) (VendorStatsOutput, error) {
	if vendorID <= 0 {
		return VendorStatsOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	total, count, err := u.orderRepo.SalesByVendor(ctx, vendorID)
	if err != nil {
		return VendorStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	active, err := u.productRepo.CountActiveByVendor(ctx, vendorID)
	if err != nil {
		return VendorStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	avg, err := u.reviewRepo.AverageRatingByVendor(ctx, vendorID)
	if err != nil {
		return VendorStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return VendorStatsOutput{
		TotalSales:     total,
		OrderCount:     count,
		ActiveProducts: active,
		AverageRating:  avg,
	}, nil
}
