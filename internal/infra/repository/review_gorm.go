package repository

import (
	"context"

	"github.com/justishika/DevSecOps-SweetSpot/internal/domain/model"

	"gorm.io/gorm"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) ListByProductID(ctx context.Context, productID int64) ([]model.Review, error) {
	var reviews []model.Review

	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id desc").
		Find(&reviews).Error; err != nil {
		return []model.Review{}, err
	}

	return reviews, nil
}

func (r *ReviewGormRepository) Create(ctx context.Context, review model.Review) (model.Review, error) {
	if err := r.db.WithContext(ctx).Create(&review).Error; err != nil {
		return model.Review{}, err
	}
	return review, nil
}

func (r *ReviewGormRepository) DeleteByCustomerID(ctx context.Context, customerID int64) error {
	return r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Delete(&model.Review{}).Error
}

// ベンダーの全商品に対する平均評価。レビューが無ければ0。
func (r *ReviewGormRepository) AverageRatingByVendor(ctx context.Context, vendorID int64) (float64, error) {
	var avg float64

	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("COALESCE(AVG(reviews.rating), 0)").
		Joins("JOIN products ON products.id = reviews.product_id").
		Where("products.vendor_id = ?", vendorID).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}

	return avg, nil
}
