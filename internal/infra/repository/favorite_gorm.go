package repository

import (
	"context"
	"errors"

	"github.com/justishika/DevSecOps-SweetSpot/internal/domain/model"
	repo "github.com/justishika/DevSecOps-SweetSpot/internal/repository"

	"gorm.io/gorm"
)

type FavoriteGormRepository struct {
	db *gorm.DB
}

func NewFavoriteGormRepository(db *gorm.DB) *FavoriteGormRepository {
	return &FavoriteGormRepository{db: db}
}

func (r *FavoriteGormRepository) ListByCustomerID(ctx context.Context, customerID int64) ([]model.Favorite, error) {
	var favs []model.Favorite

	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id desc").
		Find(&favs).Error; err != nil {
		return []model.Favorite{}, err
	}

	return favs, nil
}

func (r *FavoriteGormRepository) Find(ctx context.Context, customerID int64, productID int64) (model.Favorite, error) {
	var fav model.Favorite

	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		First(&fav).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Favorite{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Favorite{}, err
	}
	return fav, nil
}

func (r *FavoriteGormRepository) Create(ctx context.Context, fav model.Favorite) (model.Favorite, error) {
	if err := r.db.WithContext(ctx).Create(&fav).Error; err != nil {
		return model.Favorite{}, err
	}
	return fav, nil
}

// 無くてもエラーにしない（トグルの冪等性）
func (r *FavoriteGormRepository) Delete(ctx context.Context, customerID int64, productID int64) error {
	return r.db.WithContext(ctx).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		Delete(&model.Favorite{}).Error
}

func (r *FavoriteGormRepository) DeleteByCustomerID(ctx context.Context, customerID int64) error {
	return r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Delete(&model.Favorite{}).Error
}

// 商品削除のカスケードで呼ばれる
func (r *FavoriteGormRepository) DeleteByProductID(ctx context.Context, productID int64) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&model.Favorite{}).Error
}

func (r *FavoriteGormRepository) Exists(ctx context.Context, customerID int64, productID int64) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.Favorite{}).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}
