package repository

import (
	"context"
	"errors"

	"github.com/justishika/DevSecOps-SweetSpot/internal/domain/model"
	repo "github.com/justishika/DevSecOps-SweetSpot/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

// 顧客またはベンダーでスコープした一覧
func (r *OrderGormRepository) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{})

	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}
	if f.VendorID != nil {
		q = q.Where("vendor_id = ?", *f.VendorID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var items []model.Order
	if err := q.Order("id desc").Find(&items).Error; err != nil {
		return []model.Order{}, err
	}

	return items, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (model.Order, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return model.Order{}, err
	}
	return order, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) DeleteByCustomerID(ctx context.Context, customerID int64) error {
	return r.db.WithContext(ctx).Where("customer_id = ?", customerID).Delete(&model.Order{}).Error
}

func (r *OrderGormRepository) DeleteByVendorID(ctx context.Context, vendorID int64) error {
	return r.db.WithContext(ctx).Where("vendor_id = ?", vendorID).Delete(&model.Order{}).Error
}

// 合計売上と注文数（単純なSUM/COUNT）
func (r *OrderGormRepository) SalesByVendor(ctx context.Context, vendorID int64) (int64, int64, error) {
	type row struct {
		Total int64
		Count int64
	}
	var out row

	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("COALESCE(SUM(total), 0) AS total, COUNT(*) AS count").
		Where("vendor_id = ?", vendorID).
		Scan(&out).Error
	if err != nil {
		return 0, 0, err
	}

	return out.Total, out.Count, nil
}
