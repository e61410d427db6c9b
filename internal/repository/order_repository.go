package repository

import (
	"context"

	"github.com/justishika/DevSecOps-SweetSpot/internal/domain/model"
)

type OrderListFilter struct {
	//どちらか一方を指定する
	CustomerID *int64
	VendorID   *int64
	Status     string
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	List(ctx context.Context, f OrderListFilter) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	DeleteByCustomerID(ctx context.Context, customerID int64) error
	DeleteByVendorID(ctx context.Context, vendorID int64) error

	//ベンダー分析用の集計（合計売上と注文数）
	SalesByVendor(ctx context.Context, vendorID int64) (total int64, count int64, err error)
}
