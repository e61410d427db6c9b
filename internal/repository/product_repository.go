package repository

import (
	"context"
	"errors"

	"github.com/justishika/DevSecOps-SweetSpot/internal/domain/model"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// 公開一覧の検索条件
type ProductListQuery struct {
	CategoryID *int64
	Search     string
	Dietary    []string
	Tags       []string
	Sort       string
}

// ベンダー管理画面用の検索条件
type VendorProductQuery struct {
	VendorID     int64
	Search       string
	CategoryID   *int64
	Status       string // all / active / inactive
	Availability string // all / in / out
	Sort         string
}

type ProductRepository interface {
	//公開中（is_active=true）の商品のみ
	ListPublic(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	//自分の商品をis_activeに関わらず返す
	ListByVendor(ctx context.Context, q VendorProductQuery) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error
	DeleteByVendor(ctx context.Context, vendorID int64) error

	//在庫が足りるときだけ減らす
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)

	CountActiveByVendor(ctx context.Context, vendorID int64) (int64, error)
}
