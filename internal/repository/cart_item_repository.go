package repository

import (
	"context"

	"github.com/justishika/DevSecOps-SweetSpot/internal/domain/model"
)

type CartItemRepository interface {
	ListByCustomerID(ctx context.Context, customerID int64) ([]model.CartItem, error)
	FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error)
	// 同一商品は数量加算。notesは空でなければ上書き。
	UpsertByCustomerAndProduct(ctx context.Context, customerID int64, productID int64, addQty int64, specialRequests string) (model.CartItem, error)
	UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error
	DeleteByID(ctx context.Context, cartItemID int64) error
	DeleteByCustomerID(ctx context.Context, customerID int64) error
	DeleteByProductID(ctx context.Context, productID int64) error
	IsOwnedByCustomer(ctx context.Context, cartItemID int64, customerID int64) (bool, error)
}
