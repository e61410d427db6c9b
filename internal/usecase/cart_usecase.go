package usecase

import (
	"context"
	"net/http"

	"github.com/justishika/DevSecOps-SweetSpot/internal/domain/model"
	repo "github.com/justishika/DevSecOps-SweetSpot/internal/repository"
)

type CartUsecase struct {
	tx           repo.TransactionManager
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

// DI
func NewCartUsecase(tx repo.TransactionManager, cartItemRepo repo.CartItemRepository, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{
		tx:           tx,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

// カート1行分のレスポンス。商品は現在の状態で埋める。
type CartItemOutput struct {
	ID              int64          `json:"id"`
	Product         *model.Product `json:"product"`
	Quantity        int64          `json:"quantity"`
	SpecialRequests string         `json:"special_requests,omitempty"`
}

type AddToCartInput struct {
	ProductID       int64  `json:"product_id"`
	Quantity        int64  `json:"quantity"`
	SpecialRequests string `json:"special_requests"`
}

func (u *CartUsecase) GetCart(ctx context.Context, customerID int64) ([]CartItemOutput, error) {
	if customerID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.cartItemRepo.ListByCustomerID(ctx, customerID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, items)
}

// 既に同じ商品がある場合は数量を加算する（行は増やさない）。
func (u *CartUsecase) AddToCart(ctx context.Context, customerID int64, in AddToCartInput) ([]CartItemOutput, error) {
	if customerID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if in.Quantity < 1 {
		return nil, NewHTTPError(http.StatusBadRequest, "quantity must be >= 1")
	}

	// 加算とその在庫チェックは同一Tx。超過時はrollbackで行ごと戻す。
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, in.ProductID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !p.IsActive {
			return NewHTTPError(http.StatusBadRequest, "product not available")
		}

		item, err := r.CartItems().UpsertByCustomerAndProduct(ctx, customerID, in.ProductID, in.Quantity, in.SpecialRequests)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if item.Quantity > p.Stock {
			return NewHTTPError(http.StatusBadRequest, "stock exceeded")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	items, err := u.cartItemRepo.ListByCustomerID(ctx, customerID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildCartResponse(ctx, items)
}

// 他人のカート行は存在ごと隠す（404）
func (u *CartUsecase) UpdateCartItem(ctx context.Context, customerID int64, itemID int64, quantity int64) ([]CartItemOutput, error) {
	if customerID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if itemID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid item id")
	}
	if quantity < 1 {
		return nil, NewHTTPError(http.StatusBadRequest, "quantity must be >= 1")
	}

	owned, err := u.cartItemRepo.IsOwnedByCustomer(ctx, itemID, customerID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return nil, NewHTTPError(http.StatusNotFound, "not found")
	}

	item, err := u.cartItemRepo.FindByID(ctx, itemID)
	if err == repo.ErrNotFound {
		return nil, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p, err := u.productRepo.FindByID(ctx, item.ProductID)
	if err == repo.ErrNotFound {
		return nil, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if quantity > p.Stock {
		return nil, NewHTTPError(http.StatusBadRequest, "stock exceeded")
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, itemID, quantity); err != nil {
		if err == repo.ErrNotFound {
			return nil, NewHTTPError(http.StatusNotFound, "not found")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := u.cartItemRepo.ListByCustomerID(ctx, customerID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildCartResponse(ctx, items)
}

func (u *CartUsecase) DeleteCartItem(ctx context.Context, customerID int64, itemID int64) ([]CartItemOutput, error) {
	if customerID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if itemID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid item id")
	}

	owned, err := u.cartItemRepo.IsOwnedByCustomer(ctx, itemID, customerID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return nil, NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.cartItemRepo.DeleteByID(ctx, itemID); err != nil {
		if err == repo.ErrNotFound {
			return nil, NewHTTPError(http.StatusNotFound, "not found")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := u.cartItemRepo.ListByCustomerID(ctx, customerID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildCartResponse(ctx, items)
}

func (u *CartUsecase) ClearCart(ctx context.Context, customerID int64) error {
	if customerID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := u.cartItemRepo.DeleteByCustomerID(ctx, customerID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CartUsecase) buildCartResponse(ctx context.Context, items []model.CartItem) ([]CartItemOutput, error) {
	out := make([]CartItemOutput, 0, len(items))
	if len(items) == 0 {
		return out, nil
	}

	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := u.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	byID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, it := range items {
		p, ok := byID[it.ProductID]
		if !ok {
			// 商品削除のカスケード漏れ。見せない。
			continue
		}
		pc := p
		out = append(out, CartItemOutput{
			ID:              it.ID,
			Product:         &pc,
			Quantity:        it.Quantity,
			SpecialRequests: it.SpecialRequests,
		})
	}
	return out, nil
}
