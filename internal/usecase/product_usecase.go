package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/justishika/DevSecOps-SweetSpot/internal/domain/model"
	repo "github.com/justishika/DevSecOps-SweetSpot/internal/repository"

	"github.com/sirupsen/logrus"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ProductUsecase struct {
	tx          repo.TransactionManager
	productRepo repo.ProductRepository
}

// DI
func NewProductUsecase(tx repo.TransactionManager, productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{
		tx:          tx,
		productRepo: productRepo,
	}
}

// GET /api/products の入力DTO
type ListProductsInput struct {
	CategoryID *int64
	Search     string
	Dietary    []string
	Tags       []string
	Sort       string
}

// GET /api/vendor/products の入力DTO
type VendorListProductsInput struct {
	Search       string
	CategoryID   *int64
	Status       string
	Availability string
	Sort         string
}

func (u *ProductUsecase) ListPublicProducts(ctx context.Context, in ListProductsInput) ([]model.Product, error) {
	if len(in.Search) > 100 {
		return nil, NewHTTPError(http.StatusBadRequest, "search too long")
	}
	switch in.Sort {
	case "", "newest", "oldest", "price-asc", "price-desc":
	default:
		return nil, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	items, err := u.productRepo.ListPublic(ctx, repo.ProductListQuery{
		CategoryID: in.CategoryID,
		Search:     strings.TrimSpace(in.Search),
		Dietary:    in.Dietary,
		Tags:       in.Tags,
		Sort:       in.Sort,
	})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return items, nil
}

// 公開中の商品だけ見せる（非公開は404扱い）
func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !p.IsActive {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return p, nil
}

// ベンダー自身の商品一覧はis_activeに関わらず返す。
func (u *ProductUsecase) VendorListProducts(ctx context.Context, vendorID int64, in VendorListProductsInput) ([]model.Product, error) {
	if vendorID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	switch in.Status {
	case "", "all", "active", "inactive":
	default:
		return nil, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	switch in.Availability {
	case "", "all", "in", "out":
	default:
		return nil, NewHTTPError(http.StatusBadRequest, "invalid availability")
	}

	items, err := u.productRepo.ListByVendor(ctx, repo.VendorProductQuery{
		VendorID:     vendorID,
		Search:       strings.TrimSpace(in.Search),
		CategoryID:   in.CategoryID,
		Status:       in.Status,
		Availability: in.Availability,
		Sort:         in.Sort,
	})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return items, nil
}

type VendorProductInput struct {
	Name            string
	Description     string
	Price           int64
	Stock           int64
	ImageURL        string
	Dietary         []string
	Tags            []string
	PrepTimeMinutes int64
	CategoryID      *int64
	IsActive        bool
}

func (u *ProductUsecase) VendorCreateProduct(ctx context.Context, vendorID int64, in VendorProductInput) (model.Product, error) {
	if vendorID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.Stock < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		Name:            strings.TrimSpace(in.Name),
		Description:     in.Description,
		Price:           in.Price,
		Stock:           in.Stock,
		ImageURL:        in.ImageURL,
		Dietary:         in.Dietary,
		Tags:            in.Tags,
		PrepTimeMinutes: in.PrepTimeMinutes,
		CategoryID:      in.CategoryID,
		VendorID:        vendorID,
		IsActive:        in.IsActive,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 所有者だけ更新できる（他人の商品は403）
func (u *ProductUsecase) VendorUpdateProduct(ctx context.Context, vendorID int64, productID int64, in VendorProductInput) (model.Product, error) {
	if vendorID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.Stock < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if p.VendorID != vendorID {
		return model.Product{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Price = in.Price
	p.Stock = in.Stock
	p.ImageURL = in.ImageURL
	p.Dietary = in.Dietary
	p.Tags = in.Tags
	p.PrepTimeMinutes = in.PrepTimeMinutes
	p.CategoryID = in.CategoryID
	p.IsActive = in.IsActive

	if err := u.productRepo.Update(ctx, p); err != nil {
		if err == repo.ErrNotFound {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 削除は商品と一緒にカート明細・お気に入りもカスケードで消す。
// 過去の注文はスナップショットを持つので触らない。
func (u *ProductUsecase) VendorDeleteProduct(ctx context.Context, vendorID int64, productID int64) error {
	if vendorID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, productID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if p.VendorID != vendorID {
			return NewHTTPError(http.StatusForbidden, "forbidden")
		}

		if err := r.CartItems().DeleteByProductID(ctx, productID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Favorites().DeleteByProductID(ctx, productID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Products().Delete(ctx, productID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		logrus.WithFields(logrus.Fields{
			"product_id": productID,
			"vendor_id":  vendorID,
		}).Info("product deleted with cart/favorite cascade")

		return nil
	})

	return err
}
