package usecase

import (
	"context"
	"net/http"

	"github.com/justishika/DevSecOps-SweetSpot/internal/domain/model"
	repo "github.com/justishika/DevSecOps-SweetSpot/internal/repository"
)

type FavoriteUsecase struct {
	favoriteRepo repo.FavoriteRepository
	productRepo  repo.ProductRepository
}

// DI
func NewFavoriteUsecase(favoriteRepo repo.FavoriteRepository, productRepo repo.ProductRepository) *FavoriteUsecase {
	return &FavoriteUsecase{
		favoriteRepo: favoriteRepo,
		productRepo:  productRepo,
	}
}

// お気に入り一覧は商品を現在の状態で埋めて返す
func (u *FavoriteUsecase) ListFavorites(ctx context.Context, customerID int64) ([]model.Product, error) {
	if customerID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	favs, err := u.favoriteRepo.ListByCustomerID(ctx, customerID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]model.Product, 0, len(favs))
	if len(favs) == 0 {
		return out, nil
	}

	ids := make([]int64, 0, len(favs))
	for _, f := range favs {
		ids = append(ids, f.ProductID)
	}
	products, err := u.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	byID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, f := range favs {
		if p, ok := byID[f.ProductID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// 追加は冪等。既に登録済みならcreated=falseで成功を返す。
func (u *FavoriteUsecase) AddFavorite(ctx context.Context, customerID int64, productID int64) (bool, error) {
	if customerID <= 0 {
		return false, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return false, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return false, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return false, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	exists, err := u.favoriteRepo.Exists(ctx, customerID, productID)
	if err != nil {
		return false, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if exists {
		return false, nil
	}

	if _, err := u.favoriteRepo.Create(ctx, model.Favorite{
		CustomerID: customerID,
		ProductID:  productID,
	}); err != nil {
		return false, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return true, nil
}

// isFavorite判定
func (u *FavoriteUsecase) IsFavorite(ctx context.Context, customerID int64, productID int64) (bool, error) {
	if customerID <= 0 {
		return false, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return false, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	exists, err := u.favoriteRepo.Exists(ctx, customerID, productID)
	if err != nil {
		return false, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return exists, nil
}

// 削除も冪等。未登録でも成功を返す。
func (u *FavoriteUsecase) RemoveFavorite(ctx context.Context, customerID int64, productID int64) error {
	if customerID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	if err := u.favoriteRepo.Delete(ctx, customerID, productID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
