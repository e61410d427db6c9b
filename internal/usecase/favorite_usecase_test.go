package usecase_test

import (
	"context"
	"testing"

	"github.com/justishika/DevSecOps-SweetSpot/internal/domain/model"
	"github.com/justishika/DevSecOps-SweetSpot/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestFavoriteUsecase_AddFavorite_Idempotent(t *testing.T) {
	ctx := context.Background()

	favRepo := new(FavoriteRepoMock)
	productRepo := new(ProductRepoMock)
	uc := usecase.NewFavoriteUsecase(favRepo, productRepo)

	productRepo.On("FindByID", mock.Anything, int64(100)).
		Return(model.Product{ID: 100, Name: "Tarte", IsActive: true}, nil)
	// 既に登録済み → Createは呼ばれない
	favRepo.On("Exists", mock.Anything, int64(10), int64(100)).Return(true, nil)

	created, err := uc.AddFavorite(ctx, 10, 100)
	assert.NoError(t, err)
	assert.False(t, created)

	favRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFavoriteUsecase_AddFavorite_CreatesWhenAbsent(t *testing.T) {
	ctx := context.Background()

	favRepo := new(FavoriteRepoMock)
	productRepo := new(ProductRepoMock)
	uc := usecase.NewFavoriteUsecase(favRepo, productRepo)

	productRepo.On("FindByID", mock.Anything, int64(100)).
		Return(model.Product{ID: 100, Name: "Tarte", IsActive: true}, nil)
	favRepo.On("Exists", mock.Anything, int64(10), int64(100)).Return(false, nil)
	favRepo.On("Create", mock.Anything, model.Favorite{CustomerID: 10, ProductID: 100}).
		Return(model.Favorite{ID: 1, CustomerID: 10, ProductID: 100}, nil)

	created, err := uc.AddFavorite(ctx, 10, 100)
	assert.NoError(t, err)
	assert.True(t, created)

	favRepo.AssertExpectations(t)
}

func TestFavoriteUsecase_IsFavorite(t *testing.T) {
	ctx := context.Background()

	favRepo := new(FavoriteRepoMock)
	uc := usecase.NewFavoriteUsecase(favRepo, new(ProductRepoMock))

	favRepo.On("Exists", mock.Anything, int64(10), int64(100)).Return(true, nil)
	favRepo.On("Exists", mock.Anything, int64(10), int64(200)).Return(false, nil)

	fav, err := uc.IsFavorite(ctx, 10, 100)
	assert.NoError(t, err)
	assert.True(t, fav)

	fav, err = uc.IsFavorite(ctx, 10, 200)
	assert.NoError(t, err)
	assert.False(t, fav)
}

func TestFavoriteUsecase_RemoveFavorite_IdempotentWhenAbsent(t *testing.T) {
	ctx := context.Background()

	favRepo := new(FavoriteRepoMock)
	uc := usecase.NewFavoriteUsecase(favRepo, new(ProductRepoMock))

	favRepo.On("Delete", mock.Anything, int64(10), int64(100)).Return(nil)

	err := uc.RemoveFavorite(ctx, 10, 100)
	assert.NoError(t, err)

	favRepo.AssertExpectations(t)
}

func TestFavoriteUsecase_ListFavorites_PopulatesProducts(t *testing.T) {
	ctx := context.Background()

	favRepo := new(FavoriteRepoMock)
	productRepo := new(ProductRepoMock)
	uc := usecase.NewFavoriteUsecase(favRepo, productRepo)

	favRepo.On("ListByCustomerID", mock.Anything, int64(10)).Return([]model.Favorite{
		{ID: 1, CustomerID: 10, ProductID: 100},
		{ID: 2, CustomerID: 10, ProductID: 101},
	}, nil)
	productRepo.On("FindByIDs", mock.Anything, []int64{100, 101}).Return([]model.Product{
		{ID: 100, Name: "Tarte"},
		{ID: 101, Name: "Canelé"},
	}, nil)

	out, err := uc.ListFavorites(ctx, 10)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(out))
	assert.Equal(t, "Tarte", out[0].Name)
}
