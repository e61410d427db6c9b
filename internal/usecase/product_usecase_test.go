package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/justishika/DevSecOps-SweetSpot/internal/domain/model"
	repo "github.com/justishika/DevSecOps-SweetSpot/internal/repository"
	"github.com/justishika/DevSecOps-SweetSpot/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProductUsecase_GetProductDetail_NotFound_WhenInactive(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(newTxManagerStub(), pRepo)

	pRepo.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, Name: "Tarte", IsActive: false}, nil)

	_, err := uc.GetProductDetail(ctx, 1)
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestProductUsecase_GetProductDetail_NotFound(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(newTxManagerStub(), pRepo)

	pRepo.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.GetProductDetail(ctx, 1)
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestProductUsecase_ListPublicProducts_InvalidSort(t *testing.T) {
	uc := usecase.NewProductUsecase(newTxManagerStub(), new(ProductRepoMock))

	_, err := uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{Sort: "cheapest"})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestProductUsecase_VendorCreateProduct_NegativePrice(t *testing.T) {
	uc := usecase.NewProductUsecase(newTxManagerStub(), new(ProductRepoMock))

	_, err := uc.VendorCreateProduct(context.Background(), 7, usecase.VendorProductInput{
		Name:  "Tarte",
		Price: -1,
	})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestProductUsecase_VendorUpdateProduct_ForbiddenForOtherVendor(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(newTxManagerStub(), pRepo)

	pRepo.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, Name: "Tarte", VendorID: 7, IsActive: true}, nil)

	_, err := uc.VendorUpdateProduct(ctx, 99, 1, usecase.VendorProductInput{Name: "Tarte", Price: 100})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Status)

	pRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProductUsecase_VendorDeleteProduct_CascadesCartAndFavorites(t *testing.T) {
	ctx := context.Background()
	tm := newTxManagerStub()
	uc := usecase.NewProductUsecase(tm, new(ProductRepoMock))

	tm.repos.products.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, Name: "Tarte", VendorID: 7, IsActive: true}, nil)
	tm.repos.cartItems.On("DeleteByProductID", mock.Anything, int64(1)).Return(nil)
	tm.repos.favorites.On("DeleteByProductID", mock.Anything, int64(1)).Return(nil)
	tm.repos.products.On("Delete", mock.Anything, int64(1)).Return(nil)

	err := uc.VendorDeleteProduct(ctx, 7, 1)
	assert.NoError(t, err)

	tm.repos.cartItems.AssertExpectations(t)
	tm.repos.favorites.AssertExpectations(t)
	tm.repos.products.AssertExpectations(t)
}

func TestProductUsecase_VendorDeleteProduct_ForbiddenForOtherVendor(t *testing.T) {
	ctx := context.Background()
	tm := newTxManagerStub()
	uc := usecase.NewProductUsecase(tm, new(ProductRepoMock))

	tm.repos.products.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, Name: "Tarte", VendorID: 7, IsActive: true}, nil)

	err := uc.VendorDeleteProduct(ctx, 99, 1)
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Status)

	tm.repos.products.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
