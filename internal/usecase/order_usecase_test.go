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

func newOrderUsecase(tm *txManagerStub) (*usecase.OrderUsecase, *OrderRepoMock, *OrderItemRepoMock, *ProductRepoMock) {
	orderRepo := new(OrderRepoMock)
	orderItemRepo := new(OrderItemRepoMock)
	productRepo := new(ProductRepoMock)
	uc := usecase.NewOrderUsecase(tm, orderRepo, orderItemRepo, productRepo)
	return uc, orderRepo, orderItemRepo, productRepo
}

func validAddress() model.DeliveryAddress {
	return model.DeliveryAddress{
		Name:       "Hana Suzuki",
		Street:     "1-2-3 Sakura",
		City:       "Kyoto",
		PostalCode: "600-0001",
		Phone:      "090-0000-0000",
	}
}

func TestOrderUsecase_PlaceOrder_Success(t *testing.T) {
	ctx := context.Background()
	tm := newTxManagerStub()
	uc, _, _, _ := newOrderUsecase(tm)

	cart := []model.CartItem{
		{ID: 1, CustomerID: 10, ProductID: 100, Quantity: 2},
		{ID: 2, CustomerID: 10, ProductID: 101, Quantity: 1, SpecialRequests: "no nuts"},
	}
	products := []model.Product{
		{ID: 100, Name: "Tarte", Price: 1000, Stock: 5, VendorID: 7, IsActive: true},
		{ID: 101, Name: "Canelé", Price: 500, Stock: 3, VendorID: 7, IsActive: true},
	}

	tm.repos.cartItems.On("ListByCustomerID", mock.Anything, int64(10)).Return(cart, nil)
	tm.repos.products.On("FindByIDs", mock.Anything, []int64{100, 101}).Return(products, nil)
	tm.repos.products.On("DecreaseStockIfEnough", mock.Anything, int64(100), int64(2)).Return(true, nil)
	tm.repos.products.On("DecreaseStockIfEnough", mock.Anything, int64(101), int64(1)).Return(true, nil)
	tm.repos.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.CustomerID == 10 && o.VendorID == 7 && o.Total == 2500 && o.Status == model.OrderStatusPending
	})).Return(model.Order{ID: 55, CustomerID: 10, VendorID: 7, Total: 2500, Status: model.OrderStatusPending}, nil)
	tm.repos.orderItems.On("CreateBulk", mock.Anything, int64(55), mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 2 &&
			items[0].ProductNameSnapshot == "Tarte" && items[0].UnitPriceSnapshot == 1000 && items[0].TotalPrice == 2000 &&
			items[1].TotalPrice == 500 && items[1].SpecialRequests == "no nuts"
	})).Return(nil)
	tm.repos.cartItems.On("DeleteByCustomerID", mock.Anything, int64(10)).Return(nil)

	out, err := uc.PlaceOrder(ctx, 10, usecase.PlaceOrderInput{DeliveryAddress: validAddress()})
	assert.NoError(t, err)
	assert.Equal(t, int64(2500), out.Total)
	assert.Equal(t, model.OrderStatusPending, out.Status)
	assert.Equal(t, 2, len(out.Items))

	tm.repos.cartItems.AssertExpectations(t)
	tm.repos.orders.AssertExpectations(t)
	tm.repos.orderItems.AssertExpectations(t)
}

func TestOrderUsecase_PlaceOrder_EmptyCart(t *testing.T) {
	ctx := context.Background()
	tm := newTxManagerStub()
	uc, _, _, _ := newOrderUsecase(tm)

	tm.repos.cartItems.On("ListByCustomerID", mock.Anything, int64(10)).Return([]model.CartItem{}, nil)

	_, err := uc.PlaceOrder(ctx, 10, usecase.PlaceOrderInput{DeliveryAddress: validAddress()})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	tm.repos.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderUsecase_PlaceOrder_MixedVendors(t *testing.T) {
	ctx := context.Background()
	tm := newTxManagerStub()
	uc, _, _, _ := newOrderUsecase(tm)

	cart := []model.CartItem{
		{ID: 1, CustomerID: 10, ProductID: 100, Quantity: 1},
		{ID: 2, CustomerID: 10, ProductID: 200, Quantity: 1},
	}
	products := []model.Product{
		{ID: 100, Name: "Tarte", Price: 1000, Stock: 5, VendorID: 7, IsActive: true},
		{ID: 200, Name: "Mochi", Price: 300, Stock: 5, VendorID: 8, IsActive: true},
	}

	tm.repos.cartItems.On("ListByCustomerID", mock.Anything, int64(10)).Return(cart, nil)
	tm.repos.products.On("FindByIDs", mock.Anything, []int64{100, 200}).Return(products, nil)
	tm.repos.products.On("DecreaseStockIfEnough", mock.Anything, int64(100), int64(1)).Return(true, nil)

	_, err := uc.PlaceOrder(ctx, 10, usecase.PlaceOrderInput{DeliveryAddress: validAddress()})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	tm.repos.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	tm.repos.cartItems.AssertNotCalled(t, "DeleteByCustomerID", mock.Anything, int64(10))
}

func TestOrderUsecase_PlaceOrder_OutOfStock(t *testing.T) {
	ctx := context.Background()
	tm := newTxManagerStub()
	uc, _, _, _ := newOrderUsecase(tm)

	cart := []model.CartItem{
		{ID: 1, CustomerID: 10, ProductID: 100, Quantity: 99},
	}
	products := []model.Product{
		{ID: 100, Name: "Tarte", Price: 1000, Stock: 5, VendorID: 7, IsActive: true},
	}

	tm.repos.cartItems.On("ListByCustomerID", mock.Anything, int64(10)).Return(cart, nil)
	tm.repos.products.On("FindByIDs", mock.Anything, []int64{100}).Return(products, nil)
	tm.repos.products.On("DecreaseStockIfEnough", mock.Anything, int64(100), int64(99)).Return(false, nil)

	_, err := uc.PlaceOrder(ctx, 10, usecase.PlaceOrderInput{DeliveryAddress: validAddress()})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	// 失敗時に注文もカート削除も起きない
	tm.repos.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	tm.repos.cartItems.AssertNotCalled(t, "DeleteByCustomerID", mock.Anything, int64(10))
}

func TestOrderUsecase_PlaceOrder_InactiveProduct(t *testing.T) {
	ctx := context.Background()
	tm := newTxManagerStub()
	uc, _, _, _ := newOrderUsecase(tm)

	cart := []model.CartItem{
		{ID: 1, CustomerID: 10, ProductID: 100, Quantity: 1},
	}
	products := []model.Product{
		{ID: 100, Name: "Tarte", Price: 1000, Stock: 5, VendorID: 7, IsActive: false},
	}

	tm.repos.cartItems.On("ListByCustomerID", mock.Anything, int64(10)).Return(cart, nil)
	tm.repos.products.On("FindByIDs", mock.Anything, []int64{100}).Return(products, nil)

	_, err := uc.PlaceOrder(ctx, 10, usecase.PlaceOrderInput{DeliveryAddress: validAddress()})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestOrderUsecase_PlaceOrder_MissingAddress(t *testing.T) {
	ctx := context.Background()
	tm := newTxManagerStub()
	uc, _, _, _ := newOrderUsecase(tm)

	_, err := uc.PlaceOrder(ctx, 10, usecase.PlaceOrderInput{})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestOrderUsecase_UpdateStatus_Success(t *testing.T) {
	ctx := context.Background()
	tm := newTxManagerStub()
	uc, _, _, _ := newOrderUsecase(tm)

	tm.repos.orders.On("FindByID", mock.Anything, int64(55)).
		Return(model.Order{ID: 55, CustomerID: 10, VendorID: 7, Status: model.OrderStatusPending}, nil)
	tm.repos.orders.On("UpdateStatus", mock.Anything, int64(55), model.OrderStatusConfirmed).Return(nil)
	tm.repos.orderItems.On("ListByOrderID", mock.Anything, int64(55)).Return([]model.OrderItem{}, nil)

	out, err := uc.UpdateStatus(ctx, 7, 55, "confirmed")
	assert.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, out.Status)

	tm.repos.orders.AssertExpectations(t)
}

func TestOrderUsecase_UpdateStatus_PopulatesCurrentProducts(t *testing.T) {
	ctx := context.Background()
	tm := newTxManagerStub()
	uc, _, _, productRepo := newOrderUsecase(tm)

	tm.repos.orders.On("FindByID", mock.Anything, int64(55)).
		Return(model.Order{ID: 55, CustomerID: 10, VendorID: 7, Status: model.OrderStatusPending}, nil)
	tm.repos.orders.On("UpdateStatus", mock.Anything, int64(55), model.OrderStatusConfirmed).Return(nil)
	tm.repos.orderItems.On("ListByOrderID", mock.Anything, int64(55)).Return([]model.OrderItem{
		{ID: 1, OrderID: 55, ProductID: 100, ProductNameSnapshot: "Tarte", UnitPriceSnapshot: 1000, Quantity: 2, TotalPrice: 2000},
	}, nil)
	// list/detailと同様に現在の商品を埋める
	productRepo.On("FindByIDs", mock.Anything, []int64{100}).Return([]model.Product{
		{ID: 100, Name: "Tarte", Price: 1200, VendorID: 7, IsActive: true},
	}, nil)

	out, err := uc.UpdateStatus(ctx, 7, 55, "confirmed")
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out.Items))
	if assert.NotNil(t, out.Items[0].Product) {
		assert.Equal(t, int64(100), out.Items[0].Product.ID)
	}
	// スナップショットは当時の値のまま
	assert.Equal(t, int64(1000), out.Items[0].UnitPrice)

	productRepo.AssertExpectations(t)
}

func TestOrderUsecase_UpdateStatus_ForbiddenForOtherVendor(t *testing.T) {
	ctx := context.Background()
	tm := newTxManagerStub()
	uc, _, _, _ := newOrderUsecase(tm)

	tm.repos.orders.On("FindByID", mock.Anything, int64(55)).
		Return(model.Order{ID: 55, CustomerID: 10, VendorID: 7, Status: model.OrderStatusPending}, nil)

	_, err := uc.UpdateStatus(ctx, 99, 55, "confirmed")
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Status)

	tm.repos.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderUsecase_UpdateStatus_IllegalTransition(t *testing.T) {
	ctx := context.Background()
	tm := newTxManagerStub()
	uc, _, _, _ := newOrderUsecase(tm)

	tm.repos.orders.On("FindByID", mock.Anything, int64(55)).
		Return(model.Order{ID: 55, CustomerID: 10, VendorID: 7, Status: model.OrderStatusDelivered}, nil)

	_, err := uc.UpdateStatus(ctx, 7, 55, "pending")
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Status)
}

func TestOrderUsecase_UpdateStatus_InvalidStatusValue(t *testing.T) {
	ctx := context.Background()
	tm := newTxManagerStub()
	uc, _, _, _ := newOrderUsecase(tm)

	_, err := uc.UpdateStatus(ctx, 7, 55, "shipped")
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestOrderUsecase_GetOrderDetail_HiddenFromStranger(t *testing.T) {
	ctx := context.Background()
	tm := newTxManagerStub()
	uc, orderRepo, _, _ := newOrderUsecase(tm)

	orderRepo.On("FindByID", mock.Anything, int64(55)).
		Return(model.Order{ID: 55, CustomerID: 10, VendorID: 7}, nil)

	_, err := uc.GetOrderDetail(ctx, 42, model.RoleCustomer, 55)
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestOrderUsecase_GetOrderDetail_SnapshotSurvivesDeletedProduct(t *testing.T) {
	ctx := context.Background()
	tm := newTxManagerStub()
	uc, orderRepo, orderItemRepo, productRepo := newOrderUsecase(tm)

	orderRepo.On("FindByID", mock.Anything, int64(55)).
		Return(model.Order{ID: 55, CustomerID: 10, VendorID: 7, Total: 2000}, nil)
	orderItemRepo.On("ListByOrderID", mock.Anything, int64(55)).Return([]model.OrderItem{
		{OrderID: 55, ProductID: 100, ProductNameSnapshot: "Tarte", UnitPriceSnapshot: 1000, Quantity: 2, TotalPrice: 2000},
	}, nil)
	// 商品は削除済み
	productRepo.On("FindByIDs", mock.Anything, []int64{100}).Return([]model.Product{}, nil)

	out, err := uc.GetOrderDetail(ctx, 10, model.RoleCustomer, 55)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out.Items))
	assert.Equal(t, "Tarte", out.Items[0].Name)
	assert.Equal(t, int64(1000), out.Items[0].UnitPrice)
	assert.Nil(t, out.Items[0].Product)
}

func TestOrderUsecase_ListOrders_VendorScope(t *testing.T) {
	ctx := context.Background()
	tm := newTxManagerStub()
	uc, orderRepo, orderItemRepo, _ := newOrderUsecase(tm)

	vendorID := int64(7)
	orderRepo.On("List", mock.Anything, mock.MatchedBy(func(f repo.OrderListFilter) bool {
		return f.VendorID != nil && *f.VendorID == vendorID && f.CustomerID == nil
	})).Return([]model.Order{{ID: 55, CustomerID: 10, VendorID: vendorID}}, nil)
	orderItemRepo.On("ListByOrderID", mock.Anything, int64(55)).Return([]model.OrderItem{}, nil)

	out, err := uc.ListOrders(ctx, vendorID, model.RoleVendor, "")
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out))
	assert.Equal(t, vendorID, out[0].VendorID)
}
