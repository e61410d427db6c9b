package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/justishika/DevSecOps-SweetSpot/internal/domain/model"
	repo "github.com/justishika/DevSecOps-SweetSpot/internal/repository"

	"github.com/sirupsen/logrus"
)

type OrderUsecase struct {
	tx            repo.TransactionManager
	orderRepo     repo.OrderRepository
	orderItemRepo repo.OrderItemRepository
	productRepo   repo.ProductRepository
}

// DI
func NewOrderUsecase(
	tx repo.TransactionManager,
	orderRepo repo.OrderRepository,
	orderItemRepo repo.OrderItemRepository,
	productRepo repo.ProductRepository,
) *OrderUsecase {
	return &OrderUsecase{
		tx:            tx,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		productRepo:   productRepo,
	}
}

type PlaceOrderInput struct {
	DeliveryAddress     model.DeliveryAddress `json:"delivery_address"`
	SpecialInstructions string                `json:"special_instructions"`
}

// 注文明細のレスポンス。名前と単価は注文時のスナップショット。
// Productは現在の商品で、削除済みならnil。
type OrderItemOutput struct {
	ProductID       int64          `json:"product_id"`
	Name            string         `json:"name"`
	UnitPrice       int64          `json:"unit_price"`
	Quantity        int64          `json:"quantity"`
	TotalPrice      int64          `json:"total_price"`
	SpecialRequests string         `json:"special_requests,omitempty"`
	Product         *model.Product `json:"product,omitempty"`
}

type OrderOutput struct {
	ID                  int64                 `json:"id"`
	CustomerID          int64                 `json:"customer_id"`
	VendorID            int64                 `json:"vendor_id"`
	Status              model.OrderStatus     `json:"status"`
	Total               int64                 `json:"total"`
	DeliveryAddress     model.DeliveryAddress `json:"delivery_address"`
	SpecialInstructions string                `json:"special_instructions,omitempty"`
	Items               []OrderItemOutput     `json:"items"`
	CreatedAt           time.Time             `json:"created_at"`
	UpdatedAt           time.Time             `json:"updated_at"`
}

// カート全体を1注文に変換する。注文作成・在庫減算・カート削除は
// 同一トランザクション。途中で失敗したら全部ロールバック。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, customerID int64, in PlaceOrderInput) (OrderOutput, error) {
	if customerID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.DeliveryAddress.Street) == "" || strings.TrimSpace(in.DeliveryAddress.City) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "delivery address required")
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// クライアント送信の明細は信用せず、サーバー側のカートを読む
		cartItems, err := r.CartItems().ListByCustomerID(ctx, customerID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}

		ids := make([]int64, 0, len(cartItems))
		for _, it := range cartItems {
			ids = append(ids, it.ProductID)
		}
		products, err := r.Products().FindByIDs(ctx, ids)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		byID := make(map[int64]model.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		var vendorID int64
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		var total int64
		for _, it := range cartItems {
			p, ok := byID[it.ProductID]
			if !ok || !p.IsActive {
				return NewHTTPError(http.StatusBadRequest, "product not available")
			}
			// 1注文=1ベンダー
			if vendorID == 0 {
				vendorID = p.VendorID
			} else if p.VendorID != vendorID {
				return NewHTTPError(http.StatusBadRequest, "cart contains products from multiple vendors")
			}

			ok, err := r.Products().DecreaseStockIfEnough(ctx, p.ID, it.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest, "out of stock: "+p.Name)
			}

			line := p.Price * it.Quantity
			total += line
			orderItems = append(orderItems, model.OrderItem{
				ProductID:           p.ID,
				ProductNameSnapshot: p.Name,
				UnitPriceSnapshot:   p.Price,
				Quantity:            it.Quantity,
				TotalPrice:          line,
				SpecialRequests:     it.SpecialRequests,
			})
		}

		order, err := r.Orders().Create(ctx, model.Order{
			CustomerID:          customerID,
			VendorID:            vendorID,
			Status:              model.OrderStatusPending,
			Total:               total,
			DeliveryAddress:     in.DeliveryAddress,
			SpecialInstructions: in.SpecialInstructions,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, order.ID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.CartItems().DeleteByCustomerID(ctx, customerID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(order, orderItems, byID)

		logrus.WithFields(logrus.Fields{
			"order_id":    order.ID,
			"customer_id": customerID,
			"vendor_id":   vendorID,
			"total":       total,
			"items":       len(orderItems),
		}).Info("order placed")

		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 顧客は自分の注文、ベンダーは自店舗宛の注文だけ見える。
func (u *OrderUsecase) ListOrders(ctx context.Context, userID int64, role model.Role, status string) ([]OrderOutput, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if status != "" && !model.OrderStatus(status).Valid() {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	filter := repo.OrderListFilter{Status: status}
	if role == model.RoleVendor {
		filter.VendorID = &userID
	} else {
		filter.CustomerID = &userID
	}

	orders, err := u.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		items, err := u.orderItemRepo.ListByOrderID(ctx, o.ID)
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		byID, err := u.currentProducts(ctx, items)
		if err != nil {
			return nil, err
		}
		out = append(out, toOrderOutput(o, items, byID))
	}
	return out, nil
}

func (u *OrderUsecase) GetOrderDetail(ctx context.Context, userID int64, role model.Role, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 当事者以外には存在ごと隠す
	if role == model.RoleVendor {
		if o.VendorID != userID {
			return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
		}
	} else if o.CustomerID != userID {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	items, err := u.orderItemRepo.ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	byID, err := u.currentProducts(ctx, items)
	if err != nil {
		return OrderOutput{}, err
	}
	return toOrderOutput(o, items, byID), nil
}

// ステータス更新は受注ベンダーのみ。遷移表にない変更は409。
func (u *OrderUsecase) UpdateStatus(ctx context.Context, vendorID int64, orderID int64, status string) (OrderOutput, error) {
	if vendorID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order id")
	}
	next := model.OrderStatus(status)
	if !next.Valid() {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var updated model.Order
	var items []model.OrderItem
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.VendorID != vendorID {
			return NewHTTPError(http.StatusForbidden, "forbidden")
		}
		if !o.Status.CanTransitionTo(next) {
			return NewHTTPError(http.StatusConflict, "invalid status transition")
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, next); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err = r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		prev := o.Status
		o.Status = next
		updated = o

		logrus.WithFields(logrus.Fields{
			"order_id":  orderID,
			"vendor_id": vendorID,
			"from":      prev,
			"to":        next,
		}).Info("order status updated")

		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	// list/detailと同じ形で返す（現在の商品情報も埋める）
	byID, err := u.currentProducts(ctx, items)
	if err != nil {
		return OrderOutput{}, err
	}
	return toOrderOutput(updated, items, byID), nil
}

func (u *OrderUsecase) currentProducts(ctx context.Context, items []model.OrderItem) (map[int64]model.Product, error) {
	if len(items) == 0 {
		return nil, nil
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
	return byID, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem, current map[int64]model.Product) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		oi := OrderItemOutput{
			ProductID:       it.ProductID,
			Name:            it.ProductNameSnapshot,
			UnitPrice:       it.UnitPriceSnapshot,
			Quantity:        it.Quantity,
			TotalPrice:      it.TotalPrice,
			SpecialRequests: it.SpecialRequests,
		}
		if p, ok := current[it.ProductID]; ok {
			pc := p
			oi.Product = &pc
		}
		outItems = append(outItems, oi)
	}
	return OrderOutput{
		ID:                  o.ID,
		CustomerID:          o.CustomerID,
		VendorID:            o.VendorID,
		Status:              o.Status,
		Total:               o.Total,
		DeliveryAddress:     o.DeliveryAddress,
		SpecialInstructions: o.SpecialInstructions,
		Items:               outItems,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
}
