package usecase

import (
	"context"
	"net/http"

	"github.com/justishika/DevSecOps-SweetSpot/internal/domain/model"
	repo "github.com/justishika/DevSecOps-SweetSpot/internal/repository"

	"github.com/sirupsen/logrus"
)

type AccountUsecase struct {
	tx repo.TransactionManager
}

// DI
func NewAccountUsecase(tx repo.TransactionManager) *AccountUsecase {
	return &AccountUsecase{tx: tx}
}

// 退会。本人のデータをロール別に1トランザクションで消す。
// 顧客: 注文・カート・お気に入り・レビュー
// ベンダー: 商品とその参照（カート明細・お気に入り）・受注
func (u *AccountUsecase) DeleteAccount(ctx context.Context, userID int64, role model.Role) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user, err := r.Users().FindByID(ctx, userID)
		if err != nil || user == nil {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		if role == model.RoleVendor {
			if err := u.deleteVendorData(ctx, r, userID); err != nil {
				return err
			}
		} else {
			if err := u.deleteCustomerData(ctx, r, userID); err != nil {
				return err
			}
		}

		if err := r.Users().Delete(ctx, userID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"role":    role,
		}).Info("account deleted")

		return nil
	})

	return err
}

func (u *AccountUsecase) deleteCustomerData(ctx context.Context, r repo.TxRepos, customerID int64) error {
	orders, err := r.Orders().List(ctx, repo.OrderListFilter{CustomerID: &customerID})
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	orderIDs := make([]int64, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}

	if err := r.OrderItems().DeleteByOrderIDs(ctx, orderIDs); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if err := r.Orders().DeleteByCustomerID(ctx, customerID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if err := r.CartItems().DeleteByCustomerID(ctx, customerID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if err := r.Favorites().DeleteByCustomerID(ctx, customerID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if err := r.Reviews().DeleteByCustomerID(ctx, customerID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *AccountUsecase) deleteVendorData(ctx context.Context, r repo.TxRepos, vendorID int64) error {
	orders, err := r.Orders().List(ctx, repo.OrderListFilter{VendorID: &vendorID})
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	orderIDs := make([]int64, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}

	if err := r.OrderItems().DeleteByOrderIDs(ctx, orderIDs); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if err := r.Orders().DeleteByVendorID(ctx, vendorID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 商品を消す前に、他ユーザーのカートとお気に入りから参照を消す
	products, err := r.Products().ListByVendor(ctx, repo.VendorProductQuery{VendorID: vendorID})
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	for _, p := range products {
		if err := r.CartItems().DeleteByProductID(ctx, p.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Favorites().DeleteByProductID(ctx, p.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	if err := r.Products().DeleteByVendor(ctx, vendorID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
