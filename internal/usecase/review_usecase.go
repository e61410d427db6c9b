package usecase

import (
	"context"
	"net/http"
	"strings"

	"github.com/justishika/DevSecOps-SweetSpot/internal/domain/model"
	repo "github.com/justishika/DevSecOps-SweetSpot/internal/repository"
)

type ReviewUsecase struct {
	reviewRepo  repo.ReviewRepository
	productRepo repo.ProductRepository
	userRepo    repo.UserRepository
}

// DI
func NewReviewUsecase(reviewRepo repo.ReviewRepository, productRepo repo.ProductRepository, userRepo repo.UserRepository) *ReviewUsecase {
	return &ReviewUsecase{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

type ReviewOutput struct {
	ID           int64  `json:"id"`
	ProductID    int64  `json:"product_id"`
	CustomerID   int64  `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment,omitempty"`
	CreatedAt    string `json:"created_at"`
}

type PostReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (u *ReviewUsecase) ListReviews(ctx context.Context, productID int64) ([]ReviewOutput, error) {
	if productID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return nil, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	reviews, err := u.reviewRepo.ListByProductID(ctx, productID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]ReviewOutput, 0, len(reviews))
	for _, r := range reviews {
		name := ""
		if user, err := u.userRepo.FindByID(ctx, r.CustomerID); err == nil && user != nil {
			name = strings.TrimSpace(user.FirstName + " " + user.LastName)
		}
		out = append(out, ReviewOutput{
			ID:           r.ID,
			ProductID:    r.ProductID,
			CustomerID:   r.CustomerID,
			CustomerName: name,
			Rating:       r.Rating,
			Comment:      r.Comment,
			CreatedAt:    r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return out, nil
}

func (u *ReviewUsecase) PostReview(ctx context.Context, customerID int64, productID int64, in PostReviewInput) (ReviewOutput, error) {
	if customerID <= 0 {
		return ReviewOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return ReviewOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return ReviewOutput{}, NewHTTPError(http.StatusBadRequest, "rating must be 1 to 5")
	}

	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return ReviewOutput{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return ReviewOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	r, err := u.reviewRepo.Create(ctx, model.Review{
		ProductID:  productID,
		CustomerID: customerID,
		Rating:     in.Rating,
		Comment:    in.Comment,
	})
	if err != nil {
		return ReviewOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	name := ""
	if user, err := u.userRepo.FindByID(ctx, customerID); err == nil && user != nil {
		name = strings.TrimSpace(user.FirstName + " " + user.LastName)
	}

	return ReviewOutput{
		ID:           r.ID,
		ProductID:    r.ProductID,
		CustomerID:   r.CustomerID,
		CustomerName: name,
		Rating:       r.Rating,
		Comment:      r.Comment,
		CreatedAt:    r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}
