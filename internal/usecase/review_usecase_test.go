package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/justishika/DevSecOps-SweetSpot/internal/domain/model"
	"github.com/justishika/DevSecOps-SweetSpot/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReviewUsecase_PostReview_RatingOutOfRange(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewReviewUsecase(new(ReviewRepoMock), new(ProductRepoMock), new(UserRepoMock))

	for _, rating := range []int{0, 6, -1} {
		_, err := uc.PostReview(ctx, 10, 100, usecase.PostReviewInput{Rating: rating})
		he, ok := usecase.AsHTTPError(err)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Status)
	}
}

func TestReviewUsecase_PostReview_Success(t *testing.T) {
	ctx := context.Background()

	reviewRepo := new(ReviewRepoMock)
	productRepo := new(ProductRepoMock)
	userRepo := new(UserRepoMock)
	uc := usecase.NewReviewUsecase(reviewRepo, productRepo, userRepo)

	productRepo.On("FindByID", mock.Anything, int64(100)).
		Return(model.Product{ID: 100, Name: "Tarte", IsActive: true}, nil)
	reviewRepo.On("Create", mock.Anything, mock.MatchedBy(func(r model.Review) bool {
		return r.ProductID == 100 && r.CustomerID == 10 && r.Rating == 5
	})).Return(model.Review{ID: 1, ProductID: 100, CustomerID: 10, Rating: 5, Comment: "great"}, nil)
	userRepo.On("FindByID", mock.Anything, int64(10)).
		Return(&model.User{ID: 10, FirstName: "Hana", LastName: "Suzuki"}, nil)

	out, err := uc.PostReview(ctx, 10, 100, usecase.PostReviewInput{Rating: 5, Comment: "great"})
	assert.NoError(t, err)
	assert.Equal(t, 5, out.Rating)
	assert.Equal(t, "Hana Suzuki", out.CustomerName)
}
