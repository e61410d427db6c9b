package handler

import (
	"net/http"

	"github.com/justishika/DevSecOps-SweetSpot/internal/config"
	"github.com/justishika/DevSecOps-SweetSpot/internal/middleware"
	"github.com/justishika/DevSecOps-SweetSpot/internal/repository"
	"github.com/justishika/DevSecOps-SweetSpot/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/categoriesのHTTP。閲覧は公開、作成はベンダーのみ。
type CategoryHandler struct {
	uc *usecase.CategoryUsecase
}

// DI
func NewCategoryHandler(uc *usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *CategoryHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	e.GET("/api/categories", h.list)
	e.POST("/api/categories", h.create,
		middleware.AuthJWT(cfg),
		middleware.TokenVersionGuard(userRepo),
		middleware.VendorRoleGuard(),
	)
}

func (h *CategoryHandler) list(c echo.Context) error {
	out, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CategoryHandler) create(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateCategory(c.Request().Context(), req.Name, req.Description)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}
