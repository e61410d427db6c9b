package handler

import (
	"net/http"
	"time"

	"github.com/justishika/DevSecOps-SweetSpot/internal/config"
	"github.com/justishika/DevSecOps-SweetSpot/internal/domain/model"
	"github.com/justishika/DevSecOps-SweetSpot/internal/middleware"
	"github.com/justishika/DevSecOps-SweetSpot/internal/repository"
	"github.com/justishika/DevSecOps-SweetSpot/internal/usecase"
	"github.com/justishika/DevSecOps-SweetSpot/internal/validator"

	"github.com/labstack/echo/v4"
)

// /api/authのHTTP
type AuthHandler struct {
	cfg       config.Config
	authUC    *usecase.AuthUsecase
	accountUC *usecase.AccountUsecase
}

// DI
func NewAuthHandler(cfg config.Config, authUC *usecase.AuthUsecase, accountUC *usecase.AccountUsecase) *AuthHandler {
	return &AuthHandler{
		cfg:       cfg,
		authUC:    authUC,
		accountUC: accountUC,
	}
}

type SwitchRoleRequest struct {
	Role string `json:"role"`
}

// /api/auth/* を登録
func (h *AuthHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	e.POST("/api/auth/signup", h.signup)
	e.POST("/api/auth/login", h.login)
	e.POST("/api/auth/logout", h.logout)

	authed := []echo.MiddlewareFunc{
		middleware.AuthJWT(cfg),
		middleware.TokenVersionGuard(userRepo),
	}

	e.GET("/api/auth/user", h.me, authed...)
	e.POST("/api/auth/role", h.switchRole, authed...)
	e.PUT("/api/customer/profile", h.updateProfile, authed...)
	e.PUT("/api/vendor/profile", h.updateProfile, authed...)
	e.DELETE("/api/account", h.deleteAccount, authed...)
}

func (h *AuthHandler) signup(c echo.Context) error {
	var req usecase.AuthSignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	res, err := h.authUC.Signup(c.Request().Context(), req)
	if err != nil {
		return writeAuthError(c, err)
	}

	h.setSessionCookie(c, res.Token.AccessToken, res.Token.ExpiresIn)
	return c.JSON(http.StatusCreated, res)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req usecase.AuthLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	res, err := h.authUC.Login(c.Request().Context(), req)
	if err != nil {
		return writeAuthError(c, err)
	}

	h.setSessionCookie(c, res.Token.AccessToken, res.Token.ExpiresIn)
	return c.JSON(http.StatusOK, res)
}

// サーバー側stateはJWTのみなのでcookieを消すだけ
func (h *AuthHandler) logout(c echo.Context) error {
	h.clearSessionCookie(c)
	return c.JSON(http.StatusOK, usecase.SuccessResponse{Message: "logged out"})
}

func (h *AuthHandler) me(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	dto, err := h.authUC.Me(c.Request().Context(), userID)
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusOK, dto)
}

func (h *AuthHandler) switchRole(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req SwitchRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	res, err := h.authUC.SwitchRole(c.Request().Context(), userID, req.Role)
	if err != nil {
		return writeAuthError(c, err)
	}

	// 旧トークンはtvで無効化済み。cookieを差し替える。
	h.setSessionCookie(c, res.Token.AccessToken, res.Token.ExpiresIn)
	return c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) updateProfile(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req usecase.ProfileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	dto, err := h.authUC.UpdateProfile(c.Request().Context(), userID, req)
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusOK, dto)
}

func (h *AuthHandler) deleteAccount(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	role, _ := getRoleFromContext(c)

	if err := h.accountUC.DeleteAccount(c.Request().Context(), userID, model.Role(role)); err != nil {
		return writeError(c, err)
	}

	h.clearSessionCookie(c)
	return c.JSON(http.StatusOK, usecase.SuccessResponse{Message: "account deleted"})
}

// auth系usecaseのsentinel errorをHTTPに変換
func writeAuthError(c echo.Context, err error) error {
	switch err {
	case validator.ErrInvalidInput, usecase.ErrValidation:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation error"})
	case validator.ErrEmailAlreadyUsed, usecase.ErrConflict:
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "email already used"})
	case usecase.ErrUnauthorized:
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid email or password"})
	case usecase.ErrForbidden:
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	case usecase.ErrUserNotFound:
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string, expiresIn int) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.GoEnv == "prod",
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(time.Duration(expiresIn) * time.Second),
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

//middleware.AuthJWT が c.Set("user_id", int64) した値を取り出す

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	if v == nil {
		return 0, false
	}

	id, ok := v.(int64)
	if !ok {
		return 0, false
	}

	return id, true
}

func getRoleFromContext(c echo.Context) (string, bool) {
	v := c.Get(middleware.CtxUserRoleKey)
	if v == nil {
		return "", false
	}

	role, ok := v.(string)
	if !ok {
		return "", false
	}

	return role, true
}
