package server

import (
	"net/http"

	"github.com/justishika/DevSecOps-SweetSpot/internal/config"
	"github.com/justishika/DevSecOps-SweetSpot/internal/handler"
	"github.com/justishika/DevSecOps-SweetSpot/internal/repository"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// サーバー本体。ハンドラ登録はここでまとめる。
type Server struct {
	echo *echo.Echo
	cfg  config.Config
}

type Handlers struct {
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Favorite *handler.FavoriteHandler
	Review   *handler.ReviewHandler
	Stats    *handler.StatsHandler
	Upload   *handler.UploadHandler
	Health   *handler.HealthHandler
}

func New(cfg config.Config, h Handlers, userRepo repository.UserRepository) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FEURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// アップロード画像の配信
	e.Static("/uploads", cfg.UploadDir)

	h.Health.RegisterRoutes(e)
	h.Auth.RegisterRoutes(e, cfg, userRepo)
	h.Product.RegisterRoutes(e, cfg, userRepo)
	h.Category.RegisterRoutes(e, cfg, userRepo)
	h.Cart.RegisterRoutes(e, cfg, userRepo)
	h.Order.RegisterRoutes(e, cfg, userRepo)
	h.Favorite.RegisterRoutes(e, cfg, userRepo)
	h.Review.RegisterRoutes(e, cfg, userRepo)
	h.Stats.RegisterRoutes(e, cfg, userRepo)
	h.Upload.RegisterRoutes(e, cfg, userRepo)

	return &Server{echo: e, cfg: cfg}
}

func (s *Server) Start() error {
	addr := s.cfg.Port
	if addr == "" {
		addr = ":8080"
	}
	if addr[0] != ':' {
		addr = ":" + addr
	}
	return s.echo.Start(addr)
}
