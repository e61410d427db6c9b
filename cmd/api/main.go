package main

import (
	"github.com/justishika/DevSecOps-SweetSpot/internal/config"
	"github.com/justishika/DevSecOps-SweetSpot/internal/domain/model"
	"github.com/justishika/DevSecOps-SweetSpot/internal/handler"
	"github.com/justishika/DevSecOps-SweetSpot/internal/infra/db"
	infraRepo "github.com/justishika/DevSecOps-SweetSpot/internal/infra/repository"
	"github.com/justishika/DevSecOps-SweetSpot/internal/server"
	"github.com/justishika/DevSecOps-SweetSpot/internal/usecase"
	"github.com/justishika/DevSecOps-SweetSpot/internal/validator"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// .envは無くても動く（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config load failed")
	}

	logrus.SetFormatter(&logrus.JSONFormatter{})
	if cfg.GoEnv != "prod" {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logrus.SetLevel(logrus.DebugLevel)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("db connect failed")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Favorite{},
		&model.Review{},
	); err != nil {
		logrus.WithError(err).Fatal("migration failed")
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	favoriteRepo := infraRepo.NewFavoriteGormRepository(gormDB)
	reviewRepo := infraRepo.NewReviewGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	authValidator := validator.NewAuthValidator(userRepo)
	authUC := usecase.NewAuthUsecase(cfg, userRepo, authValidator)
	accountUC := usecase.NewAccountUsecase(txManager)
	productUC := usecase.NewProductUsecase(txManager, productRepo)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo)
	cartUC := usecase.NewCartUsecase(txManager, cartItemRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, orderItemRepo, productRepo)
	favoriteUC := usecase.NewFavoriteUsecase(favoriteRepo, productRepo)
	reviewUC := usecase.NewReviewUsecase(reviewRepo, productRepo, userRepo)
	statsUC := usecase.NewStatsUsecase(orderRepo, productRepo, reviewRepo)

	//Handler生成
	handlers := server.Handlers{
		Auth:     handler.NewAuthHandler(cfg, authUC, accountUC),
		Product:  handler.NewProductHandler(productUC),
		Category: handler.NewCategoryHandler(categoryUC),
		Cart:     handler.NewCartHandler(cartUC),
		Order:    handler.NewOrderHandler(orderUC),
		Favorite: handler.NewFavoriteHandler(favoriteUC),
		Review:   handler.NewReviewHandler(reviewUC),
		Stats:    handler.NewStatsHandler(statsUC),
		Upload:   handler.NewUploadHandler(cfg),
		Health:   handler.NewHealthHandler(gormDB, cfg),
	}

	srv := server.New(cfg, handlers, userRepo)

	logrus.WithField("port", cfg.Port).Info("server starting")
	if err := srv.Start(); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
