package main

import (
	"os"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	//.envは無くても起動できる（本番は環境変数だけ渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := newLogger(cfg)

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}

	if err := gormDB.AutoMigrate(
		&model.MenuItem{},
		&model.CartLine{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
	); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	//Repository（GORM実装）生成
	menuRepo := infraRepo.NewMenuGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	menuUC := usecase.NewMenuUsecase(menuRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, menuRepo)
	orderUC := usecase.NewOrderUsecase(txManager, log)

	//Handler生成
	menuH := handler.NewMenuHandler(menuUC)
	cartH := handler.NewCartHandler(cartUC)
	orderH := handler.NewOrderHandler(orderUC)

	e := server.New(log, menuH, cartH, orderH)

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func newLogger(cfg config.Config) zerolog.Logger {
	if cfg.GoEnv == "dev" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
