package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"caissepro/internal/commons"
	"caissepro/internal/infrastructure/logger"
	"caissepro/internal/infrastructure/mysql"
	"caissepro/internal/order"
	"caissepro/internal/print"
	"caissepro/internal/printer"
	"caissepro/internal/reception"
	"caissepro/internal/routing"
	"caissepro/internal/server"

	"go.uber.org/zap"
)

func main() {
	cfg, err := commons.LoadConfig("internal/config/config.yaml")
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	engine := routing.NewEngine(cfg.Print.BeverageKeywords...)
	dispatcher := print.NewDispatcher(cfg.Print.DialTimeout, nil, zapLogger)

	orderCtrl := order.NewModule(db, engine, zapLogger)
	printerCtrl := printer.NewModule(db, dispatcher, zapLogger)
	printCtrl := print.NewModule(db, engine, dispatcher, zapLogger)
	receptionCtrl := reception.NewModule(db, zapLogger)

	router := server.NewRouter(orderCtrl, printerCtrl, printCtrl, receptionCtrl, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
