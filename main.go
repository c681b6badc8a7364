package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/AlefSillva/projeto-empresa-db/internal/bootstrap"
	"github.com/AlefSillva/projeto-empresa-db/internal/logger"
)

func main() {
	ctx := context.Background()

	app := bootstrap.NewApp()
	defer app.Close()

	if err := app.Initialize(ctx); err != nil {
		logger.ErrorLog(ctx, "Failed to initialize application: %v", err)
		panic(err)
	}

	logger.InfoLog(ctx, "Starting server on :%s", app.Config.APP_PORT)
	if err := app.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.ErrorLog(ctx, "Server stopped: %v", err)
		panic(err)
	}
}
