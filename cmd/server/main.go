package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/evgeny-myasishchev/finance-tracker/config"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/app"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/ledger"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/lib-core-golang/diag"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/lib-core-golang/router"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/web"
)

var logger = diag.CreateLogger()

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	// .env is optional
	_ = godotenv.Load()

	appCfg := config.LoadAppConfig()
	app.SetupLogging(appCfg)

	injector := app.BootstrapServices(ctx, appCfg)

	if err := injector(func(manager *ledger.Manager, resources *app.Resources) error {
		defer resources.Close(ctx)
		server := router.NewServer(appCfg.Server.Port.Value(), func(r router.Router) {
			web.SetupRoutes(r, manager)
		})
		return serve(ctx, server)
	}); err != nil {
		logger.WithError(err).Error(ctx, "Server failed")
		os.Exit(1)
	}
}

func serve(ctx context.Context, server *http.Server) error {
	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(signalCtx)
	group.Go(func() error {
		logger.Info(ctx, "Starting server on %v", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info(ctx, "Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return group.Wait()
}
