package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"agro/config"
	"agro/database"
	"agro/router"

	// Producer
	producerCtrlImp "agro/pkg/producer/controllerImp"
	producerRepoImp "agro/pkg/producer/repositoryImp"
	producerSvcImp "agro/pkg/producer/serviceImp"

	// Dashboard
	dashCtrlImp "agro/pkg/dashboard/controllerImp"
	dashRepoImp "agro/pkg/dashboard/repositoryImp"

	// Health
	healthCtrlImp "agro/pkg/health/controllerImp"
)

func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return serve(ctx)
}

func serve(ctx context.Context) error {
	// 1) Config
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// 2) DB (sqlite) + automigrate
	db, err := database.OpenSQLite(cfg.DBPath, cfg.DBLogSQL)
	if err != nil {
		return err
	}

	// 3) Echo + routes
	e := NewServer(db, cfg)

	// 4) Start, stop on signal
	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on :%s", cfg.Port)
		errCh <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	return nil
}

// NewServer wires repositories, services and controllers onto a fresh echo
// instance.
func NewServer(db *gorm.DB, cfg config.AppConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	pRepo := producerRepoImp.New(db)
	pSvc := producerSvcImp.NewProducerService(pRepo, producerSvcImp.Paging{
		Default: cfg.DefaultPageSize,
		Max:     cfg.MaxPageSize,
	})
	pCtrl := producerCtrlImp.New(pSvc, cfg.MaxPageSize)

	dCtrl := dashCtrlImp.New(dashRepoImp.New(db))
	hCtrl := healthCtrlImp.NewHealthCtrl(db)

	return router.New(e, router.Options{
		APIKey:        cfg.APIKey,
		RequireAPIKey: cfg.RequireAPIKey,
		CORSOrigins:   cfg.CORSOrigins,
	}, pCtrl, dCtrl, hCtrl)
}
