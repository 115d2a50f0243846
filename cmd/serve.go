package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iliyamo/hotel-reservation/internal/config"
	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/router"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := newLogger(cfg)

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			st, cleanup, err := openStore(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer cleanup()

			engine := newEngine(cfg, st, log)

			var authHandler *handler.AuthHandler
			if cfg.StaffEnabled() {
				authHandler, err = handler.NewAuthHandler(cfg)
				if err != nil {
					return err
				}
			}

			rdb := config.NewRedisClient()
			if rdb != nil {
				defer rdb.Close()
			}

			e := echo.New()
			e.HideBanner = true
			e.Use(echomw.Recover())
			router.Register(e, handler.NewBookingHandler(engine), authHandler, cfg, rdb)

			addr := ":" + cfg.Port
			errCh := make(chan error, 1)
			go func() {
				errCh <- e.Start(addr)
			}()
			log.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env, "backend": cfg.StoreBackend}).Info("server started")

			select {
			case <-ctx.Done():
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					st.SaveAll(context.Background())
					return err
				}
			}

			shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
			defer stop()
			if err := e.Shutdown(shutdownCtx); err != nil {
				log.WithError(err).Warn("server shutdown")
			}
			st.SaveAll(shutdownCtx)
			return nil
		},
	}
}
