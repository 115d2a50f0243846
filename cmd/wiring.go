package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/config"
	"github.com/iliyamo/hotel-reservation/internal/database"
	"github.com/iliyamo/hotel-reservation/internal/payment"
	queuepublisher "github.com/iliyamo/hotel-reservation/internal/service"
	"github.com/iliyamo/hotel-reservation/internal/store"
)

func newLogger(cfg config.Config) *logrus.Logger {
	log := logrus.New()
	if cfg.Env == "prod" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log
}

// openStore builds the configured persistence backend and loads the
// store from it.  The returned cleanup closes backend resources and must
// run after the final save.
func openStore(ctx context.Context, cfg config.Config, log *logrus.Logger) (*store.Store, func(), error) {
	switch cfg.StoreBackend {
	case "file":
		backend := store.NewFileBackend(cfg.DataDir)
		return store.Open(ctx, backend, log), func() {}, nil
	case "mysql":
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		backend, err := store.NewMySQLBackend(ctx, db)
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("prepare schema: %w", err)
		}
		return store.Open(ctx, backend, log), func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func newEngine(cfg config.Config, st *store.Store, log *logrus.Logger) *booking.Engine {
	authorizer := payment.WithBreaker("payments", payment.NewSimulator(cfg.PaymentApproveRate, cfg.PaymentDelay))
	var events booking.EventSink
	if cfg.AMQPURL != "" {
		events = queuepublisher.New(cfg.AMQPURL, log)
	}
	return booking.New(st, authorizer, events, log)
}
