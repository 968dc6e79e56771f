package main

import (
	"context"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/pos-terminal/application/checkout"
	sessionapp "github.com/muhammadheryan/pos-terminal/application/session"
	"github.com/muhammadheryan/pos-terminal/application/terminal"
	"github.com/muhammadheryan/pos-terminal/cmd/config"
	redisclient "github.com/muhammadheryan/pos-terminal/cmd/redis"
	_ "github.com/muhammadheryan/pos-terminal/docs"
	journalRepo "github.com/muhammadheryan/pos-terminal/repository/journal"
	sessionRepo "github.com/muhammadheryan/pos-terminal/repository/session"
	"github.com/muhammadheryan/pos-terminal/thirdparty/backend"
	"github.com/muhammadheryan/pos-terminal/thirdparty/rabbitmq"
	"github.com/muhammadheryan/pos-terminal/transport"
	"github.com/muhammadheryan/pos-terminal/utils/logger"
	validatorx "github.com/muhammadheryan/pos-terminal/utils/validator"
	"go.uber.org/zap"
)

// @title POS TERMINAL API
// @version 1.0
// @description Cashier terminal: catalog, cart and checkout per logged-in cashier
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))
	validatorx.Init()

	// Initialize Redis client
	rdb, err := redisclient.New(cfg.Redis)
	if err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = rdb.Close()
	}()

	backendClient, err := backend.NewClient(cfg)
	if err != nil {
		logger.Fatal("err init backend client", zap.Error(err))
	}

	// Checkout journal is optional
	var journal journalRepo.JournalRepository
	if cfg.Database.Enabled() {
		db, err := sqlx.Connect("mysql", cfg.GetDSN())
		if err != nil {
			logger.Fatal("err connect db", zap.Error(err))
		}
		defer db.Close()

		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

		journal = journalRepo.NewJournalRepository(db)
	} else {
		logger.Info("checkout journal disabled")
	}

	// Receipt events are optional
	var publisher checkout.ReceiptPublisher
	if cfg.RabbitMQ.Enabled() {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
		if err != nil {
			logger.Fatal("err connect rabbitmq", zap.Error(err))
		}
		defer p.Close()
		publisher = p
	} else {
		logger.Info("receipt publisher disabled")
	}

	// Initialize repositories
	SessionRepo := sessionRepo.NewSessionRepository(rdb)

	// Initialize application layers
	SessionApp := sessionapp.NewSessionApp(cfg, backendClient, SessionRepo)
	TerminalApp := terminal.NewTerminalApp(cfg, backendClient, backendClient, journal, publisher)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sweepTerminals(ctx, TerminalApp, time.Minute)

	httpTransport := transport.NewTransport(SessionApp, TerminalApp)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}

// sweepTerminals drops carts of sessions that expired without a logout.
func sweepTerminals(ctx context.Context, app terminal.TerminalApp, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := app.Sweep(now); n > 0 {
				logger.Info("expired terminals dropped", zap.Int("count", n))
			}
		}
	}
}
