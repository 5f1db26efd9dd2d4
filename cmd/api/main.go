package main

import (
	"net/http"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/safar/go-cart-checkout/internal/backend"
	"github.com/safar/go-cart-checkout/internal/cart"
	"github.com/safar/go-cart-checkout/internal/checkout"
	"github.com/safar/go-cart-checkout/internal/config"
	"github.com/safar/go-cart-checkout/internal/database"
	"github.com/safar/go-cart-checkout/internal/httpapi"
	"github.com/safar/go-cart-checkout/internal/notify"
	"github.com/safar/go-cart-checkout/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg.Server.Debug)
	defer logger.Sync()

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		logger.Fatal("connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := backend.RunMigrations(db); err != nil {
		logger.Fatal("run migrations", zap.Error(err))
	}
	logger.Info("database ready")

	store, err := newCartStorage(cfg)
	if err != nil {
		logger.Fatal("configure cart storage", zap.Error(err))
	}
	logger.Info("cart storage configured", zap.String("backend", cfg.Cart.Storage))

	carts := cart.NewManager(store, logger)

	notifier := newNotifier(cfg, logger)

	opts := []checkout.Option{checkout.WithPaymentProvider(cfg.Checkout.PaymentProvider)}
	if cfg.Checkout.Compensate {
		opts = append(opts, checkout.WithPolicy(checkout.PolicyCompensate))
		logger.Info("checkout compensation enabled")
	}
	checkouts := checkout.NewRegistry(backend.NewPostgres(db), notifier, logger, opts...)

	handler := httpapi.NewHandler(db, carts, checkouts, logger)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpapi.NewRouter(handler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	logger.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func newLogger(debug bool) *zap.Logger {
	if debug {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	logger, _ := zap.NewProduction()
	return logger
}

func newCartStorage(cfg *config.Config) (storage.Adapter, error) {
	switch cfg.Cart.Storage {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Cart.RedisAddr})
		return storage.NewRedisStore(client), nil
	case "memory":
		return storage.NewMemory(), nil
	default:
		return storage.NewFileStore(cfg.Cart.FilePath)
	}
}

func newNotifier(cfg *config.Config, logger *zap.Logger) notify.Notifier {
	logNotifier := notify.NewLogNotifier(logger)
	if cfg.AMQP.URL == "" {
		return logNotifier
	}

	conn, err := amqp.Dial(cfg.AMQP.URL)
	if err != nil {
		logger.Warn("amqp dial failed, broker notifications disabled", zap.Error(err))
		return logNotifier
	}

	amqpNotifier, err := notify.NewAMQPNotifier(conn, cfg.AMQP.Exchange, logger)
	if err != nil {
		logger.Warn("amqp setup failed, broker notifications disabled", zap.Error(err))
		return logNotifier
	}

	logger.Info("amqp notifier enabled", zap.String("exchange", cfg.AMQP.Exchange))
	return notify.Multi(logNotifier, amqpNotifier)
}
