package acserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/acnode-server/internal/cache"
	"github.com/magabrotheeeer/acnode-server/internal/config"
	"github.com/magabrotheeeer/acnode-server/internal/http/guard"
	"github.com/magabrotheeeer/acnode-server/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/acnode-server/internal/lib/sl"
	"github.com/magabrotheeeer/acnode-server/internal/migrations"
	"github.com/magabrotheeeer/acnode-server/internal/services/audit"
	"github.com/magabrotheeeer/acnode-server/internal/services/delegation"
	"github.com/magabrotheeeer/acnode-server/internal/services/deviceauth"
	"github.com/magabrotheeeer/acnode-server/internal/services/permission"
	"github.com/magabrotheeeer/acnode-server/internal/services/summary"
	"github.com/magabrotheeeer/acnode-server/internal/services/toolstate"
	"github.com/magabrotheeeer/acnode-server/internal/storage"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
	conn   *amqp.Connection
	ch     *amqp.Channel
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	app := &App{logger: logger, db: db}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		app.close()
		return nil, err
	}

	var summaryCache summary.Cache
	if cfg.AddressRedis != "" {
		app.cache, err = cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			app.close()
			return nil, err
		}
		summaryCache = app.cache
	} else {
		logger.Warn("redis address is not set, summary cache disabled")
	}

	var publisher audit.Publisher
	if cfg.RabbitMQ.Enabled {
		app.conn, err = rabbitmq.Connect(logger, cfg.RabbitMQ.URL, cfg.RabbitMQ.MaxRetries, cfg.RabbitMQ.RetryDelay)
		if err != nil {
			app.close()
			return nil, err
		}
		app.ch, err = rabbitmq.SetupChannel(app.conn, rabbitmq.AuditExchange, rabbitmq.GetAuditQueues())
		if err != nil {
			app.close()
			return nil, err
		}
		publisher = rabbitmq.NewPublisher(app.ch, rabbitmq.AuditExchange)
	}

	resolver := permission.NewResolver(db)
	summaryService := summary.NewService(db, summaryCache, cfg.SummaryTTL, logger)
	engine := toolstate.New(db, resolver, audit.New(logger, publisher), summaryService, logger)

	ipRange, err := guard.NewIPRange(cfg.NodeNetworks, logger)
	if err != nil {
		app.close()
		return nil, err
	}
	if len(cfg.NodeNetworks) == 0 {
		logger.Warn("node networks are not configured, node requests accepted from any address")
	}
	if cfg.APIKey == "" {
		logger.Warn("api key is not configured, all api requests will be rejected")
	}

	guards := Guards{
		Node: guard.Node(
			guard.NewRateLimit(cfg.RequestsPerSecond, cfg.Burst, logger),
			guard.NewDeviceSecret(deviceauth.New(db, logger), cfg.SecretHeader, logger),
			ipRange,
		),
		API: guard.API(guard.NewAPIKey(cfg.APIKey, cfg.APIKeyHeader, logger)),
	}
	services := Services{
		State:      engine,
		Resolver:   resolver,
		Delegation: delegation.NewService(db, resolver, logger),
		Summary:    summaryService,
		DB:         db.DB,
	}
	if app.cache != nil {
		services.Cache = app.cache
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, services, guards)

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

// close освобождает открытые подключения в обратном порядке.
func (a *App) close() {
	if a.ch != nil {
		if err := a.ch.Close(); err != nil {
			a.logger.Error("failed to close channel", sl.Err(err))
		}
	}
	if a.conn != nil {
		if err := a.conn.Close(); err != nil {
			a.logger.Error("failed to close connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("failed to close redis", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
}
