package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/user-identity/internal/cache"
	"github.com/magabrotheeeer/user-identity/internal/config"
	"github.com/magabrotheeeer/user-identity/internal/lib/avatar"
	"github.com/magabrotheeeer/user-identity/internal/lib/jwt"
	"github.com/magabrotheeeer/user-identity/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/user-identity/internal/lib/sl"
	"github.com/magabrotheeeer/user-identity/internal/metrics"
	"github.com/magabrotheeeer/user-identity/internal/migrations"
	"github.com/magabrotheeeer/user-identity/internal/services/account"
	"github.com/magabrotheeeer/user-identity/internal/services/notifier"
	"github.com/magabrotheeeer/user-identity/internal/storage"
	"github.com/magabrotheeeer/user-identity/internal/storage/inmemory"
)

// shutdownTimeout — сколько ждать завершения активных запросов при остановке.
const shutdownTimeout = 15 * time.Second

// App — HTTP-сервер сервиса учётных записей и его ресурсы.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	notifier *notifier.Notifier
	closers  []func() error
}

// Options позволяют подменить реестр метрик. Нулевое значение использует глобальный реестр.
type Options struct {
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// New создаёт приложение: подключает хранилище, кэш, брокер и собирает маршруты.
// Пустая строка подключения к PostgreSQL включает хранилище в памяти,
// пустой адрес Redis отключает кэш, пустой URL RabbitMQ пишет уведомления в лог.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) (app *App, err error) {
	const op = "identity.New"

	app = &App{logger: logger}
	defer func() {
		if err != nil {
			app.close()
		}
	}()

	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	repo, err := app.initRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var accountCache account.Cache
	if cfg.AddressRedis != "" {
		cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.closers = append(app.closers, cacheRedis.Close)
		accountCache = cacheRedis
	} else {
		logger.Warn("redis address is empty, account cache is disabled")
	}

	publisher, err := app.initPublisher(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tokens, err := jwt.NewJWTMaker(cfg.JWTSecretKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	processor, err := avatar.NewProcessor(cfg.Avatars.Dir, cfg.Avatars.TmpDir, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	collector := metrics.NewCollector(opts.Registerer)
	app.notifier = notifier.New(publisher, logger, collector, cfg.PublicURL)

	accounts := account.New(account.Deps{
		Log:      logger,
		Repo:     repo,
		Cache:    accountCache,
		CacheTTL: cfg.AccountTTL,
		Tokens:   tokens,
		Notifier: app.notifier,
		Avatars:  processor,
		Metrics:  collector,
	})

	router := chi.NewRouter()
	RegisterRoutes(router, logger, accounts, RouteOptions{
		AvatarsDir:    cfg.Avatars.Dir,
		MaxUploadSize: cfg.Avatars.MaxUploadSize,
		Gatherer:      opts.Gatherer,
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

// Handler возвращает корневой обработчик. Используется в тестах.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run запускает HTTP-сервер и останавливает его при отмене ctx.
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
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) initRepository(cfg *config.Config) (account.Repository, error) {
	if cfg.StorageConnectionString == "" {
		a.logger.Warn("storage connection string is empty, using in-memory storage")
		return inmemory.New(), nil
	}

	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, db.Close)

	version, err := migrations.Run(db.DB, cfg.MigrationsPath)
	if err != nil {
		return nil, err
	}
	a.logger.Info("database schema is up to date", slog.Uint64("version", uint64(version)))
	return db, nil
}

func (a *App) initPublisher(cfg *config.Config) (notifier.Publisher, error) {
	if cfg.RabbitMQ.URL == "" {
		a.logger.Warn("rabbitmq url is empty, verification messages will only be logged")
		return notifier.NewLogPublisher(a.logger), nil
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.MaxRetries, cfg.RabbitMQ.RetryDelay)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, conn.Close)

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.Bindings())
	if err != nil {
		return nil, err
	}
	// Канал закрывается раньше соединения.
	a.closers = append(a.closers, ch.Close)
	return rabbitmq.NewPublisher(ch), nil
}

// close дожидается отправки уведомлений и освобождает ресурсы в обратном порядке.
func (a *App) close() {
	if a.notifier != nil {
		a.notifier.Wait()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Error("failed to release resource", sl.Err(err))
		}
	}
	a.closers = nil
}
