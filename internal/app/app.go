package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/sava-app/sava/internal/api"
	"github.com/sava-app/sava/internal/config"
	"github.com/sava-app/sava/internal/coordinator"
	"github.com/sava-app/sava/internal/domain"
	"github.com/sava-app/sava/internal/httpserver"
	"github.com/sava-app/sava/internal/httpserver/deps"
	"github.com/sava-app/sava/internal/index"
	"github.com/sava-app/sava/internal/logger"
	"github.com/sava-app/sava/internal/redis"
	"github.com/sava-app/sava/internal/scheduler"
	"github.com/sava-app/sava/internal/sources/rules"
	redisstore "github.com/sava-app/sava/internal/store/redis"
	"github.com/sava-app/sava/internal/thumb"
	"github.com/sava-app/sava/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	collection  *index.Collection
	refresher   *scheduler.Refresher
	warmStarted bool
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Redis is optional: without it the service still works, it just loses
	// the warm-start snapshot across restarts.
	var redisClient *goredis.Client
	if cfg.RedisAddr != "" {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		redisClient = client
		loggerClient.Info("Redis initialized successfully")
	} else {
		loggerClient.Info("Redis not configured, snapshot cache disabled")
	}

	collection := index.NewCollection()
	thumbs := thumb.NewRegistry()

	detector := buildDetector(cfg.RulesFile, loggerClient)

	client := api.New(api.Options{
		BaseURL:        cfg.APIBaseURL,
		Token:          cfg.APIToken,
		RequestTimeout: cfg.RequestTimeout,
		CreateTimeout:  cfg.CreateTimeout,
	}, loggerClient)

	var cache *redisstore.Store
	if redisClient != nil {
		cache = redisstore.NewStore(redisClient)
	}

	coord := coordinator.New(client, collection, cache, thumbs, loggerClient)

	// Seed from the cached snapshot before the first upstream fetch.
	if err := coord.WarmStart(context.Background()); err != nil {
		loggerClient.Warn("failed to warm-start from cache, waiting for upstream fetch",
			logger.Error(err))
	}
	warmStarted := collection.Len() > 0

	refreshTrigger := make(chan struct{}, 1)
	refresher := scheduler.NewRefresher(coord, loggerClient, cfg.RefreshInterval, refreshTrigger)

	d := deps.Deps{
		Logger:    loggerClient,
		StartTime: time.Now(),
		Version:   version.Version,
		Commit:    version.Commit,
		BuildDate: version.BuildDate,
		GoVersion: version.GoVersion,

		Collection:  collection,
		Coordinator: coord,
		Thumbs:      thumbs,
		Detector:    detector,

		RefreshTrigger: refreshTrigger,

		AllowedOrigins: cfg.AllowedOrigins,
		AllowedCIDRS:   cfg.AllowedCIDRS,
		TrustProxy:     cfg.TrustProxy,

		MutationBurst:        cfg.MutationBurst,
		MutationRefillPerMin: cfg.MutationRefillPerMin,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		collection:  collection,
		refresher:   refresher,
		warmStarted: warmStarted,
	}
}

// buildDetector loads optional operator-defined host rules and layers them
// over the built-in ones. A broken rules file is a startup error, not a
// silent fallback.
func buildDetector(rulesFile string, log logger.Logger) *domain.Detector {
	if rulesFile == "" {
		return domain.NewDetector(nil)
	}

	cfg, err := rules.NewLoader(rulesFile).Load()
	if err != nil {
		log.Errorf("Failed to load platform rules from %s: %v", rulesFile, err)
		os.Exit(1)
	}
	extra, err := rules.NewMapper().MapRules(cfg)
	if err != nil {
		log.Errorf("Invalid platform rules in %s: %v", rulesFile, err)
		os.Exit(1)
	}
	log.Info("custom platform rules loaded",
		logger.String("file", rulesFile),
		logger.Int("rules", len(extra)))
	return domain.NewDetector(extra)
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Sava v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Sava %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start the collection refresher (initial fetch + periodic resync).
	if err := a.refresher.Start(ctx, a.warmStarted); err != nil {
		return fmt.Errorf("failed to start collection refresher: %w", err)
	}
	a.logger.Info("collection refresher started",
		logger.Duration("interval", a.cfg.RefreshInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		runErr = err
	}

	a.refresher.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	if runErr != nil {
		return runErr
	}
	a.logger.Info("✅ Sava stopped cleanly")
	return nil
}
