package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"reasonchat/backend/internal/api"
	"reasonchat/backend/internal/config"
	"reasonchat/backend/internal/database"
	"reasonchat/backend/internal/history"
	"reasonchat/backend/internal/interfaces"
	"reasonchat/backend/internal/llm"
	"reasonchat/backend/internal/repository"
	"reasonchat/backend/internal/service"
)

var (
	_ interfaces.HistoryService = (*history.Store)(nil)
	_ interfaces.ChatService    = (*service.ChatService)(nil)
	_ interfaces.ModelService   = (*service.ModelService)(nil)
)

// App holds the wired server and the resources it must release.
type App struct {
	DB     *sql.DB
	Redis  *redis.Client
	Store  *history.Store
	Server *http.Server
}

func Run() int {
	cfg, v, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)
	logConfigSource(v)

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", cfg.AppPort, "store", cfg.StoreDriver)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			slog.Error("Server failed", "error", err)
			return 1
		}
	case <-ctx.Done():
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
			return 1
		}
	}

	return 0
}

// OpenHistory connects the configured store and loads the persisted
// history. The returned App has no server; callers must Close it.
func OpenHistory(cfg *config.Config) (*App, error) {
	app := &App{}

	repo, err := app.openRepository(cfg)
	if err != nil {
		app.Close()
		return nil, err
	}

	store := history.NewStore(repo, history.Options{
		Namespace:    cfg.HistoryNamespace,
		MaxPersisted: cfg.MaxPersistedSessions,
		DefaultModel: cfg.DefaultModel,
	})
	if err := store.Load(context.Background()); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	app.Store = store

	return app, nil
}

// NewApp opens the history and builds the HTTP server around it.
func NewApp(cfg *config.Config) (*App, error) {
	app, err := OpenHistory(cfg)
	if err != nil {
		return nil, err
	}
	store := app.Store

	if cfg.OpenAIAPIKey == "" {
		slog.Warn("OPENAI_API_KEY is not set; model requests will be rejected upstream")
	}
	provider := llm.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)

	chatService := service.NewChatService(store, provider, service.ModelSettings{
		UseReasoningModel: cfg.UseReasoningModel,
		BaseModel:         cfg.BaseModel,
		FallbackModel:     cfg.FallbackModel,
		AutoTitle:         cfg.AutoTitle,
	})
	modelService := service.NewModelService(provider)

	router := api.NewRouter(api.Handlers{
		Chat:    api.NewChatHandler(chatService, store, cfg.ChatTimeout),
		Session: api.NewSessionHandler(store),
		History: api.NewHistoryHandler(store),
		Model:   api.NewModelHandler(modelService),
		Limiter: api.NewIPRateLimiter(cfg.ChatRateLimit, cfg.ChatRateBurst),
	})

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for streaming endpoints
		IdleTimeout:       120 * time.Second,
	}

	return app, nil
}

func (a *App) openRepository(cfg *config.Config) (repository.StateRepository, error) {
	switch strings.ToLower(cfg.StoreDriver) {
	case "", "sqlite":
		db, err := database.InitDB(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.DB = db
		slog.Info("Successfully connected to SQLite database.", "path", cfg.DatabasePath)
		return repository.NewSQLiteRepository(db), nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		a.Redis = rdb
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		slog.Info("Successfully connected to Redis.", "addr", cfg.RedisAddr)
		return repository.NewRedisRepository(rdb), nil
	case "memory":
		slog.Warn("Using in-memory history store; sessions are lost on restart")
		return repository.NewMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

// Close releases the store connections.
func (a *App) Close() {
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
		a.DB = nil
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			slog.Error("Failed to close redis connection", "error", err)
		}
		a.Redis = nil
	}
}

func logConfigSource(v *viper.Viper) {
	configFileUsed := v.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
