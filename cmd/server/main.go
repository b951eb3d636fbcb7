package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/tendant/chi-demo/app"

	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/api"
	"github.com/tendant/simple-cms/pkg/simplecms/config"
)

// Config holds process settings that sit outside the content store config
type Config struct {
	EnvPrefix      string   `env:"CMS_ENV_PREFIX" env-default:""`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-separator:","`
	LogLevel       string   `env:"LOG_LEVEL" env-default:"info"`
}

func main() {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		slog.Error("Failed to read configuration", "err", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)})))

	serverConfig, err := config.Load(config.WithEnv(cfg.EnvPrefix))
	if err != nil {
		slog.Error("Failed to load server configuration", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()
	svc, cleanup, err := serverConfig.BuildService(ctx)
	if err != nil {
		slog.Error("Failed to build service", "err", err)
		os.Exit(1)
	}
	defer cleanup()

	handler, err := newHandler(svc, serverConfig, cfg)
	if err != nil {
		slog.Error("Failed to create API handler", "err", err)
		cleanup()
		os.Exit(1)
	}

	server := app.DefaultApp()

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	server.R.Mount("/api", handler.Routes())

	slog.Info("Simple CMS starting",
		"environment", serverConfig.Environment,
		"storage", serverConfig.Storage.Type,
		"seed_data", serverConfig.SeedData)
	if serverConfig.JWTSecret == config.DefaultJWTSecret {
		slog.Warn("Using the default JWT secret; set JWT_SECRET outside development")
	}

	server.Run()
}

func newHandler(svc simplecms.Service, serverConfig *config.ServerConfig, cfg Config) (*api.Handler, error) {
	admin, err := api.DefaultAdmin(serverConfig.AdminUsername, serverConfig.AdminPassword)
	if err != nil {
		return nil, err
	}
	auth, err := api.NewAuth(serverConfig.JWTSecret, admin)
	if err != nil {
		return nil, fmt.Errorf("failed to create token authority: %w", err)
	}

	opts := []api.Option{api.WithMaxUploadBytes(serverConfig.MaxUploadBytes)}
	if len(cfg.AllowedOrigins) > 0 {
		opts = append(opts, api.WithAllowedOrigins(cfg.AllowedOrigins...))
	} else if serverConfig.Environment == "development" {
		opts = append(opts, api.WithAllowedOrigins("*"))
	}
	return api.NewHandler(svc, auth, opts...), nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
