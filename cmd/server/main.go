package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sumire/notices/internal/config"
	"github.com/sumire/notices/internal/handler"
	"github.com/sumire/notices/internal/logger"
	"github.com/sumire/notices/internal/repository/mongodb"
	"github.com/sumire/notices/internal/repository/postgres"
	"github.com/sumire/notices/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

// userStore is what both backends' user repositories provide.
type userStore interface {
	service.UserStore
	service.MemberDirectory
}

// topicStore is what both backends' topic repositories provide.
type topicStore interface {
	service.TopicStore
	service.TopicFinder
}

type stores struct {
	users         userStore
	topics        topicStore
	notifications service.NotificationStore
	health        handler.Pinger
	close         func(ctx context.Context) error
}

func openStores(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*stores, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		log.Info("database connected", "driver", cfg.Driver)

		if cfg.AutoMigrate {
			if err := postgres.Migrate(ctx, db.DB); err != nil {
				_ = db.Close()
				return nil, err
			}
			log.Info("database migrated")
		}

		users := postgres.NewUserRepository(db)
		return &stores{
			users:         users,
			topics:        postgres.NewTopicRepository(db),
			notifications: postgres.NewNotificationRepository(db),
			health:        users,
			close:         func(context.Context) error { return db.Close() },
		}, nil

	case config.DriverMongoDB:
		store, err := mongodb.Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		log.Info("database connected", "driver", cfg.Driver, "database", cfg.MongoDatabase)

		db := store.Database()
		return &stores{
			users:         mongodb.NewUserRepository(db),
			topics:        mongodb.NewTopicRepository(db),
			notifications: mongodb.NewNotificationRepository(db),
			health:        store,
			close:         store.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.close(context.Background()); err != nil {
			log.Error("close store", "error", err)
		}
	}()

	authSvc := service.NewAuthService(log, st.users, service.AuthConfig{
		JWTSecret:          cfg.Auth.JWTSecret,
		JWTIssuer:          cfg.Auth.JWTIssuer,
		AccessTokenTTL:     cfg.Auth.AccessTokenTTL,
		RefreshTokenTTL:    cfg.Auth.RefreshTokenTTL,
		BcryptCost:         cfg.Auth.BcryptCost,
		AdminEmails:        cfg.Auth.AdminEmails,
		GoogleClientID:     cfg.Auth.GoogleClientID,
		GoogleClientSecret: cfg.Auth.GoogleClientSecret,
		GitHubClientID:     cfg.Auth.GitHubClientID,
		GitHubClientSecret: cfg.Auth.GitHubClientSecret,
		OAuthRedirectBase:  cfg.Auth.OAuthRedirectBase,
	})
	topicSvc := service.NewTopicService(log, st.topics, st.users)
	notificationSvc := service.NewNotificationService(log, st.notifications, st.topics)

	e := handler.NewEcho()
	e.Use(middleware.RequestID())
	e.Use(handler.RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderContentType},
		ExposeHeaders:    []string{echo.HeaderXRequestID},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	handler.Register(e, handler.Handlers{
		Health:        handler.NewHealthHandler(st.health, cfg.Database.Driver),
		Users:         handler.NewUserHandler(authSvc),
		Topics:        handler.NewTopicHandler(topicSvc),
		Notifications: handler.NewNotificationHandler(notificationSvc),
	}, authSvc)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      e,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", srv.Addr, "driver", cfg.Database.Driver,
			"google_oauth", cfg.Auth.GoogleEnabled(), "github_oauth", cfg.Auth.GitHubEnabled())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info("server stopped gracefully")
	return nil
}
