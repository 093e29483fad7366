package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-co-op/gocron"
	"github.com/prezlink/prezlink/internal/auth"
	"github.com/prezlink/prezlink/internal/cache"
	"github.com/prezlink/prezlink/internal/chizap"
	"github.com/prezlink/prezlink/internal/config"
	"github.com/prezlink/prezlink/internal/cron"
	"github.com/prezlink/prezlink/internal/database"
	"github.com/prezlink/prezlink/internal/logging"
	"github.com/prezlink/prezlink/internal/middleware"
	"github.com/prezlink/prezlink/pkg/controller"
	"github.com/prezlink/prezlink/pkg/repository"
	"github.com/prezlink/prezlink/pkg/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

func NewRun() *cobra.Command {
	var cfg config.ServerCmdConfig
	loader := config.NewConfigLoader()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start Prezlink Server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApplication(cmd.Context(), &cfg)
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loader.InitializeConfig(cmd); err != nil {
				return err
			}
			if err := loader.Load(&cfg); err != nil {
				return err
			}
			return loader.Validate(&cfg)
		},
	}
	config.AddServerFlags(cmd.Flags(), &cfg)
	return cmd
}

func runApplication(ctx context.Context, conf *config.ServerCmdConfig) error {
	lvl, err := zapcore.ParseLevel(conf.Log.Level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	logging.SetConfig(&logging.Config{
		Level:    lvl,
		FilePath: conf.Log.File,
	})

	lg := logging.DefaultLogger().Sugar()

	defer lg.Sync()

	cacher := cache.NewCache(ctx, &conf.Cache)

	db, err := database.NewDatabase(&conf.DB, lg)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	if err := database.MigrateDB(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	shares := repository.NewShareRepository(db)

	scheduler := gocron.NewScheduler(time.UTC)
	cron.StartCronJobs(ctx, scheduler, shares, conf, logging.DefaultLogger())

	srv := setupServer(conf, db, cacher, shares)

	go func() {
		lg.Infof("Server started at http://localhost:%d", conf.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Errorw("failed to start server", "err", err)
		}
	}()

	<-ctx.Done()

	lg.Info("Shutting down server...")

	scheduler.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), conf.Server.GracefulShutdown)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Errorw("server shutdown failed", "err", err)
	}

	lg.Info("Server stopped")
	return nil
}

func setupServer(cfg *config.ServerCmdConfig, db *gorm.DB, cacher cache.Cacher, shares repository.ShareRepository) *http.Server {

	lg := logging.DefaultLogger()

	presentations := repository.NewPresentationRepository(db, cacher)
	users := repository.NewUserRepository(db, cacher)

	shareSvc := services.NewShareService(shares, presentations, users, &cfg.Share, lg)

	c := controller.NewController(shareSvc)

	mux := chi.NewRouter()

	mux.Use(chimiddleware.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH", "HEAD"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))
	mux.Use(chimiddleware.RealIP)
	mux.Use(middleware.InjectLogger(lg))
	mux.Use(chizap.Chizap(lg, time.RFC3339, true))

	authMiddleware := auth.Middleware(db, cacher, cfg.JWT.Secret)

	mux.Route("/api/shares", func(r chi.Router) {
		// Token lookups are the anonymous bearer-token surface; everything
		// else requires a session.
		r.Get("/token/{token}", c.GetShareByToken)
		r.Post("/token/{token}/redeem", c.RedeemShareToken)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", c.CreateShare)
			r.Get("/shared-with-me", c.ListSharedWithMe)
			r.Get("/presentation/{presentationId}", c.ListShares)
			r.Delete("/presentation/{presentationId}", c.RevokeAllShares)
			r.Get("/access/{presentationId}", c.CheckAccess)
			r.Patch("/{shareId}", c.UpdateShare)
			r.Delete("/{shareId}", c.DeleteShare)
		})
	})

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           mux,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
