// main.go - Entry point for the health tracking backend

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"healthtrack-backend/config"
	"healthtrack-backend/creem"
	"healthtrack-backend/database"
	"healthtrack-backend/logger"
	"healthtrack-backend/middleware"
	"healthtrack-backend/realtime"
	"healthtrack-backend/router"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "healthtrack",
	Short: "Health tracking backend-for-frontend",
	Long: `REST API over users, body measurements, diseases and medications,
authenticated with Supabase access tokens, with Creem.io checkout support.`,
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server (default)",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update database tables and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		log, err := logger.New(cfg.Env, cfg.LogLevel)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck
		if err := database.Connect(cfg.DSN()); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		defer database.Close() //nolint:errcheck
		log.Info("migrations applied", zap.Bool("postgres", database.IsPostgres(cfg.DSN())))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.SupabaseJWTSecret == "" {
		log.Warn("SUPABASE_JWT_SECRET not set; protected routes will answer 500")
	}

	if err := database.Connect(cfg.DSN()); err != nil {
		return fmt.Errorf("DB connection error: %w", err)
	}
	defer database.Close() //nolint:errcheck

	stop := make(chan struct{})
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, log)
	limiter.StartCleanup(10*time.Minute, stop)

	r := router.SetupRouter(cfg, router.Deps{
		Log:         log,
		Hub:         realtime.NewHub(log),
		Creem:       creem.NewClient(cfg.CreemAPIURL, cfg.CreemAPIKey, cfg.HTTPTimeout),
		RateLimiter: limiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		close(stop)
		return err
	case s := <-sig:
		log.Info("shutting down", zap.String("signal", s.String()))
	}
	close(stop)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
