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

	intconfig "dispatchapi/internal/config"
	router "dispatchapi/internal/http"
	"dispatchapi/internal/http/handlers"
	"dispatchapi/internal/paging"
	"dispatchapi/internal/utils"
	"dispatchapi/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cfgFile string

func main() {
	root := &cobra.Command{
		Use:           "dispatchapi",
		Short:         "Public REST API for the dispatch paging system",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./config.toml)")
	intconfig.BindFlags(root)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(ctx context.Context) error {
	env, err := intconfig.LoadEnv(cfgFile)
	if err != nil {
		return err
	}

	logger, err := utils.InitLogger(env.Log.Environment, env.Log.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if env.Server.GinMode != "" {
		gin.SetMode(env.Server.GinMode)
	}

	if _, err := intconfig.ConnectDB(ctx, env); err != nil {
		return err
	}
	defer intconfig.CloseDB()

	handlers.Configure(handlers.Options{
		Codec:        paging.NewCodec(env.Pagination.Secret),
		DefaultLimit: env.Pagination.DefaultLimit,
		MaxLimit:     env.Pagination.MaxLimit,
		Version:      env.App.Version,
	})
	validation.RegisterGin()

	srv := &http.Server{
		Addr:              env.Server.Addr,
		Handler:           router.NewRouter(env),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", env.Server.Addr), zap.String("version", env.App.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
