package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hazadus/go-vinyl/internal/bridge"
	"github.com/hazadus/go-vinyl/internal/web"
)

// shutdownTimeout - сколько ждать завершения запросов при остановке
const shutdownTimeout = 5 * time.Second

// createServeCommand создает команду serve с привязкой к экземпляру приложения
func (app *Application) createServeCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the host with the HTTP command bridge and the HTML gallery",
		Long: `Run find_files, play_file and pause_play in this process and accept them over HTTP
at POST /invoke/:command. The cover gallery is served at /.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.serve(ctx)
		},
	}
}

func (app *Application) serve(ctx context.Context) error {
	log := app.logger()

	// serve сам является хостом, host_url здесь не используется
	h, err := app.localHost()
	if err != nil {
		return err
	}

	view, err := app.newView()
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	router := bridge.NewRouter(log)
	bridge.NewServer(h, log).RegisterRoutes(router)
	if err := web.NewGallery(view, log).RegisterRoutes(router); err != nil {
		return err
	}

	// Галерея монтируется один раз: библиотека загружается при старте
	go func() {
		if err := view.Load(ctx); err != nil {
			log.Error("библиотека не загружена", zap.Error(err))
		}
	}()

	server := &http.Server{
		Addr:              app.Config.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	fmt.Printf("🚀 Сервер запущен: http://%s\n", app.Config.ListenAddr)
	log.Info("сервер запущен", zap.String("addr", app.Config.ListenAddr))

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ошибка сервера: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка остановки сервера: %w", err)
	}
	view.Wait()
	fmt.Println("👋 Сервер остановлен")
	return nil
}
