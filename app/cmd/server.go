package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Rakhulsr/go-marketplace/app/configs"
	"github.com/Rakhulsr/go-marketplace/app/routes"
	"github.com/Rakhulsr/go-marketplace/app/services"
	"github.com/Rakhulsr/go-marketplace/app/utils/renderer"
	"github.com/Rakhulsr/go-marketplace/app/utils/sessions"
)

const shutdownTimeout = 10 * time.Second

func listenAddr(port string) string {
	if port == "" {
		return ":8080"
	}
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}

// Serve runs the API until ctx is cancelled or the process is interrupted.
func Serve(ctx context.Context, env configs.ENV) error {
	keys, err := configs.LoadSessionKeysFromEnv(env)
	if err != nil {
		return fmt.Errorf("session keys: %w (run the generate-keys command)", err)
	}
	csrfKey, err := configs.CSRFKey(env)
	if err != nil {
		return err
	}

	db, err := configs.OpenConnection()
	if err != nil {
		return fmt.Errorf("DB connection failed: %w", err)
	}
	log.Println("✅ Database connected.")

	rnd := renderer.New(env.IsProduction())
	store := sessions.NewCookieSessionStore(env.IsProduction(), keys.AuthKey, keys.EncKey)
	log.Println("✅ Session store initialized.")

	deps := routes.Deps{
		DB:       db,
		Sessions: store,
		Render:   rnd,
		Pricing:  env.Pricing(),
	}

	mailCfg := services.Config{
		Host:     env.EmailHost,
		Port:     env.EmailPort,
		Username: env.EmailUsername,
		Password: env.EmailPassword,
		From:     env.EmailFrom,
	}
	if mailCfg.Enabled() {
		deps.Notifier = services.NewMailer(mailCfg)
		log.Printf("✅ Order confirmation emails enabled via %s:%s", mailCfg.Host, mailCfg.Port)
	}

	var handler http.Handler = routes.NewRouter(deps)
	if csrfKey != nil {
		handler = routes.WithCSRF(handler, rnd, csrfKey, env.IsProduction())
		log.Println("✅ CSRF protection enabled.")
	}

	server := &http.Server{
		Addr:              listenAddr(env.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("Server stopped.")
	return nil
}
