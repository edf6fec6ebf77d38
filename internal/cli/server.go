// filepath: internal/cli/server.go
package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kpihub/internal/api"
	"kpihub/internal/api/handlers"
	"kpihub/internal/config"
	"kpihub/internal/logging"
	"kpihub/internal/repository"
	"kpihub/internal/services"
	"kpihub/internal/services/auth"
)

// runServer contains the logic to start the HTTP server with graceful shutdown.
func runServer() error {
	// Handle JWT Secret
	if cfg.JWTSecret == "" {
		if cfg.JWT.Secret != "" {
			logging.Log.Info("Using JWT secret loaded from config.toml.")
			cfg.JWTSecret = cfg.JWT.Secret
		} else {
			logging.Log.Info("Generating new random JWT secret...")
			newSecret, err := auth.GenerateSecret()
			if err != nil {
				return fmt.Errorf("failed to generate JWT secret: %w", err)
			}
			cfg.JWT.Secret = newSecret
			cfg.JWTSecret = newSecret
			if err := config.SaveConfig(cfgFile, cfg); err != nil {
				logging.Log.Warnf("Failed to save new JWT secret to %s: %v", cfgFile, err)
			} else {
				logging.Log.Infof("New JWT secret saved to %s.", cfgFile)
			}
		}
	}

	repo, err := repository.NewRepository(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize repository: %w", err)
	}
	defer repo.Close()

	// --- Conditional Auto-migrate on startup ---
	if err := repo.EnsureSchemaBootstrapped(); err != nil {
		logging.Log.Errorf("Failed to bootstrap database: %v", err)
		return err
	}

	if err := repo.ValidateSchema(); err != nil {
		logging.Log.Error("---------------------------------------------------------------")
		logging.Log.Errorf("CRITICAL DATABASE ERROR: %v", err)
		logging.Log.Error("---------------------------------------------------------------")
		return err
	}

	// Service Initialization
	infoService := services.NewInfoService(Version, StartTime)
	userService := services.NewUserService(repo)
	templateService := services.NewTemplateService(repo)
	tokenService := auth.NewTokenService(cfg, userService, repo)

	authMiddleware := auth.NewMiddleware(userService, tokenService)

	if err := userService.EnsureSeedAdmin(cfg); err != nil {
		return fmt.Errorf("failed to handle admin user: %w", err)
	}

	h := handlers.NewHandlers(cfg, infoService, userService, templateService, tokenService)

	r := api.NewRouter(h, authMiddleware)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	// --- Graceful Shutdown Setup ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logging.Log.Infof("Server starting on %s", serverAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-stop
	logging.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Log.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	logging.Log.Info("Server exiting")
	return nil
}
