package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Govind-619/Sodfaa/blob"
	"github.com/Govind-619/Sodfaa/config"
	"github.com/Govind-619/Sodfaa/controllers"
	"github.com/Govind-619/Sodfaa/models"
	"github.com/Govind-619/Sodfaa/routes"
	"github.com/Govind-619/Sodfaa/stores"
	"github.com/Govind-619/Sodfaa/utils"
	"golang.org/x/sync/errgroup"
)

const tokenPurgeInterval = time.Hour

func main() {
	// Initialize logger
	if err := utils.InitLogger(utils.LogConfig{
		Level:       os.Getenv("LOG_LEVEL"),
		Environment: os.Getenv("ENV"),
		ServiceName: "sodfaa",
	}); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer utils.SyncLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	gw, err := config.InitGateway(cfg)
	if err != nil {
		log.Fatal("Failed to initialize gateway:", err)
	}
	defer gw.Close()

	h, err := controllers.New(cfg, gw, blob.NewLocalStore(cfg.UploadDir, "/uploads"))
	if err != nil {
		log.Fatal("Failed to initialize controllers:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := stores.NewCleanupScheduler(h.Offers, stores.DefaultCleanupInterval)
	if cfg.MailEnabled() && cfg.AdminEmail != "" {
		mailer := utils.NewMailer(utils.EmailConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
		scheduler.OnCleanup = func(removed []models.Offer) {
			if err := mailer.SendExpiredOffersDigest(cfg.AdminEmail, removed, time.Now()); err != nil {
				utils.LogWarn("Failed to send expired offers digest: %v", err)
			}
		}
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := routes.SetupRouter(h)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		utils.LogInfo("Server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		purgeRevokedTokens(gctx, h.Tokens)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		utils.LogInfo("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		utils.LogError("Server stopped: %v", err)
	}
}

func purgeRevokedTokens(ctx context.Context, tokens *stores.TokenStore) {
	ticker := time.NewTicker(tokenPurgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := tokens.PurgeExpired(ctx, now)
			if err != nil {
				utils.LogWarn("Failed to purge revoked tokens: %v", err)
				continue
			}
			if n > 0 {
				utils.LogDebug("Purged %d expired revoked tokens", n)
			}
		}
	}
}
