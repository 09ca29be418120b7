package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"portfolio/api/internal/app"
	"portfolio/api/internal/assets"
	"portfolio/api/internal/authpw"
	"portfolio/api/internal/config"
	"portfolio/api/internal/content"
	"portfolio/api/internal/email"
	"portfolio/api/internal/history"
	"portfolio/api/internal/render"
	"portfolio/api/internal/search"
	"portfolio/api/internal/session"
	"portfolio/api/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	db, err := store.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	if err := store.ApplyMigrations(ctx, db, cfg.MigrationsDir); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	dataStore := store.New(db)
	creds := authpw.NewService(dataStore, cfg.BcryptCost)

	var source content.Source
	if cfg.Backend == config.BackendStrapi {
		log.Printf("Reading content from Strapi at %s", cfg.StrapiURL)
		source = content.NewStrapiSource(cfg.StrapiURL, cfg.HTTPTimeout)
	} else {
		source = content.NewStoreSource(dataStore)
	}
	gateway := content.NewGateway(source, log.Default())

	renderer, err := render.NewRenderer(render.AssetURLRewriter{
		DevBase: cfg.AssetDevBase,
		Dev:     cfg.IsDevelopment(),
	})
	if err != nil {
		log.Fatalf("renderer init failed: %v", err)
	}

	var assetStore *assets.Store
	if strings.TrimSpace(cfg.MinioEndpoint) != "" {
		assetStore, err = assets.New(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioSecure)
		if err != nil {
			log.Fatalf("object store connection failed: %v", err)
		}
	}

	var meiliClient *search.Meili
	if strings.TrimSpace(cfg.MeiliURL) != "" {
		meiliClient = search.NewMeili(cfg.MeiliURL, cfg.MeiliAPIKey)
		defer meiliClient.Close()
	}
	searcher := search.NewService(meiliClient)

	var historySvc *history.Service
	if strings.TrimSpace(cfg.HistoryDir) != "" {
		historySvc = history.New(cfg.HistoryDir)
	}

	mailer := email.NewService(email.Config{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		From:      cfg.SMTPFrom,
		FromName:  cfg.SMTPFromName,
		Recipient: cfg.ContactRecipient,
	})
	if !mailer.IsConfigured() {
		log.Printf("SMTP not configured, contact form disabled")
	}

	var sessions session.Store
	if strings.TrimSpace(cfg.RedisURL) != "" {
		log.Printf("Using Redis for session storage")
		redisStore, err := session.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis connection failed: %v", err)
		}
		defer redisStore.Close()
		sessions = redisStore
	} else {
		log.Printf("Using in-memory session storage")
		sessions = session.NewMemoryStore()
	}

	service := app.NewService(cfg, dataStore, gateway, creds, sessions, renderer, assetStore, searcher, historySvc, mailer, log.Default())
	if err := service.Bootstrap(ctx); err != nil {
		log.Printf("WARNING: bootstrap error (will retry on next restart): %v", err)
	}

	httpServer := app.NewHTTPServer(service, cfg.CORSOrigin)
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Portfolio API listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
