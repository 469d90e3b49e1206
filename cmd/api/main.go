package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/onemeal-app/onemeal-backend/config"
	"github.com/onemeal-app/onemeal-backend/internal/ai"
	"github.com/onemeal-app/onemeal-backend/internal/auth"
	"github.com/onemeal-app/onemeal-backend/internal/bootstrap"
	donservice "github.com/onemeal-app/onemeal-backend/internal/donations/service"
	cronjob "github.com/onemeal-app/onemeal-backend/internal/scoring/cron"
	s3store "github.com/onemeal-app/onemeal-backend/internal/storage/s3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	app, authClient, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}

	store, err := bootstrap.OpenFirestore(ctx, app)
	if err != nil {
		log.Fatalf("firestore: %v", err)
	}
	defer store.Close()

	cache, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer cache.Close()

	aiClient := ai.NewClient(&cfg.AI)

	// Photo archiving is optional; without a bucket the listing still works,
	// records just carry no photo URL.
	var photos donservice.PhotoStore
	if cfg.Storage.Bucket != "" {
		ps, err := s3store.NewPhotoStore(ctx, &cfg.Storage)
		if err != nil {
			log.Fatalf("photo store: %v", err)
		}
		photos = ps
	} else {
		log.Println("PHOTO_BUCKET not set, photo archiving disabled")
	}

	r, scoring := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    "onemeal-backend",
		Version:        cfg.App.Version,
		AuthClient:     authClient,
		Store:          store,
		Cache:          cache,
		AI:             aiClient,
		Photos:         photos,
		AdminEmails:    cfg.Admin.Emails,
		LeaderboardTTL: cfg.App.LeaderboardTTL,
	})

	scheduler := cronjob.NewScheduler(scoring, cfg.App.LeaderboardRefresh)
	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
