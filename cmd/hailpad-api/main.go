// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hailpad/internal/config"
	httptransport "hailpad/internal/http"
	"hailpad/internal/infra"
	"hailpad/internal/launcher"
	"hailpad/internal/maps"
	"hailpad/internal/modules/dispatch"
	"hailpad/internal/modules/registry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	placesSvc, err := maps.NewPlacesService(cfg.Maps.APIKey)
	if err != nil {
		log.Fatalf("maps init: %v", err)
	}

	registrySvc := registry.NewService(registry.NewRedisStore(redisClient))
	registrySvc.Load(ctx)

	events := dispatch.NewPGStore(dbPool)
	if err := events.EnsureSchema(ctx); err != nil {
		log.Fatalf("launch event schema: %v", err)
	}

	platform := dispatch.Platform(cfg.Platform)
	var launch dispatch.Launcher
	if platform == dispatch.PlatformNative {
		launch = launcher.NewDesktop()
	} else {
		launch = launcher.NewNoop()
	}
	dispatchSvc := dispatch.NewService(platform, launch, dispatch.ClientPrompts{}, events, cfg.ConfirmDelay)

	// Other live views of the registry converge by re-reading after a write.
	regEvents, cancelSub := registrySvc.Subscribe()
	defer cancelSub()
	go func() {
		for e := range regEvents {
			registrySvc.Load(ctx)
			log.Printf("registry changed: %s %s", e.Kind, e.ProviderID)
		}
	}()

	router := httptransport.NewRouter(registrySvc, dispatchSvc, placesSvc)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("hailpad-api listening on %s (platform=%s)", cfg.HTTP.Addr, platform)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
