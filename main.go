package main

import (
	"context"
	"log"
	"net/http"

	"dinesync/config"
	httpapi "dinesync/internal/api/http"
	"dinesync/internal/client"
	"dinesync/internal/connectivity"
	"dinesync/internal/qr"
	"dinesync/internal/service"
	"dinesync/internal/session"
	"dinesync/internal/storage"
)

func main() {
	settings := config.Load()

	db := config.MustInitPostgres()
	defer db.Close()

	cache := storage.NewPostgresCache(db)
	if err := cache.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	rdb := config.MustInitRedis()
	defer rdb.Close()

	backend := client.New(settings.BackendURL, &http.Client{}, settings.RequestTimeout)

	var publisher service.EventPublisher
	if settings.KafkaBroker != "" {
		writer := config.NewKafkaWriter(settings.KafkaBroker, settings.KafkaTopic)
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
	} else {
		log.Println("[dinesync] KAFKA_BROKER not set, order events disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := session.NewStore(storage.NewRedisSnapshots(rdb, "session"))
	store.Restore(ctx)

	monitor := connectivity.NewMonitor(backend.Healthy(ctx))
	store.SetOnline(monitor.Online())

	menuSvc := service.NewMenuService(backend, cache)
	orderSvc := service.NewOrderService(backend, cache, monitor, publisher)
	paymentSvc := service.NewPaymentService(backend, cache)

	// Reconnection drains the outbox; the session store mirrors the flag
	// for the UI.
	monitor.Subscribe(func(online bool) {
		store.SetOnline(online)
		if !online {
			return
		}
		go func() {
			if _, err := orderSvc.ReplayQueued(ctx); err != nil {
				log.Printf("[dinesync] outbox replay incomplete: %v", err)
			}
		}()
	})
	go monitor.Run(ctx, backend.Healthy, settings.ProbeInterval)

	handler := httpapi.NewHandler(store, menuSvc, orderSvc, paymentSvc,
		qr.DefaultGenerator{BaseURL: settings.PublicBaseURL})
	httpapi.StartServer(settings.ListenAddr, httpapi.NewRouter(handler))
}
