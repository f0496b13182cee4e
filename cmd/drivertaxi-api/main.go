// README: Entry point; loads config, wires services, starts HTTP server and Kafka ingest.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/clock"
	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/config"
	httptransport "github.com/Hasanakramprog/Drivertaxi-sub000/internal/http"
	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/infra"
	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/ingest"
	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/modules/dispatch"
	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/modules/driver"
	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/modules/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var verifier infra.TokenVerifier
	if cfg.Firebase.ProjectID != "" {
		verifier, err = infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			log.Fatalf("firebase init: %v", err)
		}
	} else {
		log.Printf("firebase auth disabled (DT_FIREBASE_PROJECT_ID not set)")
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	driverStore := driver.NewStore(dbPool)
	driverSvc := driver.NewService(driverStore)

	dispatchStore := dispatch.NewStore(redisClient)
	dispatchSvc := dispatch.NewService(dispatchStore)

	metricsStore := metrics.NewPostgresStore(dbPool)
	metricsSvc := metrics.NewService(metricsStore, driverSvc, dispatchSvc, clock.Real())

	ingest.StartKafka(ctx, cfg.Kafka, metricsSvc)

	handler := httptransport.NewRouter(metricsSvc, driverSvc, dispatchSvc, verifier)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
