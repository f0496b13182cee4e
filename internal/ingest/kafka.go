// README: Kafka consumer feeding trip lifecycle events into the metrics engine.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/config"
	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/modules/metrics"
	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/telemetry"
	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/types"
)

// conflictRetries bounds replays of an event that keeps losing the version
// race. Each replay reruns the full read-recompute-write cycle, which is safe
// because recomputation is side-effect-free.
const conflictRetries = 5

// TripEvent is the wire envelope produced by the trip/dispatch services.
type TripEvent struct {
	EventID  string `json:"event_id"`
	Type     string `json:"event_type"`
	DriverID string `json:"driver_id"`
	Reason   string `json:"reason,omitempty"`
}

// StartKafka consumes trip events until ctx is cancelled. No-op when the
// Kafka ingest is disabled in config.
func StartKafka(ctx context.Context, cfg config.KafkaConfig, svc *metrics.Service) {
	if !cfg.Enabled {
		log.Printf("kafka ingest disabled")
		return
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: 1e3,
		MaxBytes: 10e6,
	})
	go func() {
		defer reader.Close()
		for {
			m, err := reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("kafka read error: %v", err)
				continue
			}
			var ev TripEvent
			if err := json.Unmarshal(m.Value, &ev); err != nil {
				log.Printf("kafka bad event: %v", err)
				telemetry.IngestErrors.Inc()
				continue
			}
			if err := Apply(ctx, svc, ev); err != nil {
				log.Printf("kafka apply event %s: %v", ev.EventID, err)
				telemetry.IngestErrors.Inc()
			}
		}
	}()
}

// Apply routes one event to the matching engine entry point, replaying the
// whole event on version conflicts.
func Apply(ctx context.Context, svc *metrics.Service, ev TripEvent) error {
	var err error
	for attempt := 0; attempt < conflictRetries; attempt++ {
		switch ev.Type {
		case "trip_requested":
			err = svc.OnTripRequested(ctx, types.ID(ev.DriverID))
		case "trip_accepted":
			err = svc.OnTripAccepted(ctx, types.ID(ev.DriverID))
		case "trip_rejected":
			err = svc.OnTripRejected(ctx, types.ID(ev.DriverID))
		case "trip_cancelled":
			err = svc.OnTripCancelled(ctx, types.ID(ev.DriverID), ev.Reason)
		case "trip_completed":
			err = svc.OnTripCompleted(ctx, types.ID(ev.DriverID))
		default:
			return metrics.ErrBadRequest
		}
		if !errors.Is(err, metrics.ErrConflict) {
			return err
		}
	}
	return err
}
