package kafka

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"

	"github.com/salescope/sales-backend/database"
	perfevents "github.com/salescope/sales-backend/events/modules/performances"
	"github.com/salescope/sales-backend/internal/conf"
	"github.com/salescope/sales-backend/util"
)

// RunEventProcessor consumes performance import events and applies them.
// Imports arriving by Kafka and by the REST endpoint run through the same
// collection-replace statement, so redelivery is safe.
func RunEventProcessor(ctx context.Context, db database.DBConnection, settings conf.KafkaSettings) error {
	log := database.Logger().Sugar()

	brokers := settings.Brokers
	if len(brokers) == 0 {
		brokers = []string{"localhost:9092"}
	}

	// SASL/TLS only when credentials are provided; plain dialer for local
	// development.
	username := util.GetEnvDefault("KAFKA_API_KEY", "")
	password := util.GetEnvDefault("KAFKA_API_SECRET", "")

	var dialer *kafka.Dialer
	if username != "" && password != "" {
		dialer = &kafka.Dialer{
			Timeout:       10 * time.Second,
			DualStack:     true,
			SASLMechanism: plain.Mechanism{Username: username, Password: password},
			TLS:           &tls.Config{},
		}
	} else {
		dialer = &kafka.Dialer{
			Timeout:   10 * time.Second,
			DualStack: true,
		}
	}

	var conn *kafka.Conn
	var err error
	for i := 1; i <= 3; i++ {
		log.Infof("Kafka connection attempt %d/3...", i)
		conn, err = dialer.DialContext(ctx, "tcp", brokers[0])
		if err == nil {
			conn.Close()
			break
		}
		if i < 3 {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		return err
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  "sales-backend-worker",
		Topic:    settings.ImportTopic,
		MaxBytes: 10e6,
		Dialer:   dialer,
	})

	go func() {
		defer reader.Close()

		log.Info("Kafka event processor started, listening for import events")

		for {
			select {
			case <-ctx.Done():
				return
			default:
				msg, err := reader.ReadMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					continue
				}
				if err := perfevents.HandleImportRequested(ctx, msg.Value, db); err != nil {
					log.Warnf("Import event failed: %v", err)
				}
			}
		}
	}()

	return nil
}
