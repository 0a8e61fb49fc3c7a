package main

import (
	"context"
	"log"

	"github.com/salescope/sales-backend/database"
	"github.com/salescope/sales-backend/internal/api"
	"github.com/salescope/sales-backend/internal/conf"
	"github.com/salescope/sales-backend/internal/kafka"
	"github.com/salescope/sales-backend/restapi/modules/auth"
)

func main() {
	settings, err := conf.Load()
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	auth.SetJWTSecret(settings.JWTSecret)

	db := database.InitializeDatabase()

	if settings.Kafka.Enabled {
		if err := kafka.RunEventProcessor(context.Background(), db, settings.Kafka); err != nil {
			database.Logger().Sugar().Warnf("Kafka event processor not started: %v", err)
		}
	}

	app := api.NewFiberApp(db, settings)

	log.Printf("Starting server on port %s", settings.Port)
	if err := app.Listen(":" + settings.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
