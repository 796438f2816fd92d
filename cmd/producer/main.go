package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"kafka-bridge/api"
	"kafka-bridge/config"
	"kafka-bridge/httpserver"
	"kafka-bridge/kafka"
	"kafka-bridge/server"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	profile := config.Load()

	// One transport handle per process lifetime, shared by all requests
	client, err := kafka.NewClient(profile, "kafka-bridge-producer")
	if err != nil {
		log.Error("create kafka client", "err", err)
		os.Exit(1)
	}
	defer client.Close()

	producer := kafka.NewProducer(client, profile.Name)
	handler := api.NewHandler(producer, profile, log)

	srv := httpserver.NewServer(httpserver.Config{ //nolint:exhaustruct
		Port: os.Getenv("PORT"),
	})
	handler.Mount(srv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("producer API started",
		"environment", profile.Name,
		"brokers", profile.Brokers,
		"addr", srv.Address(),
	)

	if err := server.New(srv).Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("server error", "err", err)
		os.Exit(1)
	}

	log.Info("producer API stopped")
}
