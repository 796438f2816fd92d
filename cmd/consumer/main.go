package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"kafka-bridge/config"
	"kafka-bridge/kafka"
	"kafka-bridge/server"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: consumer <topic_name>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Example:")
	fmt.Fprintln(os.Stderr, "  consumer payments")
	fmt.Fprintln(os.Stderr, "  consumer orders")
	fmt.Fprintln(os.Stderr, "  consumer logs")
}

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)

	args := os.Args[1:]
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		usage()
		os.Exit(1)
	}

	topic := args[0]
	profile := config.Load()

	printer := kafka.NewPrinter(os.Stdout)

	consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{ //nolint:exhaustruct
		Profile: profile,
		Topic:   topic,
	}, printer)
	if err != nil {
		log.Error("create consumer", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("consumer starting",
		"topic", topic,
		"environment", profile.Name,
		"brokers", profile.Brokers,
	)

	fmt.Printf("Consumer started, listening to topic %q\n", topic)
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println(strings.Repeat("-", 60))

	if err := server.New(consumer).Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("consumer error", "err", err)
		os.Exit(1)
	}

	fmt.Printf("\nConsumer stopped. Total messages consumed: %d\n", printer.Count())
}
