// Package api is the HTTP surface of the producer service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"kafka-bridge/config"
	"kafka-bridge/httpserver"
	"kafka-bridge/kafka"
)

// Sender is the produce facade the handlers call.
type Sender interface {
	SendMessage(ctx context.Context, topic, message string) (kafka.Receipt, error)
}

// Handler serves /produce, /health and the usage index. The profile is the
// immutable value resolved at startup; the sender is the process-wide
// producer facade shared across requests.
type Handler struct {
	sender  Sender
	profile config.Profile
	log     *slog.Logger
}

func NewHandler(sender Sender, profile config.Profile, log *slog.Logger) *Handler {
	return &Handler{
		sender:  sender,
		profile: profile,
		log:     log,
	}
}

// Mount registers the handlers on the server.
func (h *Handler) Mount(server *httpserver.Server) {
	server.Mount("GET /produce", http.HandlerFunc(h.Produce))
	server.Mount("GET /health", http.HandlerFunc(h.Health))
	server.Mount("GET /{$}", http.HandlerFunc(h.Index))
}

type produceResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Topic   string         `json:"topic"`
	Data    kafka.Envelope `json:"data"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Produce sends one message and blocks until the broker confirms delivery or
// the facade's flush timeout elapses.
func (h *Handler) Produce(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	message := r.URL.Query().Get("msg")

	// Missing parameters never reach the transport
	if topic == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Error: "Topic parameter is required"})

		return
	}

	if message == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Error: "Message parameter is required"})

		return
	}

	receipt, err := h.sender.SendMessage(r.Context(), topic, message)

	switch {
	case errors.Is(err, kafka.ErrEmptyTopic):
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Error: "Topic parameter is required"})

		return
	case errors.Is(err, kafka.ErrEmptyMessage):
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Error: "Message parameter is required"})

		return
	case err != nil:
		h.log.Error("produce failed", slog.String("topic", topic), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Success: false,
			Error:   "Failed to produce message: " + err.Error(),
		})

		return
	}

	h.log.Info("message delivered",
		slog.String("topic", receipt.Topic),
		slog.Int("partition", int(receipt.Partition)),
		slog.Int64("offset", receipt.Offset),
	)

	writeJSON(w, http.StatusOK, produceResponse{
		Success: true,
		Message: "Message produced successfully",
		Topic:   receipt.Topic,
		Data:    receipt.Envelope,
	})
}

type healthResponse struct {
	Status      string         `json:"status"`
	Environment string         `json:"environment"`
	KafkaConfig config.Profile `json:"kafka_config"`
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      "healthy",
		Environment: h.profile.Name,
		KafkaConfig: h.profile,
	})
}

type indexResponse struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

func (h *Handler) Index(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, indexResponse{
		Message: "Kafka Producer API",
		Endpoints: map[string]string{
			"produce": "GET /produce?topic=<topic_name>&msg=<message>",
			"health":  "GET /health",
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}
