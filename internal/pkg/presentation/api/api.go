package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"log/slog"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"

	"github.com/gasdetection/iot-gas-bridge/internal/pkg/infrastructure/state"
	"github.com/gasdetection/iot-gas-bridge/pkg/types"
)

var tracer = otel.Tracer("iot-gas-bridge/api")

// Publisher is the outbound side of the transport, used by the control
// pass-throughs.
//
//go:generate moq -rm -out publisher_mock.go . Publisher
type Publisher interface {
	Publish(topic, payload string) error
	Connected() bool
}

// Dispatcher is the push notification surface exposed through the API.
type Dispatcher interface {
	RegisterToken(ctx context.Context, token string)
	UnregisterToken(ctx context.Context, token string)
	TokenCount() int
	SendToToken(ctx context.Context, token, title, body string, data map[string]string) (string, error)
	SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) (string, error)
	SendToAll(ctx context.Context, title, body string, data map[string]string) (int, int)
}

// SessionCounter reports the number of connected realtime clients.
type SessionCounter interface {
	Count() int
}

var controlNames = []string{"relay1", "relay2", "window", "buzzer"}

var startedAt = time.Now()

func RegisterHandlers(ctx context.Context, router *chi.Mux, store *state.Store, publisher Publisher, dispatcher Dispatcher, sessions SessionCounter, wsHandler http.HandlerFunc, topicPrefix string) error {
	log := logging.GetFromContext(ctx)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Get("/ws", wsHandler)

	router.Route("/api/v0", func(r chi.Router) {
		r.Get("/data", getDataHandler(log, store))
		r.Get("/notifications", getNotificationsHandler(log, store))
		r.Get("/health", healthHandler(log, store, dispatcher, sessions))

		r.Route("/control", func(r chi.Router) {
			r.Post("/{name}", controlSwitchHandler(log, publisher, topicPrefix))
			r.Post("/mode", controlModeHandler(log, publisher, topicPrefix))
			r.Post("/threshold", controlThresholdHandler(log, publisher, topicPrefix))
		})

		r.Route("/tokens", func(r chi.Router) {
			r.Post("/", registerTokenHandler(log, dispatcher))
			r.Delete("/", unregisterTokenHandler(log, dispatcher))
			r.Get("/count", tokenCountHandler(dispatcher))
		})

		r.Post("/notifications/test", testNotificationHandler(log, dispatcher))
	})

	return nil
}

func getDataHandler(log *slog.Logger, store *state.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeSuccess(w, http.StatusOK, store.Snapshot())
	}
}

func getNotificationsHandler(log *slog.Logger, store *state.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 50

		if q := r.URL.Query().Get("limit"); q != "" {
			l, err := strconv.Atoi(q)
			if err != nil {
				writeError(w, http.StatusBadRequest, "limit must be an integer")
				return
			}
			limit = l
		}

		writeSuccess(w, http.StatusOK, store.Notifications(limit))
	}
}

func healthHandler(log *slog.Logger, store *state.Store, dispatcher Dispatcher, sessions SessionCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeSuccess(w, http.StatusOK, map[string]any{
			"mqtt":            store.Snapshot().Connected,
			"websocket":       sessions.Count(),
			"uptime":          int64(time.Since(startedAt).Seconds()),
			"registeredCount": dispatcher.TokenCount(),
		})
	}
}

func controlSwitchHandler(log *slog.Logger, publisher Publisher, topicPrefix string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "control-switch")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, _, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		name := chi.URLParam(r, "name")
		if !lo.Contains(controlNames, name) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("unknown control %s", name))
			return
		}

		var body struct {
			State bool `json:"state"`
		}
		err = json.NewDecoder(r.Body).Decode(&body)
		if err != nil {
			requestLogger.Error("unable to decode control request", "err", err.Error())
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		value := "0"
		if body.State {
			value = "1"
		}

		err = publisher.Publish(fmt.Sprintf("%s/control/%s", topicPrefix, name), value)
		if err != nil {
			requestLogger.Error("unable to publish control message", "control", name, "err", err.Error())
			writeError(w, http.StatusServiceUnavailable, "not connected to device network")
			return
		}

		requestLogger.Info("control state changed", "control", name, "state", body.State)
		writeSuccess(w, http.StatusOK, map[string]bool{"state": body.State})
	}
}

func controlModeHandler(log *slog.Logger, publisher Publisher, topicPrefix string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "control-mode")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, _, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		var body struct {
			Mode string `json:"mode"`
		}
		err = json.NewDecoder(r.Body).Decode(&body)
		if err != nil {
			requestLogger.Error("unable to decode mode request", "err", err.Error())
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		value := "0"
		if body.Mode == types.ModeAuto {
			value = "1"
		}

		err = publisher.Publish(topicPrefix+"/control/mode", value)
		if err != nil {
			requestLogger.Error("unable to publish mode message", "err", err.Error())
			writeError(w, http.StatusServiceUnavailable, "not connected to device network")
			return
		}

		requestLogger.Info("mode changed", "mode", body.Mode)
		writeSuccess(w, http.StatusOK, map[string]string{"mode": body.Mode})
	}
}

func controlThresholdHandler(log *slog.Logger, publisher Publisher, topicPrefix string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "control-threshold")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, _, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		var body struct {
			Threshold int `json:"threshold"`
		}
		err = json.NewDecoder(r.Body).Decode(&body)
		if err != nil {
			requestLogger.Error("unable to decode threshold request", "err", err.Error())
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		// The only validation error visible outside the core, rejected
		// before anything is published.
		if body.Threshold < types.ThresholdMin || body.Threshold > types.ThresholdMax {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("threshold must be between %d and %d", types.ThresholdMin, types.ThresholdMax))
			return
		}

		err = publisher.Publish(topicPrefix+"/control/threshold", strconv.Itoa(body.Threshold))
		if err != nil {
			requestLogger.Error("unable to publish threshold message", "err", err.Error())
			writeError(w, http.StatusServiceUnavailable, "not connected to device network")
			return
		}

		requestLogger.Info("threshold changed", "threshold", body.Threshold)
		writeSuccess(w, http.StatusOK, map[string]int{"threshold": body.Threshold})
	}
}

func registerTokenHandler(log *slog.Logger, dispatcher Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "register-token")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		token, ok := decodeToken(w, r, requestLogger)
		if !ok {
			return
		}

		dispatcher.RegisterToken(ctx, token)
		writeSuccess(w, http.StatusOK, "token registered")
	}
}

func unregisterTokenHandler(log *slog.Logger, dispatcher Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "unregister-token")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		token, ok := decodeToken(w, r, requestLogger)
		if !ok {
			return
		}

		dispatcher.UnregisterToken(ctx, token)
		writeSuccess(w, http.StatusOK, "token unregistered")
	}
}

func tokenCountHandler(dispatcher Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeSuccess(w, http.StatusOK, map[string]int{"count": dispatcher.TokenCount()})
	}
}

func testNotificationHandler(log *slog.Logger, dispatcher Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "test-notification")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		var body struct {
			Title string            `json:"title"`
			Body  string            `json:"body"`
			Token string            `json:"token,omitempty"`
			Topic string            `json:"topic,omitempty"`
			Data  map[string]string `json:"data,omitempty"`
		}
		err = json.NewDecoder(r.Body).Decode(&body)
		if err != nil {
			requestLogger.Error("unable to decode notification request", "err", err.Error())
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if body.Title == "" || body.Body == "" {
			writeError(w, http.StatusBadRequest, "title and body are required")
			return
		}

		var result string

		switch {
		case body.Token != "":
			result, err = dispatcher.SendToToken(ctx, body.Token, body.Title, body.Body, body.Data)
		case body.Topic != "":
			result, err = dispatcher.SendToTopic(ctx, body.Topic, body.Title, body.Body, body.Data)
		default:
			success, failure := dispatcher.SendToAll(ctx, body.Title, body.Body, body.Data)
			result = fmt.Sprintf("sent to all registered devices (success: %d, failure: %d)", success, failure)
		}

		if err != nil {
			requestLogger.Error("failed to send test notification", "err", err.Error())
			writeError(w, http.StatusBadGateway, "failed to send notification")
			return
		}

		writeSuccess(w, http.StatusOK, result)
	}
}

func decodeToken(w http.ResponseWriter, r *http.Request, log *slog.Logger) (string, bool) {
	var body struct {
		Token string `json:"token"`
	}
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		log.Error("unable to decode token request", "err", err.Error())
		writeError(w, http.StatusBadRequest, "invalid request body")
		return "", false
	}

	if body.Token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return "", false
	}

	return body.Token, true
}
