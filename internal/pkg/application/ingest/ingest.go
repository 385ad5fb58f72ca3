package ingest

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"log/slog"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel"

	"github.com/gasdetection/iot-gas-bridge/internal/pkg/application/alerts"
	"github.com/gasdetection/iot-gas-bridge/internal/pkg/infrastructure/state"
	"github.com/gasdetection/iot-gas-bridge/pkg/types"
)

var tracer = otel.Tracer("iot-gas-bridge/ingest")

// Broadcaster fans a serialized message out to every connected
// realtime client.
type Broadcaster interface {
	Broadcast(env types.Envelope)
}

// Alerter escalates a classified notification to the push channel.
//
//go:generate moq -rm -out alerter_mock.go . Alerter
type Alerter interface {
	SendAlert(ctx context.Context, e alerts.Escalation)
}

// Service is the transport message handler. Every inbound message
// updates exactly one snapshot field or appends one notification, never
// both, and then propagates the change.
type Service struct {
	store       *state.Store
	broadcaster Broadcaster
	alerter     Alerter
	log         *slog.Logger
}

func New(store *state.Store, broadcaster Broadcaster, alerter Alerter, log *slog.Logger) *Service {
	return &Service{
		store:       store,
		broadcaster: broadcaster,
		alerter:     alerter,
		log:         log,
	}
}

// ConnectionHandler tracks transport connectivity in the snapshot.
// Resubscription after a lost connection is the transport layer's
// responsibility.
func (s *Service) ConnectionHandler(connected bool) {
	s.store.SetConnected(connected)
}

// MessageHandler routes an inbound message by its topic suffix. A
// malformed payload drops that one message, logged, with no state
// mutation and no fan-out.
func (s *Service) MessageHandler(topic string, payload []byte) {
	var err error

	ctx, span := tracer.Start(context.Background(), "handle-message")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
	_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, s.log, ctx)

	value := string(payload)
	log.Debug("message arrived", "topic", topic, "payload", value)

	switch {
	case strings.HasSuffix(topic, "sensor/mq2"):
		v, perr := strconv.Atoi(strings.TrimSpace(value))
		if perr != nil {
			err = perr
			log.Error("dropping malformed gas reading", "topic", topic, "err", err.Error())
			return
		}
		s.store.Update(func(sn *types.SensorSnapshot) { sn.MQ2 = v })

	case strings.HasSuffix(topic, "sensor/fire"):
		v, perr := strconv.Atoi(strings.TrimSpace(value))
		if perr != nil {
			err = perr
			log.Error("dropping malformed flame reading", "topic", topic, "err", err.Error())
			return
		}
		s.store.Update(func(sn *types.SensorSnapshot) { sn.Fire = v })

	case strings.HasSuffix(topic, "status/relay1"):
		s.store.Update(func(sn *types.SensorSnapshot) { sn.Relay1 = value == "1" })

	case strings.HasSuffix(topic, "status/relay2"):
		s.store.Update(func(sn *types.SensorSnapshot) { sn.Relay2 = value == "1" })

	case strings.HasSuffix(topic, "status/window"):
		s.store.Update(func(sn *types.SensorSnapshot) { sn.Window = value == "1" })

	case strings.HasSuffix(topic, "status/buzzer"):
		s.store.Update(func(sn *types.SensorSnapshot) { sn.Buzzer = value == "1" })

	case strings.HasSuffix(topic, "status/mode"):
		s.store.Update(func(sn *types.SensorSnapshot) {
			if value == "1" {
				sn.Mode = types.ModeAuto
			} else {
				sn.Mode = types.ModeManual
			}
		})

	case strings.HasSuffix(topic, "status/threshold"):
		// The device is authoritative for its reported threshold, the
		// [200,9999] bound only applies on the control path.
		v, perr := strconv.Atoi(strings.TrimSpace(value))
		if perr != nil {
			err = perr
			log.Error("dropping malformed threshold", "topic", topic, "err", err.Error())
			return
		}
		s.store.Update(func(sn *types.SensorSnapshot) { sn.Threshold = v })

	case strings.HasSuffix(topic, "notification"):
		err = s.handleNotification(ctx, payload)
		return

	default:
		log.Debug("ignoring message on unmapped topic", "topic", topic)
		return
	}

	s.broadcaster.Broadcast(types.Envelope{
		Type: types.MessageTypeData,
		Data: s.store.Snapshot(),
	})
}

func (s *Service) handleNotification(ctx context.Context, payload []byte) error {
	log := logging.GetFromContext(ctx)

	n := types.Notification{}
	err := json.Unmarshal(payload, &n)
	if err != nil {
		log.Error("dropping undecodable notification", "err", err.Error())
		return err
	}

	n.ReceivedAt = time.Now()
	s.store.AddNotification(n)

	s.broadcaster.Broadcast(types.Envelope{
		Type: types.MessageTypeNotification,
		Data: n,
	})

	if escalation, ok := alerts.Classify(n); ok {
		s.alerter.SendAlert(ctx, escalation)
	}

	return nil
}
