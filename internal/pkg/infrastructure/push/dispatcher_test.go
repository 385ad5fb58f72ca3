package push

import (
	"context"
	"errors"
	"io"
	"testing"

	"log/slog"

	"github.com/matryer/is"

	"github.com/gasdetection/iot-gas-bridge/internal/pkg/application/alerts"
)

func TestSendToAllCountsPartialFailure(t *testing.T) {
	is, ctx := testSetup(t)

	gateway := &GatewayMock{
		SendToTokenFunc: func(ctx context.Context, token, title, body string, data map[string]string) (string, error) {
			if token == "token-2" {
				return "", errors.New("unregistered token")
			}
			return "message-id", nil
		},
	}

	d := newTestDispatcher(gateway)
	d.registry.Add("token-1")
	d.registry.Add("token-2")
	d.registry.Add("token-3")

	success, failure := d.SendToAll(ctx, "title", "body", nil)

	is.Equal(success, 2)
	is.Equal(failure, 1)
	is.Equal(len(gateway.SendToTokenCalls()), 3)
}

func TestSendToAllWithoutTargetsIsANoOp(t *testing.T) {
	is, ctx := testSetup(t)

	gateway := &GatewayMock{}
	d := newTestDispatcher(gateway)

	success, failure := d.SendToAll(ctx, "title", "body", nil)

	is.Equal(success, 0)
	is.Equal(failure, 0)
	is.Equal(len(gateway.SendToTokenCalls()), 0)
}

func TestRegisterTokenSubscribesToAlertTopic(t *testing.T) {
	is, ctx := testSetup(t)

	gateway := &GatewayMock{
		SubscribeToTopicFunc: func(ctx context.Context, tokens []string, topic string) error {
			return nil
		},
	}

	d := newTestDispatcher(gateway)
	d.RegisterToken(ctx, "token-1")

	is.Equal(d.TokenCount(), 1)

	calls := gateway.SubscribeToTopicCalls()
	is.Equal(len(calls), 1)
	is.Equal(calls[0].Topic, DefaultAlertTopic)
	is.Equal(calls[0].Tokens[0], "token-1")
}

func TestRegisterTokenIsIdempotent(t *testing.T) {
	is, ctx := testSetup(t)

	gateway := &GatewayMock{
		SubscribeToTopicFunc: func(ctx context.Context, tokens []string, topic string) error {
			return nil
		},
	}

	d := newTestDispatcher(gateway)
	d.RegisterToken(ctx, "token-1")
	d.RegisterToken(ctx, "token-1")

	is.Equal(d.TokenCount(), 1)
}

func TestRegisterEmptyTokenIsANoOp(t *testing.T) {
	is, ctx := testSetup(t)

	gateway := &GatewayMock{}
	d := newTestDispatcher(gateway)

	d.RegisterToken(ctx, "")

	is.Equal(d.TokenCount(), 0)
	is.Equal(len(gateway.SubscribeToTopicCalls()), 0)
}

func TestUnregisterTokenUnsubscribesFromAlertTopic(t *testing.T) {
	is, ctx := testSetup(t)

	gateway := &GatewayMock{
		SubscribeToTopicFunc: func(ctx context.Context, tokens []string, topic string) error {
			return nil
		},
		UnsubscribeFromTopicFunc: func(ctx context.Context, tokens []string, topic string) error {
			return nil
		},
	}

	d := newTestDispatcher(gateway)
	d.RegisterToken(ctx, "token-1")
	d.UnregisterToken(ctx, "token-1")

	is.Equal(d.TokenCount(), 0)
	is.Equal(len(gateway.UnsubscribeFromTopicCalls()), 1)
}

func TestSendAlertRoutesThroughAlertTopic(t *testing.T) {
	is, ctx := testSetup(t)

	gateway := &GatewayMock{
		SendToTopicFunc: func(ctx context.Context, topic, title, body string, data map[string]string) (string, error) {
			return "message-id", nil
		},
	}

	d := newTestDispatcher(gateway)
	d.SendAlert(ctx, alerts.Escalation{
		Category:    alerts.CategoryFire,
		Message:     "Phát hiện cháy: 850",
		SensorValue: "850",
	})

	calls := gateway.SendToTopicCalls()
	is.Equal(len(calls), 1)
	is.Equal(calls[0].Topic, DefaultAlertTopic)
	is.Equal(calls[0].Body, "Phát hiện cháy: 850")
	is.Equal(calls[0].Data["type"], string(alerts.CategoryFire))
	is.Equal(calls[0].Data["sensor_value"], "850")
	is.Equal(calls[0].Data["priority"], "high")
}

func TestSendAlertSwallowsGatewayFailure(t *testing.T) {
	_, ctx := testSetup(t)

	gateway := &GatewayMock{
		SendToTopicFunc: func(ctx context.Context, topic, title, body string, data map[string]string) (string, error) {
			return "", errors.New("gateway unavailable")
		},
	}

	d := newTestDispatcher(gateway)
	d.SendAlert(ctx, alerts.Escalation{Category: alerts.CategoryGas, Message: "gas", SensorValue: "N/A"})
}

func newTestDispatcher(gateway Gateway) *Dispatcher {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewDispatcher(gateway, NewTokenRegistry(), "", log)
}

func testSetup(t *testing.T) (*is.I, context.Context) {
	return is.New(t), context.Background()
}
