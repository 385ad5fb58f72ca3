package push

import (
	"context"
	"strconv"
	"time"

	"log/slog"

	"github.com/gasdetection/iot-gas-bridge/internal/pkg/application/alerts"
)

// DefaultAlertTopic is the shared topic every registered device is
// subscribed to.
const DefaultAlertTopic = "fire_alerts"

const (
	fireAlertTitle = "🔥 CẢNH BÁO CHÁY!"
	gasAlertTitle  = "⚠️ CẢNH BÁO KHÍ GAS!"
)

// Dispatcher delivers push alerts through the gateway, either to a
// single target, to the shared alert topic, or to every registered
// target. Delivery is fire and forget, individual failures are counted
// and logged but never surfaced to the caller.
type Dispatcher struct {
	gateway    Gateway
	registry   *TokenRegistry
	alertTopic string
	log        *slog.Logger
}

func NewDispatcher(gateway Gateway, registry *TokenRegistry, alertTopic string, log *slog.Logger) *Dispatcher {
	if alertTopic == "" {
		alertTopic = DefaultAlertTopic
	}

	return &Dispatcher{
		gateway:    gateway,
		registry:   registry,
		alertTopic: alertTopic,
		log:        log,
	}
}

// RegisterToken adds the token to the registry and subscribes it to the
// alert topic. Empty tokens are a no-op.
func (d *Dispatcher) RegisterToken(ctx context.Context, token string) {
	if token == "" {
		return
	}

	d.registry.Add(token)
	d.log.Info("registered device token", "count", d.registry.Count())

	err := d.gateway.SubscribeToTopic(ctx, []string{token}, d.alertTopic)
	if err != nil {
		d.log.Error("failed to subscribe token to alert topic", "topic", d.alertTopic, "err", err.Error())
	}
}

// UnregisterToken removes the token and unsubscribes it from the alert
// topic.
func (d *Dispatcher) UnregisterToken(ctx context.Context, token string) {
	if token == "" {
		return
	}

	d.registry.Remove(token)
	d.log.Info("unregistered device token", "count", d.registry.Count())

	err := d.gateway.UnsubscribeFromTopic(ctx, []string{token}, d.alertTopic)
	if err != nil {
		d.log.Error("failed to unsubscribe token from alert topic", "topic", d.alertTopic, "err", err.Error())
	}
}

func (d *Dispatcher) TokenCount() int {
	return d.registry.Count()
}

func (d *Dispatcher) SendToToken(ctx context.Context, token, title, body string, data map[string]string) (string, error) {
	return d.gateway.SendToToken(ctx, token, title, body, data)
}

func (d *Dispatcher) SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) (string, error) {
	return d.gateway.SendToTopic(ctx, topic, title, body, data)
}

// SendToAll attempts delivery to every registered target and reports
// how many sends succeeded and failed. Partial failure is expected and
// non fatal.
func (d *Dispatcher) SendToAll(ctx context.Context, title, body string, data map[string]string) (success, failure int) {
	tokens := d.registry.Snapshot()
	if len(tokens) == 0 {
		d.log.Warn("no registered devices to send notification to")
		return 0, 0
	}

	for _, token := range tokens {
		_, err := d.gateway.SendToToken(ctx, token, title, body, data)
		if err != nil {
			d.log.Error("failed to send push notification", "err", err.Error())
			failure++
			continue
		}
		success++
	}

	d.log.Info("batch notification completed", "success", success, "failure", failure)
	return success, failure
}

// SendAlert routes a classified escalation to the shared alert topic
// with a canned title and a structured payload.
func (d *Dispatcher) SendAlert(ctx context.Context, e alerts.Escalation) {
	title := gasAlertTitle
	if e.Category == alerts.CategoryFire {
		title = fireAlertTitle
	}

	data := map[string]string{
		"type":         string(e.Category),
		"message":      e.Message,
		"sensor_value": e.SensorValue,
		"timestamp":    strconv.FormatInt(time.Now().UnixMilli(), 10),
		"priority":     "high",
	}

	_, err := d.gateway.SendToTopic(ctx, d.alertTopic, title, e.Message, data)
	if err != nil {
		d.log.Error("failed to send alert to topic", "topic", d.alertTopic, "category", string(e.Category), "err", err.Error())
		return
	}

	d.log.Info("push alert sent", "category", string(e.Category), "sensor_value", e.SensorValue)
}
