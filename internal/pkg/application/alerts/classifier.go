package alerts

import (
	"strings"

	"github.com/gasdetection/iot-gas-bridge/pkg/types"
)

type Category string

const (
	CategoryFire Category = "fire_alert"
	CategoryGas  Category = "gas_alert"
)

// SensorValueNotAvailable is returned when no sensor value could be
// extracted from the notification message.
const SensorValueNotAvailable = "N/A"

var fireKeywords = []string{"Phát hiện cháy", "fire", "lửa"}
var gasKeywords = []string{"Phát hiện khí gas", "gas", "MQ2"}

// Escalation describes a notification that qualifies for push delivery.
type Escalation struct {
	Category    Category
	Message     string
	SensorValue string
}

// Classify decides whether a notification warrants a push alert. Only
// warning and critical severities qualify, and the message must contain
// a known fire or gas related term. Fire terms take precedence.
func Classify(n types.Notification) (Escalation, bool) {
	severity := strings.ToLower(n.Severity)
	if severity != types.SeverityCritical && severity != types.SeverityWarning {
		return Escalation{}, false
	}

	category, ok := matchCategory(n.Message)
	if !ok {
		return Escalation{}, false
	}

	return Escalation{
		Category:    category,
		Message:     n.Message,
		SensorValue: extractSensorValue(n.Message),
	}, true
}

func matchCategory(message string) (Category, bool) {
	for _, kw := range fireKeywords {
		if strings.Contains(message, kw) {
			return CategoryFire, true
		}
	}
	for _, kw := range gasKeywords {
		if strings.Contains(message, kw) {
			return CategoryGas, true
		}
	}
	return "", false
}

// extractSensorValue pulls a value out of messages shaped like
// "MQ2: 850 ppm". The parse is best effort, a message without a colon
// yields the not-available sentinel.
func extractSensorValue(message string) string {
	_, rest, found := strings.Cut(message, ":")
	if !found {
		return SensorValueNotAvailable
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return SensorValueNotAvailable
	}

	return fields[0]
}
