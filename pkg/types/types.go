package types

import (
	"time"
)

const (
	ModeAuto   = "AUTO"
	ModeManual = "MANUAL"
)

const (
	ThresholdMin = 200
	ThresholdMax = 9999
)

// SensorSnapshot is the latest known state of the field device. A single
// instance exists per process; it is mutated by the ingestion service only
// and read everywhere else as a copy.
type SensorSnapshot struct {
	MQ2        int       `json:"mq2"`
	Fire       int       `json:"fire"`
	Relay1     bool      `json:"relay1"`
	Relay2     bool      `json:"relay2"`
	Window     bool      `json:"window"`
	Buzzer     bool      `json:"buzzer"`
	Mode       string    `json:"mode"`
	Threshold  int       `json:"threshold"`
	LastUpdate time.Time `json:"lastUpdate"`
	Connected  bool      `json:"connected"`
}

func NewSensorSnapshot() SensorSnapshot {
	return SensorSnapshot{
		Mode:      ModeAuto,
		Threshold: 4000,
	}
}

// Notification is an event published by the device on the notification
// topic. Timestamp is the device-side event time in epoch milliseconds,
// ReceivedAt is set exactly once when the message arrives and is never
// mutated afterwards.
type Notification struct {
	Type       string    `json:"type"`
	Message    string    `json:"message"`
	Timestamp  int64     `json:"timestamp"`
	Severity   string    `json:"severity"`
	ReceivedAt time.Time `json:"receivedAt"`
}

const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

const (
	MessageTypeData         = "data"
	MessageTypeNotification = "notification"
)

// Envelope is the outbound websocket message wrapping either a snapshot
// or a notification.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}
