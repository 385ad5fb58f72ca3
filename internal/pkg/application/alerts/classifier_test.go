package alerts

import (
	"testing"

	"github.com/matryer/is"

	"github.com/gasdetection/iot-gas-bridge/pkg/types"
)

func TestCriticalFireMessageEscalatesToFireCategory(t *testing.T) {
	is := is.New(t)

	e, ok := Classify(types.Notification{
		Severity: types.SeverityCritical,
		Message:  "Phát hiện cháy: 850",
	})

	is.True(ok)
	is.Equal(e.Category, CategoryFire)
	is.Equal(e.SensorValue, "850")
}

func TestInfoSeverityNeverEscalates(t *testing.T) {
	is := is.New(t)

	_, ok := Classify(types.Notification{
		Severity: types.SeverityInfo,
		Message:  "Phát hiện cháy: 850",
	})

	is.True(!ok)
}

func TestWarningGasMessageEscalatesToGasCategory(t *testing.T) {
	is := is.New(t)

	e, ok := Classify(types.Notification{
		Severity: types.SeverityWarning,
		Message:  "MQ2: 4200 ppm",
	})

	is.True(ok)
	is.Equal(e.Category, CategoryGas)
	is.Equal(e.SensorValue, "4200")
}

func TestSeverityMatchIsCaseInsensitive(t *testing.T) {
	is := is.New(t)

	_, ok := Classify(types.Notification{
		Severity: "CRITICAL",
		Message:  "fire detected",
	})

	is.True(ok)
}

func TestUnknownKeywordsAreNotEscalated(t *testing.T) {
	is := is.New(t)

	_, ok := Classify(types.Notification{
		Severity: types.SeverityCritical,
		Message:  "battery low",
	})

	is.True(!ok)
}

func TestFireTakesPrecedenceOverGas(t *testing.T) {
	is := is.New(t)

	e, ok := Classify(types.Notification{
		Severity: types.SeverityCritical,
		Message:  "fire near gas sensor: 999",
	})

	is.True(ok)
	is.Equal(e.Category, CategoryFire)
}

func TestExtractSensorValue(t *testing.T) {
	is := is.New(t)

	is.Equal(extractSensorValue("MQ2: 850 ppm"), "850")
	is.Equal(extractSensorValue("no colon here"), SensorValueNotAvailable)
	is.Equal(extractSensorValue("trailing colon:"), SensorValueNotAvailable)
	is.Equal(extractSensorValue("a: b: c"), "b:")
}
