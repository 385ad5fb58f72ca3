package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"

	"github.com/gasdetection/iot-gas-bridge/pkg/types"
)

// BridgeClient is a typed client for the bridge's REST surface,
// intended for dashboards and other services consuming the bridge.
type BridgeClient interface {
	Snapshot(ctx context.Context) (types.SensorSnapshot, error)
	Notifications(ctx context.Context, limit int) ([]types.Notification, error)
	SetThreshold(ctx context.Context, threshold int) error
}

type bridgeClient struct {
	url string
}

var tracer = otel.Tracer("iot-gas-bridge-client")

func NewBridgeClient(bridgeURL string) BridgeClient {
	return &bridgeClient{
		url: bridgeURL,
	}
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (c *bridgeClient) Snapshot(ctx context.Context) (types.SensorSnapshot, error) {
	var err error
	ctx, span := tracer.Start(ctx, "get-snapshot")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	snapshot := types.SensorSnapshot{}

	err = c.get(ctx, c.url+"/api/v0/data", &snapshot)
	if err != nil {
		return types.SensorSnapshot{}, err
	}

	return snapshot, nil
}

func (c *bridgeClient) Notifications(ctx context.Context, limit int) ([]types.Notification, error) {
	var err error
	ctx, span := tracer.Start(ctx, "get-notifications")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	notifications := []types.Notification{}

	err = c.get(ctx, fmt.Sprintf("%s/api/v0/notifications?limit=%d", c.url, limit), &notifications)
	if err != nil {
		return nil, err
	}

	return notifications, nil
}

func (c *bridgeClient) SetThreshold(ctx context.Context, threshold int) error {
	var err error
	ctx, span := tracer.Start(ctx, "set-threshold")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	body, err := json.Marshal(map[string]int{"threshold": threshold})
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	httpClient := http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/api/v0/control/threshold", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to set threshold: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r, derr := decodeResponse(resp.Body)
		if derr == nil && r.Error != "" {
			err = fmt.Errorf("request failed: %s", r.Error)
			return err
		}
		err = fmt.Errorf("request failed with status %d", resp.StatusCode)
		return err
	}

	return nil
}

func (c *bridgeClient) get(ctx context.Context, url string, into any) error {
	httpClient := http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create http request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to retrieve data from bridge: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	r, err := decodeResponse(resp.Body)
	if err != nil {
		return err
	}

	err = json.Unmarshal(r.Data, into)
	if err != nil {
		return fmt.Errorf("failed to unmarshal response data: %w", err)
	}

	return nil
}

func decodeResponse(body io.Reader) (apiResponse, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return apiResponse{}, fmt.Errorf("failed to read response body: %w", err)
	}

	r := apiResponse{}
	err = json.Unmarshal(b, &r)
	if err != nil {
		return apiResponse{}, fmt.Errorf("failed to unmarshal response body: %w", err)
	}

	return r, nil
}
