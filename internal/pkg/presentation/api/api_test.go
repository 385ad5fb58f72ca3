package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/matryer/is"

	"github.com/gasdetection/iot-gas-bridge/internal/pkg/infrastructure/state"
	"github.com/gasdetection/iot-gas-bridge/pkg/types"
)

type dispatcherFake struct {
	registered   []string
	unregistered []string
	sentToAll    int
}

func (d *dispatcherFake) RegisterToken(ctx context.Context, token string) {
	d.registered = append(d.registered, token)
}
func (d *dispatcherFake) UnregisterToken(ctx context.Context, token string) {
	d.unregistered = append(d.unregistered, token)
}
func (d *dispatcherFake) TokenCount() int { return len(d.registered) }
func (d *dispatcherFake) SendToToken(ctx context.Context, token, title, body string, data map[string]string) (string, error) {
	return "message-id", nil
}
func (d *dispatcherFake) SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) (string, error) {
	return "message-id", nil
}
func (d *dispatcherFake) SendToAll(ctx context.Context, title, body string, data map[string]string) (int, int) {
	d.sentToAll++
	return len(d.registered), 0
}

type sessionCounterFake struct {
	count int
}

func (s *sessionCounterFake) Count() int { return s.count }

func TestThresholdBoundsAreEnforcedBeforePublish(t *testing.T) {
	testCases := []struct {
		threshold      int
		expectedStatus int
		published      bool
	}{
		{199, http.StatusBadRequest, false},
		{200, http.StatusOK, true},
		{9999, http.StatusOK, true},
		{10000, http.StatusBadRequest, false},
	}

	for _, tc := range testCases {
		is, server, publisher, _, _ := testSetup(t)

		resp := post(t, server, "/api/v0/control/threshold", map[string]int{"threshold": tc.threshold})
		is.Equal(resp.StatusCode, tc.expectedStatus)

		if tc.published {
			is.Equal(len(publisher.PublishCalls()), 1)
			is.Equal(publisher.PublishCalls()[0].Topic, "gas/control/threshold")
		} else {
			is.Equal(len(publisher.PublishCalls()), 0)
		}

		server.Close()
	}
}

func TestControlSwitchPublishesBinaryState(t *testing.T) {
	is, server, publisher, _, _ := testSetup(t)
	defer server.Close()

	resp := post(t, server, "/api/v0/control/relay1", map[string]bool{"state": true})
	is.Equal(resp.StatusCode, http.StatusOK)

	calls := publisher.PublishCalls()
	is.Equal(len(calls), 1)
	is.Equal(calls[0].Topic, "gas/control/relay1")
	is.Equal(calls[0].Payload, "1")
}

func TestUnknownControlIsNotFound(t *testing.T) {
	is, server, publisher, _, _ := testSetup(t)
	defer server.Close()

	resp := post(t, server, "/api/v0/control/missile", map[string]bool{"state": true})
	is.Equal(resp.StatusCode, http.StatusNotFound)
	is.Equal(len(publisher.PublishCalls()), 0)
}

func TestControlModePublishesModeFlag(t *testing.T) {
	is, server, publisher, _, _ := testSetup(t)
	defer server.Close()

	resp := post(t, server, "/api/v0/control/mode", map[string]string{"mode": "AUTO"})
	is.Equal(resp.StatusCode, http.StatusOK)

	calls := publisher.PublishCalls()
	is.Equal(len(calls), 1)
	is.Equal(calls[0].Topic, "gas/control/mode")
	is.Equal(calls[0].Payload, "1")
}

func TestPublishFailureIsServiceUnavailable(t *testing.T) {
	is, server, publisher, _, _ := testSetup(t)
	defer server.Close()

	publisher.PublishFunc = func(topic, payload string) error {
		return context.DeadlineExceeded
	}

	resp := post(t, server, "/api/v0/control/relay2", map[string]bool{"state": false})
	is.Equal(resp.StatusCode, http.StatusServiceUnavailable)
}

func TestGetDataReturnsSnapshot(t *testing.T) {
	is, server, _, store, _ := testSetup(t)
	defer server.Close()

	store.Update(func(sn *types.SensorSnapshot) { sn.MQ2 = 1234 })

	resp, err := http.Get(server.URL + "/api/v0/data")
	is.NoErr(err)
	is.Equal(resp.StatusCode, http.StatusOK)

	var r struct {
		Success bool                 `json:"success"`
		Data    types.SensorSnapshot `json:"data"`
	}
	is.NoErr(json.NewDecoder(resp.Body).Decode(&r))
	is.True(r.Success)
	is.Equal(r.Data.MQ2, 1234)
}

func TestGetNotificationsHonoursLimit(t *testing.T) {
	is, server, _, store, _ := testSetup(t)
	defer server.Close()

	store.AddNotification(types.Notification{Message: "first"})
	store.AddNotification(types.Notification{Message: "second"})

	resp, err := http.Get(server.URL + "/api/v0/notifications?limit=1")
	is.NoErr(err)

	var r struct {
		Data []types.Notification `json:"data"`
	}
	is.NoErr(json.NewDecoder(resp.Body).Decode(&r))
	is.Equal(len(r.Data), 1)
	is.Equal(r.Data[0].Message, "second")
}

func TestGetNotificationsRejectsMalformedLimit(t *testing.T) {
	is, server, _, _, _ := testSetup(t)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/v0/notifications?limit=abc")
	is.NoErr(err)
	is.Equal(resp.StatusCode, http.StatusBadRequest)
}

func TestRegisterTokenRequiresToken(t *testing.T) {
	is, server, _, _, dispatcher := testSetup(t)
	defer server.Close()

	resp := post(t, server, "/api/v0/tokens", map[string]string{"token": ""})
	is.Equal(resp.StatusCode, http.StatusBadRequest)
	is.Equal(len(dispatcher.registered), 0)

	resp = post(t, server, "/api/v0/tokens", map[string]string{"token": "abc123"})
	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(dispatcher.registered, []string{"abc123"})
}

func TestHealthReportsBridgeState(t *testing.T) {
	is, server, _, store, _ := testSetup(t)
	defer server.Close()

	store.SetConnected(true)

	resp, err := http.Get(server.URL + "/api/v0/health")
	is.NoErr(err)
	is.Equal(resp.StatusCode, http.StatusOK)

	var r struct {
		Data map[string]any `json:"data"`
	}
	is.NoErr(json.NewDecoder(resp.Body).Decode(&r))
	is.Equal(r.Data["mqtt"], true)
	is.Equal(r.Data["websocket"], float64(3))
}

func testSetup(t *testing.T) (*is.I, *httptest.Server, *PublisherMock, *state.Store, *dispatcherFake) {
	store := state.New()
	publisher := &PublisherMock{
		PublishFunc:   func(topic, payload string) error { return nil },
		ConnectedFunc: func() bool { return true },
	}
	dispatcher := &dispatcherFake{}

	router := chi.NewRouter()
	err := RegisterHandlers(context.Background(), router, store, publisher, dispatcher, &sessionCounterFake{count: 3},
		func(w http.ResponseWriter, r *http.Request) {}, "gas")

	is := is.New(t)
	is.NoErr(err)

	return is, httptest.NewServer(router), publisher, store, dispatcher
}

func post(t *testing.T, server *httptest.Server, path string, body any) *http.Response {
	t.Helper()

	b, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}

	resp, err := http.Post(server.URL+path, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}

	return resp
}
