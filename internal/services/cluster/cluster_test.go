package cluster

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	consul "github.com/hashicorp/consul/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthAggregatorHealthy(t *testing.T) {
	h := NewHealthAggregator()
	h.AddCheck("loop", func() error { return nil })

	rec := httptest.NewRecorder()
	h.Handler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestHealthAggregatorReportsFailures(t *testing.T) {
	h := NewHealthAggregator()
	h.AddCheck("loop", func() error { return nil })
	h.AddCheck("nats", func() error { return errors.New("disconnected") })

	rec := httptest.NewRecorder()
	h.Handler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"nats": "disconnected"}, body)
	assert.Equal(t, []string{"loop", "nats"}, h.Names())
}

func TestHeartbeat(t *testing.T) {
	now := time.Unix(1000, 0)
	hb := &Heartbeat{now: func() time.Time { return now }}
	hb.Beat()

	check := hb.Check(time.Second)
	assert.NoError(t, check())

	now = now.Add(2 * time.Second)
	assert.Error(t, check())

	hb.Beat()
	assert.NoError(t, check())
}

func TestNewRegistration(t *testing.T) {
	reg := NewRegistration("arcade", "box1", 8080, []string{"arcade"})
	assert.Equal(t, "arcade-box1", reg.ID)
	assert.Equal(t, "arcade", reg.Name)
	assert.Equal(t, 8080, reg.Port)
	require.NotNil(t, reg.Check)
	assert.Equal(t, "http://box1:8080/health", reg.Check.HTTP)
	assert.Equal(t, "1m", reg.Check.DeregisterCriticalServiceAfter)
}

func TestPickHealthy(t *testing.T) {
	_, ok := pickHealthy(nil)
	assert.False(t, ok)

	addr, ok := pickHealthy([]*consul.ServiceEntry{{
		Node:    &consul.Node{Address: "10.0.0.5"},
		Service: &consul.AgentService{Port: 8080},
	}})
	require.True(t, ok)
	assert.Equal(t, "10.0.0.5:8080", addr)

	addr, _ = pickHealthy([]*consul.ServiceEntry{{
		Node:    &consul.Node{Address: "10.0.0.5"},
		Service: &consul.AgentService{Address: "arcade-1", Port: 9000},
	}})
	assert.Equal(t, "arcade-1:9000", addr)
}
