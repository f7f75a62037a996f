//START OF FILE mparcade/internal/services/cluster/health.go
package cluster

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// CheckFunc realiza uma verificação de saúde; nil significa saudável.
type CheckFunc func() error

// HealthAggregator junta várias verificações atrás de um único endpoint HTTP.
type HealthAggregator struct {
	mu     sync.RWMutex
	checks map[string]CheckFunc
}

func NewHealthAggregator() *HealthAggregator {
	return &HealthAggregator{checks: make(map[string]CheckFunc)}
}

// AddCheck registra (ou substitui) uma verificação.
func (h *HealthAggregator) AddCheck(name string, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = check
}

// Names lista as verificações registradas, em ordem alfabética.
func (h *HealthAggregator) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	names := make([]string, 0, len(h.checks))
	for n := range h.checks {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Handler responde 200 quando todas as verificações passam e 503 caso contrário,
// com um JSON descrevendo as falhas.
func (h *HealthAggregator) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.mu.RLock()
		failures := make(map[string]string)
		for name, check := range h.checks {
			if err := check(); err != nil {
				failures[name] = err.Error()
			}
		}
		h.mu.RUnlock()

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if len(failures) > 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(failures)
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}
}

// Heartbeat guarda o instante do último progresso de um loop.
type Heartbeat struct {
	last atomic.Int64
	now  func() time.Time
}

func NewHeartbeat() *Heartbeat {
	hb := &Heartbeat{now: time.Now}
	hb.Beat()
	return hb
}

func (hb *Heartbeat) Beat() { hb.last.Store(hb.now().UnixNano()) }

// Check falha se nenhum Beat chegou dentro de maxAge.
func (hb *Heartbeat) Check(maxAge time.Duration) CheckFunc {
	return func() error {
		age := hb.now().Sub(time.Unix(0, hb.last.Load()))
		if age > maxAge {
			return fmt.Errorf("last tick %s ago", age.Truncate(time.Millisecond))
		}
		return nil
	}
}

//END OF FILE mparcade/internal/services/cluster/health.go
