//START OF FILE mparcade/internal/services/cluster/register.go
package cluster

import (
	"fmt"
	"os"

	consul "github.com/hashicorp/consul/api"
	"github.com/rs/zerolog"
)

// Registration é o registro ativo de um servidor arcade no Consul.
type Registration struct {
	ID     string
	client *consul.Client
	log    zerolog.Logger
}

// ServiceID monta o id único da instância a partir do nome do serviço e do host.
func ServiceID(serviceName, hostname string) string {
	return fmt.Sprintf("%s-%s", serviceName, hostname)
}

// NewRegistration descreve o serviço e o seu health check HTTP.
func NewRegistration(serviceName, hostname string, port int, tags []string) *consul.AgentServiceRegistration {
	return &consul.AgentServiceRegistration{
		ID:   ServiceID(serviceName, hostname),
		Name: serviceName,
		Port: port,
		Tags: tags,
		Check: &consul.AgentServiceCheck{
			HTTP:     fmt.Sprintf("http://%s:%d/health", hostname, port),
			Timeout:  "5s",
			Interval: "10s",
			// Remove o serviço se ficar crítico por mais de 1 minuto.
			DeregisterCriticalServiceAfter: "1m",
		},
	}
}

// RegisterService registra esta instância no agente Consul em addrs.
func RegisterService(serviceName string, port int, addrs string, log zerolog.Logger) (*Registration, error) {
	log = log.With().Str("component", "cluster").Logger()
	client, err := NewConsulClient(addrs, log)
	if err != nil {
		return nil, err
	}

	hostname := os.Getenv("HOSTNAME")
	if hostname == "" {
		hostname, _ = os.Hostname()
	}
	reg := NewRegistration(serviceName, hostname, port, []string{"arcade", "websocket"})
	if err := client.Agent().ServiceRegister(reg); err != nil {
		return nil, fmt.Errorf("registering %s in consul: %w", reg.ID, err)
	}
	log.Info().Str("id", reg.ID).Msg("service registered in consul")
	return &Registration{ID: reg.ID, client: client, log: log}, nil
}

func (r *Registration) Deregister() error {
	if err := r.client.Agent().ServiceDeregister(r.ID); err != nil {
		return fmt.Errorf("deregistering %s: %w", r.ID, err)
	}
	r.log.Info().Str("id", r.ID).Msg("service deregistered")
	return nil
}

//END OF FILE mparcade/internal/services/cluster/register.go
