//START OF FILE mparcade/internal/services/cluster/discovery.go
package cluster

import (
	"fmt"
	"math/rand/v2"

	consul "github.com/hashicorp/consul/api"
	"github.com/rs/zerolog"
)

// Discover devolve "host:porta" de uma instância saudável do serviço.
func Discover(serviceName, consulAddrs string, log zerolog.Logger) (string, error) {
	client, err := NewConsulClient(consulAddrs, log)
	if err != nil {
		return "", err
	}
	services, _, err := client.Health().Service(serviceName, "", true, nil)
	if err != nil {
		return "", fmt.Errorf("querying %s: %w", serviceName, err)
	}
	addr, ok := pickHealthy(services)
	if !ok {
		return "", fmt.Errorf("no healthy instance of %s", serviceName)
	}
	return addr, nil
}

func pickHealthy(services []*consul.ServiceEntry) (string, bool) {
	if len(services) == 0 {
		return "", false
	}
	s := services[rand.IntN(len(services))]
	addr := s.Service.Address
	if addr == "" && s.Node != nil {
		addr = s.Node.Address
	}
	return fmt.Sprintf("%s:%d", addr, s.Service.Port), true
}

//END OF FILE mparcade/internal/services/cluster/discovery.go
