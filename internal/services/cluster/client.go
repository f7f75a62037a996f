//START OF FILE mparcade/internal/services/cluster/client.go
package cluster

import (
	"fmt"
	"strings"

	consul "github.com/hashicorp/consul/api"
	"github.com/rs/zerolog"
)

// NewConsulClient tenta cada endereço da lista (separada por vírgula) até achar
// um agente que responda com um líder.
func NewConsulClient(addrs string, log zerolog.Logger) (*consul.Client, error) {
	for _, node := range strings.Split(addrs, ",") {
		node = strings.TrimSpace(node)
		if node == "" {
			continue
		}
		cfg := consul.DefaultConfig()
		cfg.Address = node

		client, err := consul.NewClient(cfg)
		if err != nil {
			log.Warn().Err(err).Str("node", node).Msg("consul client creation failed")
			continue
		}
		if _, err := client.Status().Leader(); err != nil {
			log.Warn().Err(err).Str("node", node).Msg("consul node has no leader")
			continue
		}
		log.Info().Str("node", node).Msg("connected to consul")
		return client, nil
	}
	return nil, fmt.Errorf("no consul node available in %q", addrs)
}

//END OF FILE mparcade/internal/services/cluster/client.go
