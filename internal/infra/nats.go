package infra

import (
	"time"

	"github.com/nats-io/nats.go"

	"nwptourism/internal/config"
)

func ConnectNATS(cfg config.NATSConfig) (*nats.Conn, error) {
	return nats.Connect(cfg.URL,
		nats.Name("nwptourism"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
	)
}
