package env

import (
	"net"
	"os"
	"tower_backend/internal/config"
)

const (
	httpHostEnvName = "HTTP_HOST"
	httpPortEnvName = "HTTP_PORT"

	defaultHTTPPort = "3000"
)

type httpConfig struct {
	host string
	port string
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	port := os.Getenv(httpPortEnvName)
	if len(port) == 0 {
		port = defaultHTTPPort
	}

	return &httpConfig{
		host: os.Getenv(httpHostEnvName),
		port: port,
	}, nil
}

func (cfg *httpConfig) Address() string {
	return net.JoinHostPort(cfg.host, cfg.port)
}
