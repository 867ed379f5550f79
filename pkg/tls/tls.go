package tls

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/spiffe/go-spiffe/v2/spiffetls/tlsconfig"
	"github.com/spiffe/go-spiffe/v2/workloadapi"
	"go.uber.org/zap"
)

type TLSConfig struct {
	Enabled    bool   `envconfig:"TLS_ENABLED" default:"false"`
	SocketPath string `envconfig:"SPIRE_SOCKET_PATH" default:"unix:///run/spire/sockets/agent.sock"`
}

// Listener holds the SPIRE-backed server TLS material. Close releases the
// workload API source; the source rotates certificates on its own.
type Listener struct {
	Config *tls.Config
	source *workloadapi.X509Source
}

// Load builds an mTLS server config from the SPIRE workload API. Returns nil
// when TLS is disabled so callers can serve plain HTTP.
func Load(ctx context.Context, cfg *TLSConfig, logger *zap.Logger) (*Listener, error) {
	if !cfg.Enabled {
		logger.Info("TLS is disabled")
		return nil, nil
	}

	source, err := workloadapi.NewX509Source(
		ctx,
		workloadapi.WithClientOptions(
			workloadapi.WithAddr(cfg.SocketPath),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create X509Source: %w", err)
	}

	tlsConfig := tlsconfig.MTLSServerConfig(source, source, tlsconfig.AuthorizeAny())
	tlsConfig.MinVersion = tls.VersionTLS12

	logger.Info("SPIRE TLS configuration loaded",
		zap.String("socket_path", cfg.SocketPath),
		zap.Bool("mtls_enabled", true))

	return &Listener{Config: tlsConfig, source: source}, nil
}

func (l *Listener) Close() {
	if l != nil && l.source != nil {
		l.source.Close()
	}
}
