// Package transport holds the HTTP plumbing shared by the engine adapters:
// the TLS-aware http.Transport, transport error classification, and
// decoding of info responses into domain types.
package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/custodia-labs/searchprobe/internal/core/domain"
)

// NewHTTPTransport builds the round tripper used by the engine clients.
// Response headers must arrive within the endpoint timeout.
func NewHTTPTransport(endpoint domain.Endpoint) (*http.Transport, error) {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.ResponseHeaderTimeout = endpoint.EffectiveTimeout()

	if !endpoint.InsecureSkipVerify && endpoint.CACertPath == "" {
		return t, nil
	}

	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
		//nolint:gosec // G402: opt-in via --insecure for self-signed development clusters.
		InsecureSkipVerify: endpoint.InsecureSkipVerify,
	}

	if endpoint.CACertPath != "" {
		pem, err := os.ReadFile(endpoint.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("%w: read ca cert: %v", domain.ErrInvalidInput, err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("%w: no PEM certificates in %s", domain.ErrInvalidInput, endpoint.CACertPath)
		}
		tlsConfig.RootCAs = pool
	}

	t.TLSClientConfig = tlsConfig
	return t, nil
}

// ClassifyError wraps a transport-level failure in the matching domain error.
func ClassifyError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if isTimeout(ctx, err) {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrUnreachable, err)
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
