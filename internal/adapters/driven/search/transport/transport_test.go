package transport

import (
	"context"
	"encoding/pem"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/searchprobe/internal/core/domain"
)

func TestNewHTTPTransport_Plain(t *testing.T) {
	endpoint := domain.DefaultEndpoint()
	endpoint.Timeout = 3 * time.Second

	tr, err := NewHTTPTransport(endpoint)

	require.NoError(t, err)
	// Cloning the default transport may pre-populate NextProtos, so only the
	// custom settings are checked.
	if tr.TLSClientConfig != nil {
		assert.False(t, tr.TLSClientConfig.InsecureSkipVerify)
		assert.Nil(t, tr.TLSClientConfig.RootCAs)
	}
	assert.Equal(t, 3*time.Second, tr.ResponseHeaderTimeout)
}

func TestNewHTTPTransport_Insecure(t *testing.T) {
	endpoint := domain.DefaultEndpoint()
	endpoint.InsecureSkipVerify = true

	tr, err := NewHTTPTransport(endpoint)

	require.NoError(t, err)
	require.NotNil(t, tr.TLSClientConfig)
	assert.True(t, tr.TLSClientConfig.InsecureSkipVerify)
}

func TestNewHTTPTransport_CACert(t *testing.T) {
	server := httptest.NewTLSServer(nil)
	defer server.Close()

	path := filepath.Join(t.TempDir(), "ca.pem")
	block := &pem.Block{Type: "CERTIFICATE", Bytes: server.Certificate().Raw}
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0600))

	endpoint := domain.DefaultEndpoint()
	endpoint.CACertPath = path

	tr, err := NewHTTPTransport(endpoint)

	require.NoError(t, err)
	require.NotNil(t, tr.TLSClientConfig)
	assert.NotNil(t, tr.TLSClientConfig.RootCAs)
	assert.False(t, tr.TLSClientConfig.InsecureSkipVerify)
}

func TestNewHTTPTransport_BadCACert(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.pem")
	require.NoError(t, os.WriteFile(garbage, []byte("not a certificate"), 0600))

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.pem")},
		{"no certificates", garbage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoint := domain.DefaultEndpoint()
			endpoint.CACertPath = tt.path

			_, err := NewHTTPTransport(endpoint)

			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "got %v", err)
		})
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyError(t *testing.T) {
	expired, cancel := context.WithTimeout(context.Background(), -time.Second)
	defer cancel()

	tests := []struct {
		name string
		ctx  context.Context
		err  error
		want error
	}{
		{"refused", context.Background(), errors.New("dial tcp 127.0.0.1:1200: connect: connection refused"), domain.ErrUnreachable},
		{"deadline error", context.Background(), context.DeadlineExceeded, domain.ErrTimeout},
		{"expired context", expired, errors.New("request canceled"), domain.ErrTimeout},
		{"net timeout", context.Background(), timeoutErr{}, domain.ErrTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ClassifyError(tt.ctx, tt.err)

			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Contains(t, err.Error(), tt.err.Error())
		})
	}

	assert.NoError(t, ClassifyError(context.Background(), nil))
}

func TestDecodeInfo_Success(t *testing.T) {
	info, err := DecodeInfo(200, strings.NewReader(`{"name":"es01","cluster_name":"docker-cluster"}`))

	require.NoError(t, err)
	assert.Equal(t, "docker-cluster", info.ClusterName)
}

func TestDecodeInfo_Statuses(t *testing.T) {
	securityBody := `{"error":{"root_cause":[],"type":"security_exception",` +
		`"reason":"unable to authenticate user [elastic] for REST request [/]"},"status":401}`

	tests := []struct {
		name       string
		status     int
		body       string
		want       error
		wantReason string
	}{
		{"unauthorized", 401, securityBody, domain.ErrAuthInvalid, "unable to authenticate user [elastic]"},
		{"forbidden", 403, `{"error":"no permissions"}`, domain.ErrAuthInvalid, "no permissions"},
		{"unavailable", 503, `{"error":{"type":"cluster_block_exception","reason":"blocked"}}`, domain.ErrUnexpectedStatus, "blocked"},
		{"plain body", 502, "Bad Gateway from proxy", domain.ErrUnexpectedStatus, "Bad Gateway from proxy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := DecodeInfo(tt.status, strings.NewReader(tt.body))

			assert.Nil(t, info)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)

			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tt.status, statusErr.StatusCode)
			assert.Contains(t, statusErr.Reason, tt.wantReason)
		})
	}
}

func TestDecodeInfo_Malformed(t *testing.T) {
	_, err := DecodeInfo(200, strings.NewReader("<html>welcome to nginx</html>"))

	assert.True(t, errors.Is(err, domain.ErrMalformedResponse))
}

func TestStatusError_Message(t *testing.T) {
	err := NewStatusError(401, []byte(`{"error":{"reason":"bad password"}}`))

	assert.Equal(t, "authentication invalid: 401 Unauthorized: bad password", err.Error())
}

func TestErrorReason_TruncatesLongBodies(t *testing.T) {
	reason := errorReason([]byte(strings.Repeat("x", 500)))

	assert.Len(t, reason, maxReasonLength+len("..."))
}
