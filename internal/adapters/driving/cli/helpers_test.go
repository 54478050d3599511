package cli

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/searchprobe/internal/adapters/driven/search"
	"github.com/custodia-labs/searchprobe/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/searchprobe/internal/core/domain"
	"github.com/custodia-labs/searchprobe/internal/core/services"
	"github.com/custodia-labs/searchprobe/internal/logger"
)

const testInfoBody = `{
  "name" : "es01",
  "cluster_name" : "docker-cluster",
  "cluster_uuid" : "x3bGqYbIQ7SM3c9fT0yW4w",
  "version" : { "number" : "8.11.3", "build_flavor" : "default" },
  "tagline" : "You Know, for Search"
}`

const testOpenSearchInfoBody = `{
  "name" : "opensearch-node1",
  "cluster_name" : "opensearch-cluster",
  "version" : { "distribution" : "opensearch", "number" : "2.11.1" },
  "tagline" : "The OpenSearch Project: https://opensearch.org/"
}`

// setupTestServices wires real services over in-memory stores and resets
// command state left over from earlier tests.
func setupTestServices() func() {
	origProbe := probeService
	origSettings := settingsService
	origHistory := historyService
	origClose := closeServices
	origBuilder := buildServices
	origReader := passwordReader
	origLogOutput := logger.Output()

	resetFlags(rootCmd)

	probeService = services.NewProbeService(search.NewFactory())
	settingsService = services.NewSettingsService(memory.NewConfigStore())
	historyService = services.NewHistoryService(memory.NewHistoryStore())
	closeServices = nil
	buildServices = nil

	return func() {
		probeService = origProbe
		settingsService = origSettings
		historyService = origHistory
		closeServices = origClose
		buildServices = origBuilder
		passwordReader = origReader

		resetFlags(rootCmd)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		logger.SetVerbose(false)
		logger.SetOutput(origLogOutput)
	}
}

// resetFlags restores every flag of cmd and its subcommands to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// fakeEngine serves the info endpoint behind basic auth.
type fakeEngine struct {
	mu       sync.Mutex
	username string
	password string
	body     string
	failures int
	hits     int
}

func (f *fakeEngine) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits++
	failing := f.failures > 0
	if failing {
		f.failures--
	}
	body := f.body
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Elastic-Product", "Elasticsearch")

	if user, pass, ok := r.BasicAuth(); !ok || user != f.username || pass != f.password {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"type":"security_exception","reason":"unable to authenticate user [` + user + `]"},"status":401}`))
		return
	}
	if failing {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"type":"unavailable","reason":"node is starting"},"status":503}`))
		return
	}
	if body == "" {
		body = testInfoBody
	}
	_, _ = w.Write([]byte(body))
}

func (f *fakeEngine) Hits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits
}

// newFakeEngine starts a server that accepts the default credentials.
func newFakeEngine(t *testing.T) (*fakeEngine, *httptest.Server) {
	t.Helper()
	fake := &fakeEngine{username: domain.DefaultUsername, password: domain.DefaultPassword}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)
	return fake, server
}

// closedServerURL returns the URL of a server that is no longer listening.
func closedServerURL(t *testing.T) string {
	t.Helper()
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()
	return url
}
