// Command searchprobe checks connectivity to an Elasticsearch or OpenSearch
// service. It exits 0 when the service answered and 1 otherwise.
package main

import (
	"os"
	"path/filepath"

	"github.com/custodia-labs/searchprobe/internal/adapters/driven/config/file"
	"github.com/custodia-labs/searchprobe/internal/adapters/driven/search"
	"github.com/custodia-labs/searchprobe/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/searchprobe/internal/adapters/driving/cli"
	"github.com/custodia-labs/searchprobe/internal/core/services"
)

func main() {
	cli.SetServiceBuilder(buildServices)
	os.Exit(cli.Execute())
}

// buildServices wires the adapters for a config directory.
// The history database is only opened when history is used.
func buildServices(configDir string) (*cli.Services, error) {
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, err
	}

	history := sqlite.NewLazyStore(filepath.Join(configDir, "data"))

	return &cli.Services{
		Probe:    services.NewProbeService(search.NewFactory()),
		Settings: services.NewSettingsService(configStore),
		History:  services.NewHistoryService(history),
		Close:    history.Close,
	}, nil
}
