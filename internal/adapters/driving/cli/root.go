// Package cli implements the searchprobe command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/searchprobe/internal/core/domain"
	"github.com/custodia-labs/searchprobe/internal/core/ports/driving"
	"github.com/custodia-labs/searchprobe/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
)

// Services used by the commands. Set by the service builder or by tests.
var (
	probeService    driving.ProbeService
	settingsService driving.SettingsService
	historyService  driving.HistoryService
	closeServices   func() error
)

// Services bundles the core services the commands depend on.
type Services struct {
	Probe    driving.ProbeService
	Settings driving.SettingsService
	History  driving.HistoryService

	// Close releases anything the services hold open. Optional.
	Close func() error
}

// ServiceBuilder creates the services for a configuration directory.
// An empty configDir selects the default location.
type ServiceBuilder func(configDir string) (*Services, error)

var buildServices ServiceBuilder

// SetServiceBuilder registers the function used to create services once
// global flags have been parsed.
func SetServiceBuilder(b ServiceBuilder) {
	buildServices = b
}

// errProbeFailed is returned after a failed probe has already been reported.
var errProbeFailed = errors.New("probe failed")

var rootCmd = &cobra.Command{
	Use:   "searchprobe",
	Short: "Check connectivity to a search engine",
	Long: `searchprobe fetches server info from an Elasticsearch or OpenSearch
service to check that it is reachable and accepts the given credentials.

It prints the server info and exits 0 on success. Any failure, such as a
refused connection, rejected credentials or a timeout, is printed and
exits 1.

Settings come from flags, then the config file, then the defaults
(` + domain.DefaultURL + `, user ` + domain.DefaultUsername + `).`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
	RunE:              runProbe,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log each probe step to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.searchprobe)")
}

func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if buildServices == nil {
		return nil
	}

	svc, err := buildServices(configDir)
	if err != nil {
		return fmt.Errorf("failed to initialise services: %w", err)
	}

	probeService = svc.Probe
	settingsService = svc.Settings
	historyService = svc.History
	closeServices = svc.Close

	logger.Debug("Config directory: %s", settingsPath())
	return nil
}

// Execute runs the root command and returns the process exit code,
// which is always 0 or 1.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd.SetOut(os.Stdout)
	err := rootCmd.ExecuteContext(ctx)

	if closeServices != nil {
		if cerr := closeServices(); cerr != nil {
			logger.Warn("Failed to close services: %v", cerr)
		}
	}

	return exitCode(rootCmd.ErrOrStderr(), err)
}

// exitCode reports err on w unless it was already reported, and maps it to
// an exit code.
func exitCode(w io.Writer, err error) int {
	if err == nil {
		return domain.ExitOK
	}
	if !errors.Is(err, errProbeFailed) {
		fmt.Fprintf(w, "Error: %v\n", err)
	}
	return domain.ExitFailure
}

func settingsPath() string {
	if settingsService == nil {
		return ""
	}
	return settingsService.Path()
}
