package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/searchprobe/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configured endpoint",
	Long: `View and change the endpoint searchprobe connects to.

Settings are stored in config.toml inside the config directory. Flags passed
to a probe override them for that run.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a setting",
	Long: `Set a setting by key.

Keys:
  engine                    elasticsearch or opensearch
  url                       service URL, e.g. http://localhost:1200
  username                  basic auth username (empty disables auth)
  password                  basic auth password
  timeout                   per-request timeout, e.g. 10s
  tls.insecure_skip_verify  true or false
  tls.ca_cert               path to a PEM CA certificate`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a setting so its default applies",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	endpoint, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	cmd.Printf("  %-26s %s\n", services.KeyEngine+":", endpoint.Engine)
	cmd.Printf("  %-26s %s\n", services.KeyURL+":", endpoint.URL)
	cmd.Printf("  %-26s %s\n", services.KeyUsername+":", orNotSet(endpoint.Username))
	cmd.Printf("  %-26s %s\n", services.KeyPassword+":", maskPassword(endpoint.Password))
	cmd.Printf("  %-26s %s\n", services.KeyTimeout+":", endpoint.EffectiveTimeout())
	cmd.Printf("  %-26s %t\n", services.KeyInsecureSkipVerify+":", endpoint.InsecureSkipVerify)
	cmd.Printf("  %-26s %s\n", services.KeyCACert+":", orNotSet(endpoint.CACertPath))
	cmd.Println()

	if err := endpoint.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	}
	cmd.Printf("Config file: %s\n", settingsService.Path())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if key == services.KeyPassword {
		value = maskPassword(value)
	}
	cmd.Printf("Set %s to %s\n", key, value)
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	if err := settingsService.Unset(key); err != nil {
		return fmt.Errorf("failed to unset %s: %w", key, err)
	}

	cmd.Printf("Unset %s\n", key)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	cmd.Println(settingsService.Path())
	return nil
}

func maskPassword(password string) string {
	if password == "" {
		return "(not set)"
	}
	if len(password) <= 8 {
		return "****"
	}
	return password[:2] + "..." + password[len(password)-2:]
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
