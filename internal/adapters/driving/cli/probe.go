package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/searchprobe/internal/core/domain"
	"github.com/custodia-labs/searchprobe/internal/core/ports/driving"
	"github.com/custodia-labs/searchprobe/internal/logger"
)

var (
	probeURL         string
	probeUsername    string
	probePassword    string
	probeAskPassword bool
	probeEngine      string
	probeTimeout     time.Duration
	probeInsecure    bool
	probeCACert      string
	probeJSON        bool
	probeWait        time.Duration
	probeInterval    time.Duration
	probeRecord      bool
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Fetch server info to check connectivity",
	Long: `Fetches server info from the search engine once and prints it.

This is what searchprobe does when run without a command. Exits 0 when the
service answered and accepted the credentials, 1 otherwise.

Use --wait to keep trying until the service comes up, for example while a
container is starting.`,
	Args: cobra.NoArgs,
	RunE: runProbe,
}

// passwordReader reads a password when --ask-password is set.
// Replaced in tests.
var passwordReader = readPassword

func init() {
	addProbeFlags(rootCmd)
	addProbeFlags(probeCmd)
	rootCmd.AddCommand(probeCmd)
}

func addProbeFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&probeURL, "url", domain.DefaultURL, "search engine URL")
	flags.StringVarP(&probeUsername, "username", "u", domain.DefaultUsername, "basic auth username (empty disables auth)")
	flags.StringVarP(&probePassword, "password", "p", "", "basic auth password")
	flags.BoolVar(&probeAskPassword, "ask-password", false, "prompt for the password")
	flags.StringVar(&probeEngine, "engine", domain.EngineElasticsearch.String(), "engine flavour: elasticsearch or opensearch")
	flags.DurationVar(&probeTimeout, "timeout", domain.DefaultTimeout, "timeout for each request")
	flags.BoolVar(&probeInsecure, "insecure", false, "skip TLS certificate verification")
	flags.StringVar(&probeCACert, "ca-cert", "", "PEM file with a CA certificate to trust")
	flags.BoolVar(&probeJSON, "json", false, "print the server info as indented JSON")
	flags.DurationVar(&probeWait, "wait", 0, "keep retrying for up to this long")
	flags.DurationVar(&probeInterval, "interval", 0, "pause between attempts with --wait (default 1s)")
	flags.BoolVar(&probeRecord, "record", false, "append the result to the probe history")
}

func runProbe(cmd *cobra.Command, _ []string) error {
	if probeService == nil {
		return errors.New("probe service not configured")
	}

	endpoint, err := resolveEndpoint(cmd)
	if err != nil {
		return err
	}

	if probeWait < 0 || probeInterval < 0 {
		return fmt.Errorf("%w: --wait and --interval must not be negative", domain.ErrInvalidInput)
	}

	ctx := cmd.Context()
	result := probeService.Probe(ctx, endpoint, driving.ProbeOptions{
		Wait:     probeWait,
		Interval: probeInterval,
	})

	if probeRecord {
		if historyService == nil {
			logger.Warn("History not available; result not recorded")
		} else if err := historyService.Record(ctx, result); err != nil {
			logger.Warn("Failed to record probe %s: %v", result.ID, err)
		}
	}

	return printProbeResult(cmd, result)
}

// resolveEndpoint layers flags over the configured settings, which are
// themselves layered over the defaults.
func resolveEndpoint(cmd *cobra.Command) (domain.Endpoint, error) {
	endpoint := domain.DefaultEndpoint()
	if settingsService != nil {
		configured, err := settingsService.Get()
		if err != nil {
			return endpoint, fmt.Errorf("failed to load settings: %w", err)
		}
		endpoint = *configured
	}

	flags := cmd.Flags()
	if flags.Changed("engine") {
		engine, err := domain.ParseEngineType(probeEngine)
		if err != nil {
			return endpoint, err
		}
		endpoint.Engine = engine
	}
	if flags.Changed("url") {
		endpoint.URL = probeURL
	}
	if flags.Changed("username") {
		endpoint.Username = probeUsername
	}
	if flags.Changed("password") {
		endpoint.Password = probePassword
	}
	if flags.Changed("timeout") {
		endpoint.Timeout = probeTimeout
	}
	if flags.Changed("insecure") {
		endpoint.InsecureSkipVerify = probeInsecure
	}
	if flags.Changed("ca-cert") {
		endpoint.CACertPath = probeCACert
	}

	if probeAskPassword {
		password, err := passwordReader(cmd, endpoint.Username)
		if err != nil {
			return endpoint, fmt.Errorf("failed to read password: %w", err)
		}
		endpoint.Password = password
	}

	return endpoint, nil
}

func printProbeResult(cmd *cobra.Command, result *domain.ProbeResult) error {
	styles := newOutputStyles(cmd.OutOrStdout())

	if !result.OK() {
		reason := result.Err
		if reason == nil {
			reason = domain.ErrMalformedResponse
		}
		label := "Failed to connect to " + result.Endpoint.Engine.Description()
		cmd.Printf("%s: %v\n", styles.Failure.Render(label), reason)
		return errProbeFailed
	}

	if probeJSON {
		out, err := result.Info.Indented()
		if err != nil {
			return fmt.Errorf("failed to format server info: %w", err)
		}
		cmd.Println(out)
		return nil
	}

	label := "Successfully connected to " + result.Info.Product()
	cmd.Printf("%s: %s\n", styles.Success.Render(label), result.Info)
	return nil
}

// readPassword prompts on stderr and reads a password without echo when
// stdin is a terminal, or a single line otherwise.
func readPassword(cmd *cobra.Command, username string) (string, error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Password for %s: ", username)

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return string(password), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
