package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/searchprobe/internal/core/domain"
)

var (
	historyLimit    int
	historyJSON     bool
	historyShowJSON bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded probes",
	Long: `Lists probes recorded with --record, newest first.

Records never include passwords.`,
	Args: cobra.NoArgs,
	RunE: runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded probes",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single recorded probe",
	Long: `Shows every stored field of one recorded probe.

IDs are printed by 'history --json'.`,
	Args: cobra.ExactArgs(1),
	RunE: runHistoryShow,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of records (0 for all)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output records as JSON")
	historyShowCmd.Flags().BoolVar(&historyShowJSON, "json", false, "output the record as JSON")
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}
	if historyLimit < 0 {
		return fmt.Errorf("%w: --limit must not be negative", domain.ErrInvalidInput)
	}

	records, err := historyService.List(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if historyJSON {
		return outputHistoryJSON(cmd, records)
	}
	return outputHistoryTable(cmd, records)
}

func outputHistoryJSON(cmd *cobra.Command, records []domain.ProbeRecord) error {
	if records == nil {
		records = []domain.ProbeRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputHistoryTable(cmd *cobra.Command, records []domain.ProbeRecord) error {
	if len(records) == 0 {
		cmd.Println("No probes recorded.")
		return nil
	}

	styles := newOutputStyles(cmd.OutOrStdout())

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Muted).
		Headers("TIME", "ENGINE", "URL", "USER", "RESULT", "DURATION").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header.Padding(0, 1)
			}
			return styles.Muted.UnsetForeground().Padding(0, 1)
		})

	for i := range records {
		t.Row(
			records[i].CreatedAt.Local().Format(time.DateTime),
			records[i].Engine.String(),
			records[i].URL,
			orNotSet(records[i].Username),
			historyOutcome(styles, &records[i]),
			records[i].Duration.Round(time.Millisecond).String(),
		)
	}

	cmd.Println(t.Render())
	cmd.Printf("%d record(s)\n", len(records))
	return nil
}

func historyOutcome(styles *outputStyles, r *domain.ProbeRecord) string {
	if r.OK {
		out := "ok"
		if r.Version != "" {
			out += " (" + r.Version + ")"
		}
		return styles.Success.Render(out)
	}
	return styles.Failure.Render("failed: " + r.Error)
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}
	if err := historyService.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	cmd.Println("Probe history cleared.")
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	record, err := historyService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get record %s: %w", args[0], err)
	}

	if historyShowJSON {
		data, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	styles := newOutputStyles(cmd.OutOrStdout())

	cmd.Println(styles.Header.Render("Probe " + record.ID))
	cmd.Println()
	cmd.Printf("  %-14s %s\n", "Time:", record.CreatedAt.Local().Format(time.DateTime))
	cmd.Printf("  %-14s %s\n", "Engine:", record.Engine)
	cmd.Printf("  %-14s %s\n", "URL:", record.URL)
	cmd.Printf("  %-14s %s\n", "Username:", orNotSet(record.Username))
	cmd.Printf("  %-14s %s\n", "Result:", historyOutcome(styles, &record))
	cmd.Printf("  %-14s %s\n", "Cluster:", orNotSet(record.ClusterName))
	cmd.Printf("  %-14s %s\n", "Version:", orNotSet(record.Version))
	cmd.Printf("  %-14s %s\n", "Duration:", record.Duration.Round(time.Millisecond))
	return nil
}
