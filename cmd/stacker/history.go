package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stacker/internal/journal"
)

var (
	flagHistoryLimit   int
	flagHistorySummary bool
	flagHistoryClear   bool
)

var historyCmd = &cobra.Command{
	Use:   "history [engine]",
	Short: "Show recorded sessions",
	Long: `Display the most recent sessions from the journal, optionally for one
engine only.

Examples:
  stacker history
  stacker history replay --limit 50
  stacker history --summary
  stacker history replay --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of sessions to show")
	historyCmd.Flags().BoolVar(&flagHistorySummary, "summary", false, "Show per-engine totals instead of sessions")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the recorded sessions")
}

func runHistory(_ *cobra.Command, args []string) error {
	engine := ""
	if len(args) > 0 {
		engine = args[0]
	}

	store, err := journal.Open(appConfig.Journal.Path)
	if err != nil {
		return fmt.Errorf("cannot open journal: %w", err)
	}
	defer store.Close()

	switch {
	case flagHistoryClear:
		if err := store.Clear(engine); err != nil {
			return err
		}
		fmt.Println("Journal cleared.")
		return nil
	case flagHistorySummary:
		return printSummaries(store)
	}

	records, err := store.Recent(engine, flagHistoryLimit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'stacker play' to record the first one!")
		return nil
	}

	// Print header
	fmt.Printf("  %-5s  %-16s  %-10s  %-8s  %-9s  %-7s  %-9s  %s\n",
		"ID", "Date", "Engine", "Surface", "Reason", "Ticks", "Duration", "User")
	fmt.Printf("  %-5s  %-16s  %-10s  %-8s  %-9s  %-7s  %-9s  %s\n",
		"--", "----", "------", "-------", "------", "-----", "--------", "----")

	for _, r := range records {
		fmt.Printf("  %-5d  %-16s  %-10s  %-8s  %-9s  %-7d  %-9s  %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Engine, r.Surface,
			r.Reason, r.Ticks, r.Duration.Round(time.Millisecond), r.User)
		if r.Error != "" {
			fmt.Printf("         error: %s\n", r.Error)
		}
	}
	return nil
}

func printSummaries(store *journal.Store) error {
	sums, err := store.Summaries()
	if err != nil {
		return err
	}
	if len(sums) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}

	fmt.Printf("  %-10s  %-8s  %-9s  %-6s  %-8s  %s\n", "Engine", "Sessions", "Game over", "Errors", "Ticks", "Longest")
	fmt.Printf("  %-10s  %-8s  %-9s  %-6s  %-8s  %s\n", "------", "--------", "---------", "------", "-----", "-------")
	for _, s := range sums {
		fmt.Printf("  %-10s  %-8d  %-9d  %-6d  %-8d  %s\n",
			s.Engine, s.Sessions, s.GameOver, s.Errors, s.Ticks, s.Longest.Round(time.Millisecond))
	}
	return nil
}
