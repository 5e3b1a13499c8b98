package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Brottuetchen/TimeTrack/internal/db"
	"github.com/Brottuetchen/TimeTrack/internal/parser"
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Cluster a user's window events into sessions",
	Long: `Run the offline session aggregation for a user and time range.
Prior sessions in the range are replaced, then assignment rules are
applied to the new sessions.

Examples:
  timetrack aggregate --user alice
  timetrack aggregate --user alice --start "7 days" --end now
  timetrack aggregate --user alice --start 2024-03-18T00:00:00Z`,
	Run: func(cmd *cobra.Command, args []string) {
		userID, _ := cmd.Flags().GetString("user")
		if userID == "" {
			fmt.Println("Error: --user is required")
			os.Exit(1)
		}

		start, end, err := parseRangeFlags(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		cfg := loadConfig()
		initDB(cfg)
		defer db.Close()

		logger := newLogger()
		defer logger.Sync()

		result, err := db.AggregateUserEvents(userID, start, end, cfg.Aggregation, logger)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("✅ Aggregated %s → %s\n",
			result.Start.Format("2006-01-02 15:04"),
			result.End.Format("2006-01-02 15:04"))
		fmt.Printf("Sessions created: %d\n", result.SessionsCreated)
		fmt.Printf("Rule matches:     %d\n", result.RuleMatches)
	},
}

// parseRangeFlags reads the shared --start/--end flags. Zero times mean
// "use the default range".
func parseRangeFlags(cmd *cobra.Command) (time.Time, time.Time, error) {
	var start, end time.Time

	startArg, _ := cmd.Flags().GetString("start")
	if t, err := parser.ParseTimeArg(startArg); err != nil {
		return start, end, fmt.Errorf("invalid --start: %w", err)
	} else if t != nil {
		start = *t
	}

	endArg, _ := cmd.Flags().GetString("end")
	if t, err := parser.ParseTimeArg(endArg); err != nil {
		return start, end, fmt.Errorf("invalid --end: %w", err)
	} else if t != nil {
		end = *t
	}

	return start, end, nil
}

func init() {
	aggregateCmd.Flags().StringP("user", "u", "", "User whose events to aggregate")
	aggregateCmd.Flags().String("start", "", "Range start (RFC3339, dd/mm/yyyy, '7 days', 'today')")
	aggregateCmd.Flags().String("end", "", "Range end (defaults to now)")
}
