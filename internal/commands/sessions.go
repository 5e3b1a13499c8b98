package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Brottuetchen/TimeTrack/internal/db"
	"github.com/Brottuetchen/TimeTrack/internal/tui"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List aggregated sessions",
	Long: `List aggregated sessions with their assignments. Use --review to
browse them interactively.

Examples:
  timetrack sessions --user alice
  timetrack sessions --user alice --start "7 days" --review`,
	Run: func(cmd *cobra.Command, args []string) {
		userID, _ := cmd.Flags().GetString("user")

		start, end, err := parseRangeFlags(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		cfg := loadConfig()
		initDB(cfg)
		defer db.Close()

		filter := db.SessionFilter{UserID: userID, Limit: 200}
		if !start.IsZero() {
			filter.Start = &start
		}
		if !end.IsZero() {
			filter.End = &end
		}

		sessions, err := db.ListSessions(filter)
		if err != nil {
			fmt.Printf("Error fetching sessions: %v\n", err)
			os.Exit(1)
		}

		if len(sessions) == 0 {
			fmt.Println("No sessions found. Run 'timetrack aggregate' first.")
			return
		}

		review, _ := cmd.Flags().GetBool("review")
		if review {
			if err := tui.RunSessionReview(sessions); err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			return
		}

		// Print table header
		fmt.Printf("%-4s %-16s %-11s %-30s %-20s %-6s %s\n",
			"ID", "DATE", "TIME", "TITLE", "PROCESS", "EVENTS", "PROJECT")
		fmt.Println(strings.Repeat("-", 100))

		for _, session := range sessions {
			title := session.WindowTitleBase
			if len(title) > 28 {
				title = title[:25] + "..."
			}
			process := session.ProcessName
			if len(process) > 18 {
				process = process[:15] + "..."
			}

			project := ""
			if session.Assignment != nil && session.Assignment.Project != nil {
				project = session.Assignment.Project.Name
			}

			fmt.Printf("%-4d %-16s %s-%s %-30s %-20s %-6d %s\n",
				session.ID,
				session.StartTime.Format("2006-01-02"),
				session.StartTime.Format("15:04"),
				session.EndTime.Format("15:04"),
				title,
				process,
				session.EventCount,
				project)
		}

		total := 0
		for _, session := range sessions {
			total += session.ActiveDurationSeconds
		}
		fmt.Printf("\nTotal active time: %s across %d sessions\n",
			formatDuration(time.Duration(total)*time.Second), len(sessions))
	},
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d.Hours() >= 1 {
		return fmt.Sprintf("%.1fh", d.Hours())
	} else if d.Minutes() >= 1 {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	return fmt.Sprintf("%.0fs", d.Seconds())
}

func init() {
	sessionsCmd.Flags().StringP("user", "u", "", "Filter by user")
	sessionsCmd.Flags().String("start", "", "Range start")
	sessionsCmd.Flags().String("end", "", "Range end")
	sessionsCmd.Flags().Bool("review", false, "Browse sessions interactively")
}
