package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Brottuetchen/TimeTrack/internal/db"
	"github.com/Brottuetchen/TimeTrack/internal/models"
	"github.com/Brottuetchen/TimeTrack/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage assignment rules",
	Long:  "List, create, toggle and test the rules that auto-classify events and sessions.",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List assignment rules",
	Run: func(cmd *cobra.Command, args []string) {
		userID, _ := cmd.Flags().GetString("user")

		cfg := loadConfig()
		initDB(cfg)
		defer db.Close()

		ruleSet, err := db.ListRules(userID)
		if err != nil {
			fmt.Printf("Error fetching rules: %v\n", err)
			os.Exit(1)
		}

		if len(ruleSet) == 0 {
			fmt.Println("No rules found. Use 'timetrack rules add' to create one.")
			return
		}

		fmt.Printf("%-4s %-8s %-7s %-24s %-20s %-20s %s\n",
			"ID", "PRIORITY", "ENABLED", "NAME", "PROCESS", "TITLE", "PROJECT")
		fmt.Println(strings.Repeat("-", 100))

		for _, rule := range ruleSet {
			title := rule.TitleContains
			if title == "" && rule.TitleRegex != "" {
				title = "~" + rule.TitleRegex
			}
			fmt.Printf("%-4d %-8d %-7t %-24s %-20s %-20s #%d\n",
				rule.ID, rule.Priority, rule.Enabled, rule.Name,
				rule.ProcessPattern, title, rule.AutoProjectID)
		}
	},
}

var rulesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a new assignment rule",
	Long: `Create a new assignment rule. At least one condition should be set;
a rule without conditions matches everything.

Example:
  timetrack rules add "autocad work" --user alice --process "acad*" --project 7 --priority 10`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		userID, _ := cmd.Flags().GetString("user")
		projectID, _ := cmd.Flags().GetUint("project")
		if userID == "" || projectID == 0 {
			fmt.Println("Error: --user and --project are required")
			os.Exit(1)
		}

		rule := models.AssignmentRule{
			UserID:  userID,
			Name:    args[0],
			Enabled: true,
		}
		rule.ProcessPattern, _ = cmd.Flags().GetString("process")
		rule.TitleContains, _ = cmd.Flags().GetString("contains")
		rule.TitleRegex, _ = cmd.Flags().GetString("regex")
		rule.Priority, _ = cmd.Flags().GetInt("priority")
		rule.AutoProjectID = projectID
		rule.AutoActivity, _ = cmd.Flags().GetString("activity")
		rule.AutoCommentTemplate, _ = cmd.Flags().GetString("comment")

		if milestoneID, _ := cmd.Flags().GetUint("milestone"); milestoneID != 0 {
			rule.AutoMilestoneID = &milestoneID
		}

		cfg := loadConfig()
		initDB(cfg)
		defer db.Close()

		if err := db.CreateRule(&rule); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("✅ Rule \"%s\" created - ID: %d\n", rule.Name, rule.ID)
	},
}

var rulesEnableCmd = &cobra.Command{
	Use:   "enable <id>",
	Short: "Enable a rule",
	Args:  cobra.ExactArgs(1),
	Run:   func(cmd *cobra.Command, args []string) { toggleRule(args[0], true) },
}

var rulesDisableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Disable a rule",
	Args:  cobra.ExactArgs(1),
	Run:   func(cmd *cobra.Command, args []string) { toggleRule(args[0], false) },
}

var rulesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a rule",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid rule ID '%s'\n", args[0])
			os.Exit(1)
		}

		cfg := loadConfig()
		initDB(cfg)
		defer db.Close()

		if err := db.DeleteRule(uint(id)); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("🗑️  Rule #%d deleted\n", id)
	},
}

var rulesTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Evaluate the rule set against a synthetic event",
	Long: `Build a synthetic window event from flags and report which rule
would fire, without storing anything.

Example:
  timetrack rules test --user alice --process acad.exe --title "Hall.dwg - AutoCAD"`,
	Run: func(cmd *cobra.Command, args []string) {
		userID, _ := cmd.Flags().GetString("user")
		if userID == "" {
			fmt.Println("Error: --user is required")
			os.Exit(1)
		}

		cfg := loadConfig()
		initDB(cfg)
		defer db.Close()

		ruleSet, err := db.GetEnabledRules(userID)
		if err != nil {
			fmt.Printf("Error fetching rules: %v\n", err)
			os.Exit(1)
		}

		process, _ := cmd.Flags().GetString("process")
		title, _ := cmd.Flags().GetString("title")

		now := time.Now()
		end := now.Add(10 * time.Minute)
		event := &models.Event{
			SourceType:      models.SourceWindow,
			TimestampStart:  now,
			TimestampEnd:    &end,
			DurationSeconds: 600,
			ProcessName:     process,
			WindowTitle:     title,
			UserID:          userID,
		}

		assignment := rules.NewEngine(zap.NewNop()).MatchEvent(event, ruleSet)
		if assignment == nil {
			fmt.Println("No rule matches.")
			return
		}

		fmt.Printf("✅ Match: project #%d", assignment.ProjectID)
		if assignment.MilestoneID != nil {
			fmt.Printf(", milestone #%d", *assignment.MilestoneID)
		}
		if assignment.ActivityType != "" {
			fmt.Printf(", activity %q", assignment.ActivityType)
		}
		fmt.Printf("\nComment: %s\n", assignment.Comment)
	},
}

func toggleRule(arg string, enabled bool) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		fmt.Printf("Error: invalid rule ID '%s'\n", arg)
		os.Exit(1)
	}

	cfg := loadConfig()
	initDB(cfg)
	defer db.Close()

	rule, err := db.SetRuleEnabled(uint(id), enabled)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	state := "disabled"
	if enabled {
		state = "enabled"
	}
	fmt.Printf("✅ Rule \"%s\" %s\n", rule.Name, state)
}

func init() {
	rulesListCmd.Flags().StringP("user", "u", "", "Filter by user")

	rulesAddCmd.Flags().StringP("user", "u", "", "Rule owner")
	rulesAddCmd.Flags().String("process", "", "Process wildcard pattern (* and ?)")
	rulesAddCmd.Flags().String("contains", "", "Title substring condition")
	rulesAddCmd.Flags().String("regex", "", "Title regex condition")
	rulesAddCmd.Flags().Int("priority", 0, "Evaluation priority (higher first)")
	rulesAddCmd.Flags().Uint("project", 0, "Target project ID")
	rulesAddCmd.Flags().Uint("milestone", 0, "Target milestone ID")
	rulesAddCmd.Flags().String("activity", "", "Activity type to assign")
	rulesAddCmd.Flags().String("comment", "", "Comment template ({title}, {process})")

	rulesTestCmd.Flags().StringP("user", "u", "", "Rule owner")
	rulesTestCmd.Flags().String("process", "", "Synthetic process name")
	rulesTestCmd.Flags().String("title", "", "Synthetic window title")

	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesAddCmd)
	rulesCmd.AddCommand(rulesEnableCmd)
	rulesCmd.AddCommand(rulesDisableCmd)
	rulesCmd.AddCommand(rulesDeleteCmd)
	rulesCmd.AddCommand(rulesTestCmd)
}
