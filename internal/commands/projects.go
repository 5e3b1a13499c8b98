package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Brottuetchen/TimeTrack/internal/db"
	"github.com/Brottuetchen/TimeTrack/internal/models"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage projects and milestones",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects with their milestones",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		initDB(cfg)
		defer db.Close()

		projects, err := db.ListProjects()
		if err != nil {
			fmt.Printf("Error fetching projects: %v\n", err)
			os.Exit(1)
		}

		if len(projects) == 0 {
			fmt.Println("No projects found. Use 'timetrack projects add' to create one.")
			return
		}

		for _, project := range projects {
			fmt.Printf("#%d %s", project.ID, project.Name)
			if project.Customer != "" {
				fmt.Printf(" (%s)", project.Customer)
			}
			fmt.Println()
			for _, milestone := range project.Milestones {
				fmt.Printf("    #%d %s (%.0f/%.0fh)\n",
					milestone.ID, milestone.Name, milestone.ActualHours, milestone.TargetHours)
			}
		}
	},
}

var projectsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a new project",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		initDB(cfg)
		defer db.Close()

		project := models.Project{Name: strings.Join(args, " ")}
		project.Customer, _ = cmd.Flags().GetString("customer")
		project.Notes, _ = cmd.Flags().GetString("notes")

		if err := db.CreateProject(&project); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✅ Project \"%s\" created - ID: %d\n", project.Name, project.ID)
	},
}

func init() {
	projectsAddCmd.Flags().String("customer", "", "Customer name")
	projectsAddCmd.Flags().String("notes", "", "Free-form notes")

	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsAddCmd)
}
