package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mentahq/menta/internal/parser"
	"github.com/mentahq/menta/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard [trainee-email]",
	Aliases: []string{"dash"},
	Short:   "Show a trainee's learning dashboard",
	Long: `Show every task card of a trainee with its state, total learning time
and review count. Interactive by default, use --no-ui for plain output.`,
	Args: cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		ctx := context.Background()
		trainee, err := findTrainee(ctx, a, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		entries, err := a.workflow.Dashboard(ctx, trainee.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(entries) == 0 {
			fmt.Printf("No task cards for %s. Use 'menta plan' to create one.\n", trainee.FullName)
			return
		}

		noUI, _ := cmd.Flags().GetBool("no-ui")
		if !noUI {
			if err := tui.RunDashboardTUI(*trainee, entries); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			return
		}

		fmt.Printf("Dashboard for %s\n\n", trainee.FullName)
		fmt.Printf("%-20s %-18s %-10s %-8s %s\n", "TECHNOLOGY", "STATE", "TIME", "REVIEWS", "SCHEDULED")
		fmt.Println(strings.Repeat("-", 76))
		for _, e := range entries {
			name := e.TechnologyName
			if len(name) > 18 {
				name = name[:15] + "..."
			}
			timeStr := formatDuration(e.TotalLearning)
			if e.SessionOpen {
				timeStr += " ⏱"
			}
			fmt.Printf("%-20s %-18s %-10s %-8d %s\n",
				name,
				fmt.Sprintf("%s %s", stateIcon(e.Card.State), e.Card.State),
				timeStr,
				e.ReviewCount,
				parser.FormatWhen(e.Card.ScheduledReviewAt, time.Now()))
		}
	}),
}

var queueCmd = &cobra.Command{
	Use:   "queue [mentor-email]",
	Short: "Show a mentor's review queue",
	Long: `List the mentor's task cards that need attention: ready for review or
with a review scheduled.`,
	Args: cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		ctx := context.Background()
		mentor, err := findMentor(ctx, a, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		cards, err := a.workflow.MentorQueue(ctx, mentor.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(cards) == 0 {
			fmt.Printf("Nothing waiting for %s 🎉\n", mentor.FullName)
			return
		}

		fmt.Printf("%-28s %-20s %-18s %s\n", "TRAINEE", "TECHNOLOGY", "STATE", "SCHEDULED")
		fmt.Println(strings.Repeat("-", 80))
		for _, card := range cards {
			traineeName := card.TraineeID.String()
			if trainee, err := a.store.Users().GetByID(ctx, card.TraineeID); err == nil {
				traineeName = trainee.FullName
			}
			techName := card.TechnologyID.String()
			if tech, err := a.store.Technologies().GetByID(ctx, card.TechnologyID); err == nil {
				techName = tech.Name
			}
			fmt.Printf("%-28s %-20s %-18s %s\n",
				traineeName,
				techName,
				fmt.Sprintf("%s %s", stateIcon(card.State), card.State),
				parser.FormatWhen(card.ScheduledReviewAt, time.Now()))
		}
	}),
}

func init() {
	dashboardCmd.Flags().Bool("no-ui", false, "Plain text output")
}
