package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mentahq/menta/internal/tui"
)

var startCmd = &cobra.Command{
	Use:   "start [trainee-email] [technology]",
	Short: "Start a learning session",
	Long: `Start a timed learning session on the trainee's task card for the given
technology. Opens an interactive timer by default, use --no-ui for a
simple start. A trainee can have only one running session at a time.

Examples:
  menta start tom@example.com python          # Start with interactive timer
  menta start tom@example.com python --no-ui  # Start without UI`,
	Args: cobra.ExactArgs(2),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		ctx := context.Background()
		trainee, err := findTrainee(ctx, a, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		tech, err := findTech(ctx, a, args[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		card, err := a.workflow.StartLearning(ctx, trainee.ID, tech.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		session, err := a.store.Sessions().FindOpenByTrainee(ctx, trainee.ID)
		if err != nil || session == nil {
			fmt.Printf("⏱️  Started learning %s for %s\n", tech.Name, trainee.FullName)
			return
		}

		noUI, _ := cmd.Flags().GetBool("no-ui")
		if noUI {
			fmt.Printf("⏱️  Started learning %s for %s\n", tech.Name, trainee.FullName)
			fmt.Printf("Started at: %s\n", session.StartedAt.Format("15:04:05"))
			return
		}

		stopped, err := tui.RunTimerTUI(tui.TimerInfo{
			Trainee:    *trainee,
			Technology: *tech,
			Card:       *card,
			Session:    *session,
		}, func() error {
			_, err := a.workflow.StopLearning(ctx, trainee.ID, tech.ID)
			return err
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if stopped {
			fmt.Printf("⏹️  Stopped learning %s for %s — card is ready for review\n", tech.Name, trainee.FullName)
		} else {
			fmt.Printf("\n💡 Session is still running for %s: %s\n", trainee.FullName, tech.Name)
			fmt.Printf("   Use 'menta status %s' to check it or 'menta stop %s' to stop it.\n", trainee.Email, trainee.Email)
		}
	}),
}

var stopCmd = &cobra.Command{
	Use:   "stop [trainee-email]",
	Short: "Stop the trainee's running learning session",
	Long: `Close the trainee's open session and move its task card to
ready_for_review.`,
	Args: cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		ctx := context.Background()
		trainee, err := findTrainee(ctx, a, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		session, err := a.store.Sessions().FindOpenByTrainee(ctx, trainee.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if session == nil {
			fmt.Printf("No running session for %s\n", trainee.FullName)
			return
		}
		openCard, err := a.store.TaskCards().GetByID(ctx, session.TaskCardID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		card, err := a.workflow.StopLearning(ctx, trainee.ID, openCard.TechnologyID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		duration := time.Since(session.StartedAt)
		tech, err := a.store.Technologies().GetByID(ctx, card.TechnologyID)
		name := card.TechnologyID.String()
		if err == nil {
			name = tech.Name
		}
		fmt.Printf("⏹️  Stopped learning %s for %s\n", name, trainee.FullName)
		fmt.Printf("Session duration: %s — card is now %s\n", formatDuration(duration), card.State)
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status [trainee-email]",
	Short: "Show the trainee's current session",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		ctx := context.Background()
		trainee, err := findTrainee(ctx, a, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		session, err := a.store.Sessions().FindOpenByTrainee(ctx, trainee.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if session == nil {
			fmt.Printf("No running session for %s\n", trainee.FullName)
			return
		}

		card, err := a.store.TaskCards().GetByID(ctx, session.TaskCardID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		name := card.TechnologyID.String()
		if tech, err := a.store.Technologies().GetByID(ctx, card.TechnologyID); err == nil {
			name = tech.Name
		}

		fmt.Printf("⏱️  %s is learning %s\n", trainee.FullName, name)
		fmt.Printf("Started at: %s\n", session.StartedAt.Format("15:04:05"))
		fmt.Printf("Elapsed time: %s\n", formatDuration(time.Since(session.StartedAt)))
	}),
}

func init() {
	startCmd.Flags().Bool("no-ui", false, "Start session without interactive timer")
}
