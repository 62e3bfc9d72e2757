package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mentahq/menta/internal/parser"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule [trainee-email] [technology] [when...]",
	Short: "Schedule a review for a card that is ready",
	Long: `Book a review time for the trainee's task card. The card must be in
ready_for_review.

Time formats: dd/mm/yyyy [hh:mm], "X hours", "X days".

Examples:
  menta schedule tom@example.com python 15/12/2026 14:30
  menta schedule tom@example.com python 2 days`,
	Args: cobra.MinimumNArgs(3),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		ctx := context.Background()
		_, tech, card, err := findCard(ctx, a, args[0], args[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		at, err := parser.ParseWhen(strings.Join(args[2:], " "), time.Now())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		updated, err := a.workflow.ScheduleReview(ctx, card.ID, at)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("📅 Review for %s scheduled: %s\n", tech.Name, parser.FormatWhen(updated.ScheduledReviewAt, time.Now()))
	}),
}

var cancelCmd = &cobra.Command{
	Use:   "cancel [trainee-email] [technology]",
	Short: "Cancel a task card",
	Long: `Move the trainee's task card to cancelled. Works from any state except
approved and cancelled; a running session on the card is closed.`,
	Args: cobra.ExactArgs(2),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		ctx := context.Background()
		trainee, tech, card, err := findCard(ctx, a, args[0], args[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if _, err := a.workflow.Cancel(ctx, card.ID); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✖ Cancelled %s for %s\n", tech.Name, trainee.FullName)
	}),
}
