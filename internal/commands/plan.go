package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan [trainee-email] [technology]",
	Short: "Plan a technology for a trainee",
	Long: `Create a task card: the trainee will learn the given technology under
their assigned mentor. One card per trainee and technology.

Example:
  menta plan tom@example.com python`,
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

		card, err := a.workflow.Plan(ctx, trainee.ID, tech.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Planned %s for %s (%s)\n", tech.Name, trainee.FullName, card.State)
	}),
}
