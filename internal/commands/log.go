package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log [trainee-email] [text...]",
	Short: "Log a daily status update for a trainee",
	Long: `Record a short note about what the trainee did today. Mentors can
comment on updates and everyone can read the history.

Examples:
  menta log tom@example.com "finished the generators chapter"
  menta log history tom@example.com
  menta log comment tom@example.com 2 --mentor mary@example.com "nice pace"`,
	Args: cobra.MinimumNArgs(2),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		ctx := context.Background()
		trainee, err := findTrainee(ctx, a, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		upd, err := a.status.LogUpdate(ctx, trainee.ID, strings.Join(args[1:], " "))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("📝 Logged update for %s at %s\n", trainee.FullName, upd.CreatedAt.Format("15:04:05"))
	}),
}

var logHistoryCmd = &cobra.Command{
	Use:   "history [trainee-email]",
	Short: "Show a trainee's status updates with comments",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		ctx := context.Background()
		trainee, err := findTrainee(ctx, a, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		entries, err := a.status.History(ctx, trainee.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(entries) == 0 {
			fmt.Printf("No status updates from %s yet.\n", trainee.FullName)
			return
		}
		for i, e := range entries {
			fmt.Printf("%2d. %s — %s\n", i+1, e.Update.CreatedAt.Format("02/01/2006 15:04"), e.Update.Text)
			for _, fb := range e.Feedback {
				author := fb.MentorID.String()
				if mentor, err := a.store.Users().GetByID(ctx, fb.MentorID); err == nil {
					author = mentor.FullName
				}
				fmt.Printf("    💬 %s: %s\n", author, fb.Text)
			}
		}
	}),
}

var logCommentCmd = &cobra.Command{
	Use:   "comment [trainee-email] [number] [text...]",
	Short: "Comment on a trainee's status update",
	Long:  `Attach a mentor comment to the Nth update of 'menta log history'.`,
	Args:  cobra.MinimumNArgs(3),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		ctx := context.Background()
		trainee, err := findTrainee(ctx, a, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		mentorEmail, _ := cmd.Flags().GetString("mentor")
		if mentorEmail == "" {
			fmt.Println("Error: --mentor is required")
			return
		}
		mentor, err := findMentor(ctx, a, mentorEmail)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		entries, err := a.status.History(ctx, trainee.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 || n > len(entries) {
			fmt.Printf("Error: invalid update number '%s'\n", args[1])
			return
		}

		_, err = a.status.Comment(ctx, entries[n-1].Update.ID, mentor.ID, strings.Join(args[2:], " "))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("💬 Comment added to %s's update #%d\n", trainee.FullName, n)
	}),
}

func init() {
	logCommentCmd.Flags().StringP("mentor", "m", "", "Commenting mentor's email (required)")
	logCmd.AddCommand(logHistoryCmd)
	logCmd.AddCommand(logCommentCmd)
}
