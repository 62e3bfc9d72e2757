package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mentahq/menta/internal/check"
	"github.com/mentahq/menta/internal/models"
	"github.com/mentahq/menta/internal/tui"
)

var reviewCmd = &cobra.Command{
	Use:   "review [trainee-email] [technology]",
	Short: "Submit a review for a task card",
	Long: `Record a mentor's review: an overall verdict, written feedback and
per-question ratings, saved as one batch. Opens an interactive form by
default; with --outcome and --feedback it submits directly.

Ratings are given as question-number=rating[:comment] against the
numbering of 'menta question ls'.

Examples:
  menta review tom@example.com python
  menta review tom@example.com python --outcome approved \
    --feedback "Good grasp of the basics" --rate 1=correct --rate 2=partial:shaky
  menta review tom@example.com python --history`,
	Args: cobra.ExactArgs(2),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		ctx := context.Background()
		trainee, tech, card, err := findCard(ctx, a, args[0], args[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if history, _ := cmd.Flags().GetBool("history"); history {
			printReviewHistory(ctx, a, card.ID)
			return
		}

		mentor, err := a.store.Users().GetByID(ctx, card.MentorID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		outcome, _ := cmd.Flags().GetString("outcome")
		feedback, _ := cmd.Flags().GetString("feedback")
		rates, _ := cmd.Flags().GetStringArray("rate")

		questions, err := a.check.ListQuestions(ctx, tech.ID, false)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if outcome == "" && feedback == "" {
			// Interactive form.
			submitted, err := tui.RunReviewTUI(tui.ReviewInfo{
				Trainee:    *trainee,
				Technology: *tech,
				Card:       *card,
				Questions:  questions,
			}, func(in check.SubmitReviewInput) error {
				in.TaskCardID = card.ID
				in.MentorID = mentor.ID
				_, err := a.check.SubmitReview(ctx, in)
				return err
			})
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			if !submitted {
				fmt.Println("❌ Review cancelled.")
				return
			}
		} else {
			results, err := parseRatings(rates, questions)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			_, err = a.check.SubmitReview(ctx, check.SubmitReviewInput{
				TaskCardID: card.ID,
				MentorID:   mentor.ID,
				Outcome:    outcome,
				Feedback:   feedback,
				Results:    results,
			})
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
		}

		updated, err := a.store.TaskCards().GetByID(ctx, card.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Review recorded for %s / %s — card is now %s\n", trainee.FullName, tech.Name, updated.State)
	}),
}

// parseRatings turns --rate N=rating[:comment] flags into result inputs,
// resolving N (1-based) against the active question list.
func parseRatings(rates []string, questions []models.CheckQuestion) ([]check.ResultInput, error) {
	results := make([]check.ResultInput, 0, len(rates))
	for _, raw := range rates {
		idx, rest, found := strings.Cut(raw, "=")
		if !found {
			return nil, fmt.Errorf("invalid rating %q, expected N=rating[:comment]", raw)
		}
		n, err := strconv.Atoi(strings.TrimSpace(idx))
		if err != nil || n < 1 || n > len(questions) {
			return nil, fmt.Errorf("invalid question number %q, see 'menta question ls'", idx)
		}
		rating, comment, _ := strings.Cut(rest, ":")
		results = append(results, check.ResultInput{
			QuestionID: questions[n-1].ID,
			Rating:     strings.TrimSpace(rating),
			Comment:    strings.TrimSpace(comment),
		})
	}
	return results, nil
}

func printReviewHistory(ctx context.Context, a *app, cardID uuid.UUID) {
	history, err := a.check.History(ctx, cardID)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if len(history) == 0 {
		fmt.Println("No reviews yet.")
		return
	}
	for i, entry := range history {
		r := entry.Review
		fmt.Printf("#%d %s — %s\n", i+1, r.CreatedAt.Format("02/01/2006 15:04"), strings.ToUpper(string(r.Outcome)))
		fmt.Printf("   %s\n", r.Feedback)
		for _, res := range entry.Results {
			line := fmt.Sprintf("   • %s: %s", res.QuestionID, res.Rating)
			if q, err := a.store.Questions().GetByID(ctx, res.QuestionID); err == nil {
				line = fmt.Sprintf("   • %s: %s", q.Text, res.Rating)
			}
			if res.Comment != "" {
				line += " (" + res.Comment + ")"
			}
			fmt.Println(line)
		}
	}
}

func init() {
	reviewCmd.Flags().String("outcome", "", "Verdict: approved or rejected")
	reviewCmd.Flags().String("feedback", "", "Written feedback (at least 10 characters)")
	reviewCmd.Flags().StringArray("rate", nil, "Question rating: N=correct|partial|incorrect[:comment]")
	reviewCmd.Flags().Bool("history", false, "Show past reviews for this card")
}
