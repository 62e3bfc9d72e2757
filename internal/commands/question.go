package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mentahq/menta/internal/check"
)

var questionCmd = &cobra.Command{
	Use:   "question",
	Short: "Manage the question bank",
	Long: `Each technology has a bank of check questions that mentors rate during
reviews. Archived questions disappear from new reviews but stay in past
results.`,
}

var questionAddCmd = &cobra.Command{
	Use:   "add [technology] [text...]",
	Short: "Add a question to a technology's bank",
	Args:  cobra.MinimumNArgs(2),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		ctx := context.Background()
		tech, err := findTech(ctx, a, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		authorEmail, _ := cmd.Flags().GetString("author")
		if authorEmail == "" {
			fmt.Println("Error: --author is required")
			return
		}
		author, err := findMentor(ctx, a, authorEmail)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		q, err := a.check.CreateQuestion(ctx, check.CreateQuestionInput{
			TechnologyID: tech.ID,
			MentorID:     author.ID,
			Text:         strings.Join(args[1:], " "),
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Added question to %s: %s\n", tech.Name, q.Text)
	}),
}

var questionListCmd = &cobra.Command{
	Use:     "ls [technology]",
	Aliases: []string{"list"},
	Short:   "List a technology's questions",
	Args:    cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		ctx := context.Background()
		tech, err := findTech(ctx, a, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		all, _ := cmd.Flags().GetBool("all")

		questions, err := a.check.ListQuestions(ctx, tech.ID, all)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(questions) == 0 {
			fmt.Printf("No questions for %s yet. Use 'menta question add' to create one.\n", tech.Name)
			return
		}
		for i, q := range questions {
			marker := ""
			if !q.Active {
				marker = " (archived)"
			}
			fmt.Printf("%2d. %s%s\n", i+1, q.Text, marker)
		}
	}),
}

var questionArchiveCmd = &cobra.Command{
	Use:   "archive [technology] [number]",
	Short: "Archive a question",
	Long:  `Archive the Nth question of 'menta question ls'. Past review results keep it.`,
	Args:  cobra.ExactArgs(2),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		ctx := context.Background()
		tech, err := findTech(ctx, a, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		questions, err := a.check.ListQuestions(ctx, tech.ID, false)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 || n > len(questions) {
			fmt.Printf("Error: invalid question number '%s'\n", args[1])
			return
		}

		q, err := a.check.ArchiveQuestion(ctx, questions[n-1].ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🗃️  Archived question: %s\n", q.Text)
	}),
}

func init() {
	questionAddCmd.Flags().StringP("author", "a", "", "Authoring mentor's email (required)")
	questionListCmd.Flags().Bool("all", false, "Include archived questions")
	questionCmd.AddCommand(questionAddCmd)
	questionCmd.AddCommand(questionListCmd)
	questionCmd.AddCommand(questionArchiveCmd)
}
