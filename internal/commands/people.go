package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mentahq/menta/internal/models"
)

var mentorCmd = &cobra.Command{
	Use:   "mentor",
	Short: "Manage mentors",
}

var mentorAddCmd = &cobra.Command{
	Use:   "add [email] [full name]",
	Short: "Register a mentor",
	Args:  cobra.MinimumNArgs(2),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		u := models.User{
			ID:        uuid.New(),
			Email:     strings.ToLower(args[0]),
			FullName:  strings.Join(args[1:], " "),
			Role:      models.RoleMentor,
			Active:    true,
			CreatedAt: time.Now(),
		}
		if err := a.store.Users().Add(context.Background(), u); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Registered mentor %s <%s>\n", u.FullName, u.Email)
	}),
}

var mentorListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List mentors and their trainees",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		ctx := context.Background()
		mentors, err := a.store.Users().ListByRole(ctx, models.RoleMentor, models.RoleAdmin)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(mentors) == 0 {
			fmt.Println("No mentors yet. Use 'menta mentor add <email> <name>' to register one.")
			return
		}
		for _, m := range mentors {
			trainees, err := a.store.Users().ListTraineesForMentor(ctx, m.ID)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			fmt.Printf("%s <%s> — %d trainee(s)\n", m.FullName, m.Email, len(trainees))
		}
	}),
}

var traineeCmd = &cobra.Command{
	Use:   "trainee",
	Short: "Manage trainees",
}

var traineeAddCmd = &cobra.Command{
	Use:   "add [email] [full name]",
	Short: "Register a trainee under a mentor",
	Args:  cobra.MinimumNArgs(2),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		ctx := context.Background()
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

		u := models.User{
			ID:        uuid.New(),
			Email:     strings.ToLower(args[0]),
			FullName:  strings.Join(args[1:], " "),
			Role:      models.RoleTrainee,
			Active:    true,
			CreatedAt: time.Now(),
			MentorID:  mentor.ID,
		}
		if err := a.store.Users().Add(ctx, u); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Registered trainee %s <%s> with mentor %s\n", u.FullName, u.Email, mentor.FullName)
	}),
}

var traineeListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List trainees",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		trainees, err := a.store.Users().ListByRole(context.Background(), models.RoleTrainee)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(trainees) == 0 {
			fmt.Println("No trainees yet. Use 'menta trainee add <email> <name> --mentor <email>' to register one.")
			return
		}
		for _, t := range trainees {
			fmt.Printf("%s <%s>\n", t.FullName, t.Email)
		}
	}),
}

func init() {
	mentorCmd.AddCommand(mentorAddCmd)
	mentorCmd.AddCommand(mentorListCmd)
	traineeAddCmd.Flags().StringP("mentor", "m", "", "Mentor's email (required)")
	traineeCmd.AddCommand(traineeAddCmd)
	traineeCmd.AddCommand(traineeListCmd)
}
