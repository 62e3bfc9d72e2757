package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/mentahq/menta/internal/models"
)

// Commands identify people by email and technologies by name; these
// helpers turn those into records.

func findTrainee(ctx context.Context, a *app, email string) (*models.User, error) {
	u, err := a.store.Users().GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u.Role != models.RoleTrainee {
		return nil, fmt.Errorf("%s is not a trainee", email)
	}
	return u, nil
}

func findMentor(ctx context.Context, a *app, email string) (*models.User, error) {
	u, err := a.store.Users().GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u.Role == models.RoleTrainee {
		return nil, fmt.Errorf("%s is not a mentor", email)
	}
	return u, nil
}

func findTech(ctx context.Context, a *app, name string) (*models.Technology, error) {
	return a.store.Technologies().GetByName(ctx, name)
}

func findCard(ctx context.Context, a *app, traineeEmail, techName string) (*models.User, *models.Technology, *models.TaskCard, error) {
	trainee, err := findTrainee(ctx, a, traineeEmail)
	if err != nil {
		return nil, nil, nil, err
	}
	tech, err := findTech(ctx, a, techName)
	if err != nil {
		return nil, nil, nil, err
	}
	card, err := a.store.TaskCards().FindByTraineeAndTechnology(ctx, trainee.ID, tech.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	if card == nil {
		return nil, nil, nil, fmt.Errorf("%s has no task card for %s, use 'menta plan' first", traineeEmail, techName)
	}
	return trainee, tech, card, nil
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d.Hours() >= 1 {
		return fmt.Sprintf("%.1fh", d.Hours())
	} else if d.Minutes() >= 1 {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	return fmt.Sprintf("%.0fs", d.Seconds())
}

// stateIcon maps a learning state to its display icon.
func stateIcon(s models.LearningState) string {
	switch s {
	case models.StatePlanned:
		return "○"
	case models.StateInProgress:
		return "⏱"
	case models.StateReadyForReview:
		return "📬"
	case models.StateReviewScheduled:
		return "📅"
	case models.StateApproved:
		return "✅"
	case models.StateCancelled:
		return "✖"
	}
	return "?"
}
