package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mentahq/menta/internal/models"
)

// DashboardEntry is one task card enriched with its derived metrics.
type DashboardEntry struct {
	Card           models.TaskCard
	TechnologyName string
	TotalLearning  time.Duration
	ReviewCount    int
	SessionOpen    bool
}

// Dashboard returns every card for a trainee with total learning time
// (sum of closed session logs), review count, and whether a session is
// running. Read-only; an unknown trainee yields an empty slice.
func (s *Service) Dashboard(ctx context.Context, traineeID uuid.UUID) ([]DashboardEntry, error) {
	cards, err := s.store.TaskCards().ListByTrainee(ctx, traineeID)
	if err != nil {
		return nil, fmt.Errorf("list task cards: %w", err)
	}

	entries := make([]DashboardEntry, 0, len(cards))
	for _, card := range cards {
		logs, err := s.store.Sessions().ListForTaskCard(ctx, card.ID)
		if err != nil {
			return nil, fmt.Errorf("list sessions for card %s: %w", card.ID, err)
		}
		reviews, err := s.store.Reviews().ListForTaskCard(ctx, card.ID)
		if err != nil {
			return nil, fmt.Errorf("list reviews for card %s: %w", card.ID, err)
		}

		entry := DashboardEntry{Card: card, ReviewCount: len(reviews)}
		for _, l := range logs {
			entry.TotalLearning += l.Duration()
			if l.Open() {
				entry.SessionOpen = true
			}
		}
		if tech, err := s.store.Technologies().GetByID(ctx, card.TechnologyID); err == nil {
			entry.TechnologyName = tech.Name
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
