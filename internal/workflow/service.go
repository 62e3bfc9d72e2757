// Package workflow implements the learning-progress state machine: it
// validates task card transitions, opens and closes session logs, and
// keeps the one-open-session-per-trainee rule intact.
package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mentahq/menta/internal/models"
	"github.com/mentahq/menta/internal/repository"
)

// Service drives task cards through the learning workflow. It is
// stateless; every call reloads what it needs from the store and applies
// its writes inside a single transaction.
type Service struct {
	store repository.Store
	log   *slog.Logger
	now   func() time.Time
}

// NewService creates a workflow service over the given store.
func NewService(store repository.Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

// WithClock overrides the time source. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// StartLearning moves the (trainee, technology) card to in_progress and
// opens a session log. The open-session check runs before the transition
// check: "you already have something running" is the more actionable
// failure for a trainee double-starting.
func (s *Service) StartLearning(ctx context.Context, traineeID, technologyID uuid.UUID) (*models.TaskCard, error) {
	var updated *models.TaskCard
	err := s.store.Atomic(ctx, func(tx repository.Store) error {
		open, err := tx.Sessions().FindOpenByTrainee(ctx, traineeID)
		if err != nil {
			return fmt.Errorf("find open session: %w", err)
		}
		if open != nil {
			return &models.SessionConflictError{TaskCardID: open.TaskCardID}
		}

		card, err := tx.TaskCards().FindByTraineeAndTechnology(ctx, traineeID, technologyID)
		if err != nil {
			return fmt.Errorf("find task card: %w", err)
		}
		if card == nil {
			return &models.NotFoundError{Entity: "task card", Key: traineeID.String() + "/" + technologyID.String()}
		}

		if err := ValidateStart(card.State); err != nil {
			return err
		}

		now := s.now()
		log := models.NewSessionLog(card.ID, now)
		next := card.WithState(models.StateInProgress)

		if err := tx.Sessions().Add(ctx, log); err != nil {
			return fmt.Errorf("add session log: %w", err)
		}
		if err := tx.TaskCards().Update(ctx, next); err != nil {
			return fmt.Errorf("update task card: %w", err)
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("learning started",
		"trainee", traineeID, "technology", technologyID, "card", updated.ID)
	return updated, nil
}

// StopLearning closes the trainee's open session and moves the card to
// ready_for_review. An open session that belongs to a different card than
// the one requested is a session-ownership conflict, reported the same
// way as a double start.
func (s *Service) StopLearning(ctx context.Context, traineeID, technologyID uuid.UUID) (*models.TaskCard, error) {
	var updated *models.TaskCard
	err := s.store.Atomic(ctx, func(tx repository.Store) error {
		card, err := tx.TaskCards().FindByTraineeAndTechnology(ctx, traineeID, technologyID)
		if err != nil {
			return fmt.Errorf("find task card: %w", err)
		}
		if card == nil {
			return &models.NotFoundError{Entity: "task card", Key: traineeID.String() + "/" + technologyID.String()}
		}

		if err := ValidateTransition(card.State, models.StateReadyForReview); err != nil {
			return err
		}

		open, err := tx.Sessions().FindOpenByTrainee(ctx, traineeID)
		if err != nil {
			return fmt.Errorf("find open session: %w", err)
		}
		if open == nil {
			return &models.NoActiveSessionError{TraineeID: traineeID}
		}
		if open.TaskCardID != card.ID {
			return &models.SessionConflictError{TaskCardID: open.TaskCardID}
		}

		closed := open.Closed(s.now())
		next := card.WithState(models.StateReadyForReview)

		if err := tx.Sessions().Update(ctx, closed); err != nil {
			return fmt.Errorf("close session log: %w", err)
		}
		if err := tx.TaskCards().Update(ctx, next); err != nil {
			return fmt.Errorf("update task card: %w", err)
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("learning stopped",
		"trainee", traineeID, "technology", technologyID, "card", updated.ID)
	return updated, nil
}

// ScheduleReview books a review time for a card that is ready for review.
func (s *Service) ScheduleReview(ctx context.Context, taskCardID uuid.UUID, at time.Time) (*models.TaskCard, error) {
	var updated *models.TaskCard
	err := s.store.Atomic(ctx, func(tx repository.Store) error {
		card, err := tx.TaskCards().GetByID(ctx, taskCardID)
		if err != nil {
			return err
		}
		if err := ValidateTransition(card.State, models.StateReviewScheduled); err != nil {
			return err
		}
		next := card.WithScheduledReview(at)
		if err := tx.TaskCards().Update(ctx, next); err != nil {
			return fmt.Errorf("update task card: %w", err)
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("review scheduled", "card", taskCardID, "at", at)
	return updated, nil
}

// Cancel moves a card to cancelled from any non-terminal state, closing
// the card's open session if one is running.
func (s *Service) Cancel(ctx context.Context, taskCardID uuid.UUID) (*models.TaskCard, error) {
	var updated *models.TaskCard
	err := s.store.Atomic(ctx, func(tx repository.Store) error {
		card, err := tx.TaskCards().GetByID(ctx, taskCardID)
		if err != nil {
			return err
		}
		if card.State == models.StateApproved {
			return &models.AlreadyApprovedError{TaskCardID: card.ID}
		}
		if err := ValidateTransition(card.State, models.StateCancelled); err != nil {
			return err
		}

		open, err := tx.Sessions().FindOpenByTrainee(ctx, card.TraineeID)
		if err != nil {
			return fmt.Errorf("find open session: %w", err)
		}
		if open != nil && open.TaskCardID == card.ID {
			if err := tx.Sessions().Update(ctx, open.Closed(s.now())); err != nil {
				return fmt.Errorf("close session log: %w", err)
			}
		}

		next := card.WithState(models.StateCancelled)
		if err := tx.TaskCards().Update(ctx, next); err != nil {
			return fmt.Errorf("update task card: %w", err)
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("task card cancelled", "card", taskCardID)
	return updated, nil
}

// Plan creates a planned task card for a trainee and technology, wiring
// it to the trainee's assigned mentor. The store rejects a duplicate
// (trainee, technology) pair.
func (s *Service) Plan(ctx context.Context, traineeID, technologyID uuid.UUID) (*models.TaskCard, error) {
	trainee, err := s.store.Users().GetByID(ctx, traineeID)
	if err != nil {
		return nil, err
	}
	if trainee.Role != models.RoleTrainee {
		return nil, &models.ValidationError{Field: "trainee", Reason: "user is not a trainee"}
	}
	if _, err := s.store.Technologies().GetByID(ctx, technologyID); err != nil {
		return nil, err
	}

	existing, err := s.store.TaskCards().FindByTraineeAndTechnology(ctx, traineeID, technologyID)
	if err != nil {
		return nil, fmt.Errorf("find task card: %w", err)
	}
	if existing != nil {
		return nil, &models.ValidationError{Field: "technology", Reason: "already planned for this trainee"}
	}

	card := models.NewTaskCard(traineeID, technologyID, trainee.MentorID, s.now())
	if err := s.store.TaskCards().Add(ctx, card); err != nil {
		return nil, fmt.Errorf("add task card: %w", err)
	}
	s.log.Info("task card planned", "trainee", traineeID, "technology", technologyID, "card", card.ID)
	return &card, nil
}

// MentorQueue lists a mentor's cards in the given states. With no states
// it defaults to the two states that need mentor attention.
func (s *Service) MentorQueue(ctx context.Context, mentorID uuid.UUID, states ...models.LearningState) ([]models.TaskCard, error) {
	if len(states) == 0 {
		states = []models.LearningState{models.StateReadyForReview, models.StateReviewScheduled}
	}
	return s.store.TaskCards().ListByMentorAndStates(ctx, mentorID, states)
}
