// Package status handles daily progress notes from trainees and mentor
// comments on them.
package status

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mentahq/menta/internal/models"
	"github.com/mentahq/menta/internal/repository"
)

// Service records status updates and feedback.
type Service struct {
	store repository.Store
	log   *slog.Logger
	now   func() time.Time
}

// NewService creates a status service over the given store.
func NewService(store repository.Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

// WithClock overrides the time source. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// LogUpdate records a daily status note for a trainee.
func (s *Service) LogUpdate(ctx context.Context, traineeID uuid.UUID, text string) (*models.StatusUpdate, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &models.ValidationError{Field: "text", Reason: "must not be empty"}
	}
	trainee, err := s.store.Users().GetByID(ctx, traineeID)
	if err != nil {
		return nil, err
	}
	if trainee.Role != models.RoleTrainee {
		return nil, &models.ValidationError{Field: "trainee", Reason: "user is not a trainee"}
	}

	upd := models.NewStatusUpdate(traineeID, text, s.now())
	if err := s.store.StatusUpdates().Add(ctx, upd); err != nil {
		return nil, fmt.Errorf("add status update: %w", err)
	}
	s.log.Info("status logged", "trainee", traineeID, "update", upd.ID)
	return &upd, nil
}

// Comment attaches a mentor's comment to a status update.
func (s *Service) Comment(ctx context.Context, statusUpdateID, mentorID uuid.UUID, text string) (*models.StatusFeedback, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &models.ValidationError{Field: "text", Reason: "must not be empty"}
	}
	if _, err := s.store.StatusUpdates().GetByID(ctx, statusUpdateID); err != nil {
		return nil, err
	}
	mentor, err := s.store.Users().GetByID(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	if mentor.Role == models.RoleTrainee {
		return nil, &models.ValidationError{Field: "mentor", Reason: "trainees cannot comment on status updates"}
	}

	fb := models.NewStatusFeedback(statusUpdateID, mentorID, text, s.now())
	if err := s.store.StatusUpdates().AddFeedback(ctx, fb); err != nil {
		return nil, fmt.Errorf("add status feedback: %w", err)
	}
	return &fb, nil
}

// Entry is one status update with its feedback.
type Entry struct {
	Update   models.StatusUpdate
	Feedback []models.StatusFeedback
}

// History returns a trainee's status updates with their comments.
func (s *Service) History(ctx context.Context, traineeID uuid.UUID) ([]Entry, error) {
	updates, err := s.store.StatusUpdates().ListByTrainee(ctx, traineeID)
	if err != nil {
		return nil, fmt.Errorf("list status updates: %w", err)
	}
	entries := make([]Entry, 0, len(updates))
	for _, u := range updates {
		fb, err := s.store.StatusUpdates().ListFeedback(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("list feedback for %s: %w", u.ID, err)
		}
		entries = append(entries, Entry{Update: u, Feedback: fb})
	}
	return entries, nil
}
