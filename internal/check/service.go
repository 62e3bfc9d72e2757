// Package check records mentor reviews ("checks"): an overall verdict
// plus per-question ratings, written as one atomic batch, with the
// outcome applied to the card's workflow state.
package check

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mentahq/menta/internal/models"
	"github.com/mentahq/menta/internal/repository"
	"github.com/mentahq/menta/internal/workflow"
)

// Policy configures the review outcomes that the workflow leaves open.
type Policy struct {
	// RejectedState is where a rejected card goes so the trainee can
	// re-attempt: planned or in_progress.
	RejectedState models.LearningState
	// RequiredApprovals is how many approved reviews a card needs in
	// total before it becomes approved. Until then an approved outcome
	// keeps the card in ready_for_review for the next round.
	RequiredApprovals int
}

// DefaultPolicy rejects back to planned and approves on the first
// approved review.
func DefaultPolicy() Policy {
	return Policy{RejectedState: models.StatePlanned, RequiredApprovals: 1}
}

func (p Policy) validate() error {
	if p.RejectedState != models.StatePlanned && p.RejectedState != models.StateInProgress {
		return fmt.Errorf("rejected state must be planned or in_progress, got %q", p.RejectedState)
	}
	if p.RequiredApprovals < 1 {
		return fmt.Errorf("required approvals must be at least 1, got %d", p.RequiredApprovals)
	}
	return nil
}

// ResultInput is the rating for one question within a submitted check.
type ResultInput struct {
	QuestionID uuid.UUID `validate:"required"`
	Rating     string    `validate:"required,oneof=correct partial incorrect"`
	Comment    string
}

// SubmitReviewInput carries everything a mentor submits for one check.
type SubmitReviewInput struct {
	TaskCardID uuid.UUID     `validate:"required"`
	MentorID   uuid.UUID     `validate:"required"`
	Outcome    string        `validate:"required,oneof=approved rejected"`
	Feedback   string        `validate:"required,min=10"`
	Results    []ResultInput `validate:"dive"`
}

// Service records checks and manages the question bank.
type Service struct {
	store    repository.Store
	policy   Policy
	validate *validator.Validate
	log      *slog.Logger
	now      func() time.Time
}

// NewService creates a check service. An invalid policy is an error.
func NewService(store repository.Store, policy Policy, log *slog.Logger) (*Service, error) {
	if err := policy.validate(); err != nil {
		return nil, fmt.Errorf("review policy: %w", err)
	}
	return &Service{
		store:    store,
		policy:   policy,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
		now:      time.Now,
	}, nil
}

// WithClock overrides the time source. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// SubmitReview persists one review with its full result batch and applies
// the outcome to the task card, all inside one transaction. Every
// validation failure happens before anything is written.
func (s *Service) SubmitReview(ctx context.Context, in SubmitReviewInput) (*models.Review, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, &models.ValidationError{Field: "review", Reason: err.Error()}
	}
	outcome := models.ReviewOutcome(in.Outcome)

	var review *models.Review
	err := s.store.Atomic(ctx, func(tx repository.Store) error {
		card, err := tx.TaskCards().GetByID(ctx, in.TaskCardID)
		if err != nil {
			return err
		}
		if card.State == models.StateApproved {
			return &models.AlreadyApprovedError{TaskCardID: card.ID}
		}

		if err := s.checkQuestions(ctx, tx, card.TechnologyID, in.Results); err != nil {
			return err
		}

		target, err := s.targetState(ctx, tx, card, outcome)
		if err != nil {
			return err
		}
		if target != card.State {
			if err := workflow.ValidateTransition(card.State, target); err != nil {
				return err
			}
		}

		rec := models.NewReview(card.ID, in.MentorID, outcome, in.Feedback, s.now())
		results := make([]models.CheckQuestionResult, 0, len(in.Results))
		for _, r := range in.Results {
			results = append(results, models.NewCheckQuestionResult(
				rec.ID, r.QuestionID, models.QuestionRating(r.Rating), r.Comment))
		}

		if err := tx.Reviews().AddWithResults(ctx, rec, results); err != nil {
			return fmt.Errorf("add review: %w", err)
		}
		if target != card.State {
			if err := tx.TaskCards().Update(ctx, card.WithState(target)); err != nil {
				return fmt.Errorf("update task card: %w", err)
			}
		}
		review = &rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("review submitted",
		"card", in.TaskCardID, "mentor", in.MentorID,
		"outcome", outcome, "questions", len(in.Results))
	return review, nil
}

// checkQuestions verifies every rated question belongs to the card's
// technology, is active, and appears at most once.
func (s *Service) checkQuestions(ctx context.Context, tx repository.Store, technologyID uuid.UUID, results []ResultInput) error {
	if len(results) == 0 {
		return nil
	}
	bank, err := tx.Questions().ListByTechnology(ctx, technologyID, false)
	if err != nil {
		return fmt.Errorf("list questions: %w", err)
	}
	if len(results) > len(bank) {
		return &models.ValidationError{
			Field:  "results",
			Reason: fmt.Sprintf("%d results but only %d active questions exist", len(results), len(bank)),
		}
	}
	known := make(map[uuid.UUID]bool, len(bank))
	for _, q := range bank {
		known[q.ID] = true
	}
	seen := make(map[uuid.UUID]bool, len(results))
	for _, r := range results {
		if !known[r.QuestionID] {
			return &models.ValidationError{
				Field:  "results",
				Reason: fmt.Sprintf("question %s is not an active question of this technology", r.QuestionID),
			}
		}
		if seen[r.QuestionID] {
			return &models.ValidationError{
				Field:  "results",
				Reason: fmt.Sprintf("question %s rated twice", r.QuestionID),
			}
		}
		seen[r.QuestionID] = true
	}
	return nil
}

// targetState resolves where the card goes after this review.
func (s *Service) targetState(ctx context.Context, tx repository.Store, card *models.TaskCard, outcome models.ReviewOutcome) (models.LearningState, error) {
	if outcome == models.ReviewRejected {
		return s.policy.RejectedState, nil
	}
	prior, err := tx.Reviews().ListForTaskCard(ctx, card.ID)
	if err != nil {
		return "", fmt.Errorf("list reviews: %w", err)
	}
	approvals := 1 // the one being submitted
	for _, r := range prior {
		if r.Outcome == models.ReviewApproved {
			approvals++
		}
	}
	if approvals >= s.policy.RequiredApprovals {
		return models.StateApproved, nil
	}
	return models.StateReadyForReview, nil
}

// History returns all reviews for a card, newest last, with their results.
func (s *Service) History(ctx context.Context, taskCardID uuid.UUID) ([]ReviewWithResults, error) {
	reviews, err := s.store.Reviews().ListForTaskCard(ctx, taskCardID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	out := make([]ReviewWithResults, 0, len(reviews))
	for _, r := range reviews {
		results, err := s.store.Reviews().ResultsForReview(ctx, r.ID)
		if err != nil {
			return nil, fmt.Errorf("results for review %s: %w", r.ID, err)
		}
		out = append(out, ReviewWithResults{Review: r, Results: results})
	}
	return out, nil
}

// ReviewWithResults pairs a review with its per-question ratings.
type ReviewWithResults struct {
	Review  models.Review
	Results []models.CheckQuestionResult
}
