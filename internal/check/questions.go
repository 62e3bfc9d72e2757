package check

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mentahq/menta/internal/models"
)

// CreateQuestionInput is a new question for the bank.
type CreateQuestionInput struct {
	TechnologyID uuid.UUID `validate:"required"`
	MentorID     uuid.UUID `validate:"required"`
	Text         string    `validate:"required,min=10"`
}

// CreateQuestion adds a question to a technology's bank. Only mentors
// and admins author questions.
func (s *Service) CreateQuestion(ctx context.Context, in CreateQuestionInput) (*models.CheckQuestion, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, &models.ValidationError{Field: "question", Reason: err.Error()}
	}
	if _, err := s.store.Technologies().GetByID(ctx, in.TechnologyID); err != nil {
		return nil, err
	}
	author, err := s.store.Users().GetByID(ctx, in.MentorID)
	if err != nil {
		return nil, err
	}
	if author.Role == models.RoleTrainee {
		return nil, &models.ValidationError{Field: "mentor", Reason: "trainees cannot author questions"}
	}

	q := models.NewCheckQuestion(in.TechnologyID, in.MentorID, in.Text, s.now())
	if err := s.store.Questions().Add(ctx, q); err != nil {
		return nil, fmt.Errorf("add question: %w", err)
	}
	s.log.Info("question created", "technology", in.TechnologyID, "question", q.ID)
	return &q, nil
}

// UpdateQuestionText changes a question's text.
func (s *Service) UpdateQuestionText(ctx context.Context, questionID uuid.UUID, text string) (*models.CheckQuestion, error) {
	if len(text) < 10 {
		return nil, &models.ValidationError{Field: "text", Reason: "must be at least 10 characters"}
	}
	q, err := s.store.Questions().GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	next := q.WithText(text)
	if err := s.store.Questions().Update(ctx, next); err != nil {
		return nil, fmt.Errorf("update question: %w", err)
	}
	return &next, nil
}

// ArchiveQuestion hides a question from new checks. Past results keep
// referencing it.
func (s *Service) ArchiveQuestion(ctx context.Context, questionID uuid.UUID) (*models.CheckQuestion, error) {
	q, err := s.store.Questions().GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	next := q.Archived()
	if err := s.store.Questions().Update(ctx, next); err != nil {
		return nil, fmt.Errorf("archive question: %w", err)
	}
	s.log.Info("question archived", "question", questionID)
	return &next, nil
}

// ListQuestions returns a technology's questions.
func (s *Service) ListQuestions(ctx context.Context, technologyID uuid.UUID, includeArchived bool) ([]models.CheckQuestion, error) {
	return s.store.Questions().ListByTechnology(ctx, technologyID, includeArchived)
}
