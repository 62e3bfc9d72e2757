// Package repository defines the storage ports the services depend on.
// Implementations live elsewhere (internal/db provides the SQLite one);
// the services only ever see these interfaces.
//
// Contract conventions: Get* methods fail with a models.NotFoundError
// when the entity is absent. Find* methods return (nil, nil) instead,
// because an absent result is a normal answer for a business-key lookup,
// not a fault.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/mentahq/menta/internal/models"
)

// TaskCards persists task cards. Add enforces the one-card-per
// (trainee, technology) uniqueness rule.
type TaskCards interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.TaskCard, error)
	FindByTraineeAndTechnology(ctx context.Context, traineeID, technologyID uuid.UUID) (*models.TaskCard, error)
	Add(ctx context.Context, card models.TaskCard) error
	Update(ctx context.Context, card models.TaskCard) error
	ListByTrainee(ctx context.Context, traineeID uuid.UUID) ([]models.TaskCard, error)
	ListByMentorAndStates(ctx context.Context, mentorID uuid.UUID, states []models.LearningState) ([]models.TaskCard, error)
}

// Sessions persists session logs.
type Sessions interface {
	Add(ctx context.Context, log models.SessionLog) error
	Update(ctx context.Context, log models.SessionLog) error
	// FindOpenByTrainee returns the single open session across all of a
	// trainee's cards, or (nil, nil) when nothing is running.
	FindOpenByTrainee(ctx context.Context, traineeID uuid.UUID) (*models.SessionLog, error)
	ListForTaskCard(ctx context.Context, taskCardID uuid.UUID) ([]models.SessionLog, error)
}

// Reviews persists review attempts and their per-question results.
type Reviews interface {
	// AddWithResults writes a review and its full result batch together.
	// A partially written batch must never be observable.
	AddWithResults(ctx context.Context, review models.Review, results []models.CheckQuestionResult) error
	ListForTaskCard(ctx context.Context, taskCardID uuid.UUID) ([]models.Review, error)
	ResultsForReview(ctx context.Context, reviewID uuid.UUID) ([]models.CheckQuestionResult, error)
}

// Questions persists the question bank.
type Questions interface {
	Add(ctx context.Context, q models.CheckQuestion) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.CheckQuestion, error)
	Update(ctx context.Context, q models.CheckQuestion) error
	// ListByTechnology returns questions for a technology, optionally
	// including archived ones.
	ListByTechnology(ctx context.Context, technologyID uuid.UUID, includeArchived bool) ([]models.CheckQuestion, error)
}

// Users persists users. Add enforces email uniqueness.
type Users interface {
	Add(ctx context.Context, u models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ListByRole(ctx context.Context, roles ...models.Role) ([]models.User, error)
	ListTraineesForMentor(ctx context.Context, mentorID uuid.UUID) ([]models.User, error)
}

// Technologies persists the technology catalog. Add enforces name
// uniqueness.
type Technologies interface {
	Add(ctx context.Context, t models.Technology) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Technology, error)
	GetByName(ctx context.Context, name string) (*models.Technology, error)
	ListAll(ctx context.Context) ([]models.Technology, error)
}

// StatusUpdates persists daily status updates and mentor feedback on them.
type StatusUpdates interface {
	Add(ctx context.Context, s models.StatusUpdate) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.StatusUpdate, error)
	ListByTrainee(ctx context.Context, traineeID uuid.UUID) ([]models.StatusUpdate, error)
	AddFeedback(ctx context.Context, f models.StatusFeedback) error
	ListFeedback(ctx context.Context, statusUpdateID uuid.UUID) ([]models.StatusFeedback, error)
}

// Store bundles the ports and provides the transactional boundary.
type Store interface {
	TaskCards() TaskCards
	Sessions() Sessions
	Reviews() Reviews
	Questions() Questions
	Users() Users
	Technologies() Technologies
	StatusUpdates() StatusUpdates

	// Atomic runs fn against a store whose writes commit together or not
	// at all. Concurrent Atomic calls touching the same trainee's rows
	// serialize on the underlying write transaction, so a check-then-act
	// sequence inside fn cannot race a second writer.
	Atomic(ctx context.Context, fn func(Store) error) error
}
