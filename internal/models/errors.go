package models

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Two error families: something was not found, or a business rule was
// violated. Callers branch on the family with errors.Is and pull
// structured context from the leaf types with errors.As.
var (
	ErrNotFound     = errors.New("not found")
	ErrBusinessRule = errors.New("business rule violated")
)

// NotFoundError reports an absent entity. Entity names the kind
// ("user", "technology", "task card", ...), Key identifies the lookup.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.Key)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InvalidTransitionError reports a workflow move that is not legal from
// the card's current state.
type InvalidTransitionError struct {
	From LearningState
	To   LearningState
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrBusinessRule }

// SessionConflictError reports that an open session already exists, or
// that the open session belongs to a different card than the one acted on.
type SessionConflictError struct {
	TaskCardID uuid.UUID // card the conflicting session belongs to
}

func (e *SessionConflictError) Error() string {
	return fmt.Sprintf("a learning session is already running for task card %s", e.TaskCardID)
}

func (e *SessionConflictError) Unwrap() error { return ErrBusinessRule }

// NoActiveSessionError reports a stop attempt with nothing running.
type NoActiveSessionError struct {
	TraineeID uuid.UUID
}

func (e *NoActiveSessionError) Error() string {
	return fmt.Sprintf("no active learning session for trainee %s", e.TraineeID)
}

func (e *NoActiveSessionError) Unwrap() error { return ErrBusinessRule }

// AlreadyApprovedError reports an action on a card that reached the
// approved state, which is terminal.
type AlreadyApprovedError struct {
	TaskCardID uuid.UUID
}

func (e *AlreadyApprovedError) Error() string {
	return fmt.Sprintf("task card %s is already approved", e.TaskCardID)
}

func (e *AlreadyApprovedError) Unwrap() error { return ErrBusinessRule }

// ValidationError reports malformed input, rejected before any write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrBusinessRule }
