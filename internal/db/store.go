package db

import (
	"context"

	"gorm.io/gorm"

	"github.com/mentahq/menta/internal/repository"
)

// Store implements repository.Store on a gorm connection. The zero-value
// accessors all share the same *gorm.DB, which inside Atomic is the
// transaction handle.
type Store struct {
	db *gorm.DB
}

var _ repository.Store = (*Store)(nil)

func (s *Store) TaskCards() repository.TaskCards         { return &taskCardRepo{db: s.db} }
func (s *Store) Sessions() repository.Sessions           { return &sessionRepo{db: s.db} }
func (s *Store) Reviews() repository.Reviews             { return &reviewRepo{db: s.db} }
func (s *Store) Questions() repository.Questions         { return &questionRepo{db: s.db} }
func (s *Store) Users() repository.Users                 { return &userRepo{db: s.db} }
func (s *Store) Technologies() repository.Technologies   { return &technologyRepo{db: s.db} }
func (s *Store) StatusUpdates() repository.StatusUpdates { return &statusUpdateRepo{db: s.db} }

// Atomic runs fn in a database transaction. SQLite admits one writer at
// a time, so two transactions racing on the same trainee's rows cannot
// both commit a conflicting check-then-act sequence.
func (s *Store) Atomic(ctx context.Context, fn func(repository.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}
