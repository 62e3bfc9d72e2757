// Package memstore is a map-backed repository.Store used by service
// tests. It honors the same contracts as the SQLite store, including
// rollback of everything written inside a failed Atomic.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/mentahq/menta/internal/models"
	"github.com/mentahq/menta/internal/repository"
)

type tables struct {
	cards     map[uuid.UUID]models.TaskCard
	sessions  map[uuid.UUID]models.SessionLog
	reviews   map[uuid.UUID]models.Review
	results   map[uuid.UUID]models.CheckQuestionResult
	questions map[uuid.UUID]models.CheckQuestion
	users     map[uuid.UUID]models.User
	techs     map[uuid.UUID]models.Technology
	updates   map[uuid.UUID]models.StatusUpdate
	feedback  map[uuid.UUID]models.StatusFeedback
	seq       map[uuid.UUID]int // insertion order for stable listings
	nextSeq   int
}

func newTables() *tables {
	return &tables{
		cards:     make(map[uuid.UUID]models.TaskCard),
		sessions:  make(map[uuid.UUID]models.SessionLog),
		reviews:   make(map[uuid.UUID]models.Review),
		results:   make(map[uuid.UUID]models.CheckQuestionResult),
		questions: make(map[uuid.UUID]models.CheckQuestion),
		users:     make(map[uuid.UUID]models.User),
		techs:     make(map[uuid.UUID]models.Technology),
		updates:   make(map[uuid.UUID]models.StatusUpdate),
		feedback:  make(map[uuid.UUID]models.StatusFeedback),
		seq:       make(map[uuid.UUID]int),
	}
}

func (t *tables) clone() *tables {
	c := newTables()
	for k, v := range t.cards {
		c.cards[k] = v
	}
	for k, v := range t.sessions {
		c.sessions[k] = v
	}
	for k, v := range t.reviews {
		c.reviews[k] = v
	}
	for k, v := range t.results {
		c.results[k] = v
	}
	for k, v := range t.questions {
		c.questions[k] = v
	}
	for k, v := range t.users {
		c.users[k] = v
	}
	for k, v := range t.techs {
		c.techs[k] = v
	}
	for k, v := range t.updates {
		c.updates[k] = v
	}
	for k, v := range t.feedback {
		c.feedback[k] = v
	}
	for k, v := range t.seq {
		c.seq[k] = v
	}
	c.nextSeq = t.nextSeq
	return c
}

func (t *tables) track(id uuid.UUID) {
	t.seq[id] = t.nextSeq
	t.nextSeq++
}

// Store implements repository.Store in memory.
type Store struct {
	mu   sync.Mutex
	t    *tables
	inTx bool

	// FailReviewAdd makes the next AddWithResults fail after writing the
	// review header, for atomicity tests.
	FailReviewAdd error
}

var _ repository.Store = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{t: newTables()}
}

func (s *Store) locked(fn func(*tables) error) error {
	if !s.inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.t)
}

// Atomic serializes on the store mutex and restores the previous state
// when fn fails.
func (s *Store) Atomic(ctx context.Context, fn func(repository.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.t.clone()
	tx := &Store{t: s.t, inTx: true, FailReviewAdd: s.FailReviewAdd}
	if err := fn(tx); err != nil {
		s.t = snap
		return err
	}
	return nil
}

func (s *Store) TaskCards() repository.TaskCards         { return &cardRepo{s} }
func (s *Store) Sessions() repository.Sessions           { return &sessionRepo{s} }
func (s *Store) Reviews() repository.Reviews             { return &reviewRepo{s} }
func (s *Store) Questions() repository.Questions         { return &questionRepo{s} }
func (s *Store) Users() repository.Users                 { return &userRepo{s} }
func (s *Store) Technologies() repository.Technologies   { return &techRepo{s} }
func (s *Store) StatusUpdates() repository.StatusUpdates { return &statusRepo{s} }

// sortByInsertion orders ids by when they were first written.
func sortByInsertion(t *tables, ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool { return t.seq[ids[i]] < t.seq[ids[j]] })
}
