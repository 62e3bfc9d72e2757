package memstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mentahq/menta/internal/models"
)

type cardRepo struct{ s *Store }

func (r *cardRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.TaskCard, error) {
	var out *models.TaskCard
	err := r.s.locked(func(t *tables) error {
		card, ok := t.cards[id]
		if !ok {
			return &models.NotFoundError{Entity: "task card", Key: id.String()}
		}
		out = &card
		return nil
	})
	return out, err
}

func (r *cardRepo) FindByTraineeAndTechnology(ctx context.Context, traineeID, technologyID uuid.UUID) (*models.TaskCard, error) {
	var out *models.TaskCard
	_ = r.s.locked(func(t *tables) error {
		for _, card := range t.cards {
			if card.TraineeID == traineeID && card.TechnologyID == technologyID {
				c := card
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, nil
}

func (r *cardRepo) Add(ctx context.Context, card models.TaskCard) error {
	return r.s.locked(func(t *tables) error {
		for _, existing := range t.cards {
			if existing.TraineeID == card.TraineeID && existing.TechnologyID == card.TechnologyID {
				return fmt.Errorf("task card for trainee %s and technology %s already exists", card.TraineeID, card.TechnologyID)
			}
		}
		t.cards[card.ID] = card
		t.track(card.ID)
		return nil
	})
}

func (r *cardRepo) Update(ctx context.Context, card models.TaskCard) error {
	return r.s.locked(func(t *tables) error {
		if _, ok := t.cards[card.ID]; !ok {
			return &models.NotFoundError{Entity: "task card", Key: card.ID.String()}
		}
		t.cards[card.ID] = card
		return nil
	})
}

func (r *cardRepo) ListByTrainee(ctx context.Context, traineeID uuid.UUID) ([]models.TaskCard, error) {
	var out []models.TaskCard
	_ = r.s.locked(func(t *tables) error {
		var ids []uuid.UUID
		for id, card := range t.cards {
			if card.TraineeID == traineeID {
				ids = append(ids, id)
			}
		}
		sortByInsertion(t, ids)
		for _, id := range ids {
			out = append(out, t.cards[id])
		}
		return nil
	})
	return out, nil
}

func (r *cardRepo) ListByMentorAndStates(ctx context.Context, mentorID uuid.UUID, states []models.LearningState) ([]models.TaskCard, error) {
	wanted := make(map[models.LearningState]bool, len(states))
	for _, s := range states {
		wanted[s] = true
	}
	var out []models.TaskCard
	_ = r.s.locked(func(t *tables) error {
		var ids []uuid.UUID
		for id, card := range t.cards {
			if card.MentorID == mentorID && wanted[card.State] {
				ids = append(ids, id)
			}
		}
		sortByInsertion(t, ids)
		for _, id := range ids {
			out = append(out, t.cards[id])
		}
		return nil
	})
	return out, nil
}

type sessionRepo struct{ s *Store }

func (r *sessionRepo) Add(ctx context.Context, log models.SessionLog) error {
	return r.s.locked(func(t *tables) error {
		t.sessions[log.ID] = log
		t.track(log.ID)
		return nil
	})
}

func (r *sessionRepo) Update(ctx context.Context, log models.SessionLog) error {
	return r.s.locked(func(t *tables) error {
		if _, ok := t.sessions[log.ID]; !ok {
			return &models.NotFoundError{Entity: "session log", Key: log.ID.String()}
		}
		t.sessions[log.ID] = log
		return nil
	})
}

func (r *sessionRepo) FindOpenByTrainee(ctx context.Context, traineeID uuid.UUID) (*models.SessionLog, error) {
	var out *models.SessionLog
	_ = r.s.locked(func(t *tables) error {
		for _, log := range t.sessions {
			if !log.Open() {
				continue
			}
			card, ok := t.cards[log.TaskCardID]
			if ok && card.TraineeID == traineeID {
				l := log
				out = &l
				return nil
			}
		}
		return nil
	})
	return out, nil
}

func (r *sessionRepo) ListForTaskCard(ctx context.Context, taskCardID uuid.UUID) ([]models.SessionLog, error) {
	var out []models.SessionLog
	_ = r.s.locked(func(t *tables) error {
		var ids []uuid.UUID
		for id, log := range t.sessions {
			if log.TaskCardID == taskCardID {
				ids = append(ids, id)
			}
		}
		sortByInsertion(t, ids)
		for _, id := range ids {
			out = append(out, t.sessions[id])
		}
		return nil
	})
	return out, nil
}

type reviewRepo struct{ s *Store }

func (r *reviewRepo) AddWithResults(ctx context.Context, review models.Review, results []models.CheckQuestionResult) error {
	return r.s.locked(func(t *tables) error {
		t.reviews[review.ID] = review
		t.track(review.ID)
		if r.s.FailReviewAdd != nil {
			return r.s.FailReviewAdd
		}
		for _, res := range results {
			t.results[res.ID] = res
			t.track(res.ID)
		}
		return nil
	})
}

func (r *reviewRepo) ListForTaskCard(ctx context.Context, taskCardID uuid.UUID) ([]models.Review, error) {
	var out []models.Review
	_ = r.s.locked(func(t *tables) error {
		var ids []uuid.UUID
		for id, rev := range t.reviews {
			if rev.TaskCardID == taskCardID {
				ids = append(ids, id)
			}
		}
		sortByInsertion(t, ids)
		for _, id := range ids {
			out = append(out, t.reviews[id])
		}
		return nil
	})
	return out, nil
}

func (r *reviewRepo) ResultsForReview(ctx context.Context, reviewID uuid.UUID) ([]models.CheckQuestionResult, error) {
	var out []models.CheckQuestionResult
	_ = r.s.locked(func(t *tables) error {
		var ids []uuid.UUID
		for id, res := range t.results {
			if res.ReviewID == reviewID {
				ids = append(ids, id)
			}
		}
		sortByInsertion(t, ids)
		for _, id := range ids {
			out = append(out, t.results[id])
		}
		return nil
	})
	return out, nil
}

type questionRepo struct{ s *Store }

func (r *questionRepo) Add(ctx context.Context, q models.CheckQuestion) error {
	return r.s.locked(func(t *tables) error {
		t.questions[q.ID] = q
		t.track(q.ID)
		return nil
	})
}

func (r *questionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.CheckQuestion, error) {
	var out *models.CheckQuestion
	err := r.s.locked(func(t *tables) error {
		q, ok := t.questions[id]
		if !ok {
			return &models.NotFoundError{Entity: "check question", Key: id.String()}
		}
		out = &q
		return nil
	})
	return out, err
}

func (r *questionRepo) Update(ctx context.Context, q models.CheckQuestion) error {
	return r.s.locked(func(t *tables) error {
		if _, ok := t.questions[q.ID]; !ok {
			return &models.NotFoundError{Entity: "check question", Key: q.ID.String()}
		}
		t.questions[q.ID] = q
		return nil
	})
}

func (r *questionRepo) ListByTechnology(ctx context.Context, technologyID uuid.UUID, includeArchived bool) ([]models.CheckQuestion, error) {
	var out []models.CheckQuestion
	_ = r.s.locked(func(t *tables) error {
		var ids []uuid.UUID
		for id, q := range t.questions {
			if q.TechnologyID != technologyID {
				continue
			}
			if !q.Active && !includeArchived {
				continue
			}
			ids = append(ids, id)
		}
		sortByInsertion(t, ids)
		for _, id := range ids {
			out = append(out, t.questions[id])
		}
		return nil
	})
	return out, nil
}

type userRepo struct{ s *Store }

func (r *userRepo) Add(ctx context.Context, u models.User) error {
	return r.s.locked(func(t *tables) error {
		for _, existing := range t.users {
			if strings.EqualFold(existing.Email, u.Email) {
				return fmt.Errorf("user with email %s already exists", u.Email)
			}
		}
		t.users[u.ID] = u
		t.track(u.ID)
		return nil
	})
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var out *models.User
	err := r.s.locked(func(t *tables) error {
		u, ok := t.users[id]
		if !ok {
			return &models.NotFoundError{Entity: "user", Key: id.String()}
		}
		out = &u
		return nil
	})
	return out, err
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var out *models.User
	err := r.s.locked(func(t *tables) error {
		for _, u := range t.users {
			if strings.EqualFold(u.Email, email) {
				user := u
				out = &user
				return nil
			}
		}
		return &models.NotFoundError{Entity: "user", Key: email}
	})
	return out, err
}

func (r *userRepo) ListByRole(ctx context.Context, roles ...models.Role) ([]models.User, error) {
	wanted := make(map[models.Role]bool, len(roles))
	for _, role := range roles {
		wanted[role] = true
	}
	var out []models.User
	_ = r.s.locked(func(t *tables) error {
		var ids []uuid.UUID
		for id, u := range t.users {
			if wanted[u.Role] {
				ids = append(ids, id)
			}
		}
		sortByInsertion(t, ids)
		for _, id := range ids {
			out = append(out, t.users[id])
		}
		return nil
	})
	return out, nil
}

func (r *userRepo) ListTraineesForMentor(ctx context.Context, mentorID uuid.UUID) ([]models.User, error) {
	var out []models.User
	_ = r.s.locked(func(t *tables) error {
		var ids []uuid.UUID
		for id, u := range t.users {
			if u.Role == models.RoleTrainee && u.MentorID == mentorID && u.Active {
				ids = append(ids, id)
			}
		}
		sortByInsertion(t, ids)
		for _, id := range ids {
			out = append(out, t.users[id])
		}
		return nil
	})
	return out, nil
}

type techRepo struct{ s *Store }

func (r *techRepo) Add(ctx context.Context, tech models.Technology) error {
	return r.s.locked(func(t *tables) error {
		for _, existing := range t.techs {
			if strings.EqualFold(existing.Name, tech.Name) {
				return fmt.Errorf("technology %s already exists", tech.Name)
			}
		}
		t.techs[tech.ID] = tech
		t.track(tech.ID)
		return nil
	})
}

func (r *techRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Technology, error) {
	var out *models.Technology
	err := r.s.locked(func(t *tables) error {
		tech, ok := t.techs[id]
		if !ok {
			return &models.NotFoundError{Entity: "technology", Key: id.String()}
		}
		out = &tech
		return nil
	})
	return out, err
}

func (r *techRepo) GetByName(ctx context.Context, name string) (*models.Technology, error) {
	var out *models.Technology
	err := r.s.locked(func(t *tables) error {
		for _, tech := range t.techs {
			if strings.EqualFold(tech.Name, name) {
				found := tech
				out = &found
				return nil
			}
		}
		return &models.NotFoundError{Entity: "technology", Key: name}
	})
	return out, err
}

func (r *techRepo) ListAll(ctx context.Context) ([]models.Technology, error) {
	var out []models.Technology
	_ = r.s.locked(func(t *tables) error {
		var ids []uuid.UUID
		for id := range t.techs {
			ids = append(ids, id)
		}
		sortByInsertion(t, ids)
		for _, id := range ids {
			out = append(out, t.techs[id])
		}
		return nil
	})
	return out, nil
}

type statusRepo struct{ s *Store }

func (r *statusRepo) Add(ctx context.Context, u models.StatusUpdate) error {
	return r.s.locked(func(t *tables) error {
		t.updates[u.ID] = u
		t.track(u.ID)
		return nil
	})
}

func (r *statusRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.StatusUpdate, error) {
	var out *models.StatusUpdate
	err := r.s.locked(func(t *tables) error {
		u, ok := t.updates[id]
		if !ok {
			return &models.NotFoundError{Entity: "status update", Key: id.String()}
		}
		out = &u
		return nil
	})
	return out, err
}

func (r *statusRepo) ListByTrainee(ctx context.Context, traineeID uuid.UUID) ([]models.StatusUpdate, error) {
	var out []models.StatusUpdate
	_ = r.s.locked(func(t *tables) error {
		var ids []uuid.UUID
		for id, u := range t.updates {
			if u.TraineeID == traineeID {
				ids = append(ids, id)
			}
		}
		sortByInsertion(t, ids)
		for _, id := range ids {
			out = append(out, t.updates[id])
		}
		return nil
	})
	return out, nil
}

func (r *statusRepo) AddFeedback(ctx context.Context, f models.StatusFeedback) error {
	return r.s.locked(func(t *tables) error {
		t.feedback[f.ID] = f
		t.track(f.ID)
		return nil
	})
}

func (r *statusRepo) ListFeedback(ctx context.Context, statusUpdateID uuid.UUID) ([]models.StatusFeedback, error) {
	var out []models.StatusFeedback
	_ = r.s.locked(func(t *tables) error {
		var ids []uuid.UUID
		for id, f := range t.feedback {
			if f.StatusUpdateID == statusUpdateID {
				ids = append(ids, id)
			}
		}
		sortByInsertion(t, ids)
		for _, id := range ids {
			out = append(out, t.feedback[id])
		}
		return nil
	})
	return out, nil
}
