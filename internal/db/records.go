package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/mentahq/menta/internal/models"
)

// Row types are the gorm-mapped mirror of the domain records. The domain
// side stays free of storage tags; conversion happens here.

type userRow struct {
	ID        string `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex;not null"`
	FullName  string `gorm:"not null"`
	AvatarURL string
	Role      string `gorm:"not null"`
	Active    bool   `gorm:"default:true"`
	CreatedAt time.Time
	MentorID  string `gorm:"index"`
}

func (userRow) TableName() string { return "users" }

func userToRow(u models.User) userRow {
	row := userRow{
		ID:        u.ID.String(),
		Email:     u.Email,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
		Role:      string(u.Role),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
	if u.MentorID != uuid.Nil {
		row.MentorID = u.MentorID.String()
	}
	return row
}

func (r userRow) toModel() models.User {
	u := models.User{
		ID:        uuid.MustParse(r.ID),
		Email:     r.Email,
		FullName:  r.FullName,
		AvatarURL: r.AvatarURL,
		Role:      models.Role(r.Role),
		Active:    r.Active,
		CreatedAt: r.CreatedAt,
	}
	if r.MentorID != "" {
		u.MentorID = uuid.MustParse(r.MentorID)
	}
	return u
}

type technologyRow struct {
	ID   string `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;not null"`
}

func (technologyRow) TableName() string { return "technologies" }

func technologyToRow(t models.Technology) technologyRow {
	return technologyRow{ID: t.ID.String(), Name: t.Name}
}

func (r technologyRow) toModel() models.Technology {
	return models.Technology{ID: uuid.MustParse(r.ID), Name: r.Name}
}

type taskCardRow struct {
	ID                string `gorm:"primaryKey"`
	TraineeID         string `gorm:"not null;uniqueIndex:idx_trainee_technology"`
	TechnologyID      string `gorm:"not null;uniqueIndex:idx_trainee_technology"`
	MentorID          string `gorm:"index"`
	State             string `gorm:"not null;index"`
	AddedAt           time.Time
	ScheduledReviewAt *time.Time
	UpdatedAt         time.Time
}

func (taskCardRow) TableName() string { return "task_cards" }

func taskCardToRow(c models.TaskCard) taskCardRow {
	return taskCardRow{
		ID:                c.ID.String(),
		TraineeID:         c.TraineeID.String(),
		TechnologyID:      c.TechnologyID.String(),
		MentorID:          c.MentorID.String(),
		State:             string(c.State),
		AddedAt:           c.AddedAt,
		ScheduledReviewAt: c.ScheduledReviewAt,
	}
}

func (r taskCardRow) toModel() models.TaskCard {
	return models.TaskCard{
		ID:                uuid.MustParse(r.ID),
		TraineeID:         uuid.MustParse(r.TraineeID),
		TechnologyID:      uuid.MustParse(r.TechnologyID),
		MentorID:          uuid.MustParse(r.MentorID),
		State:             models.LearningState(r.State),
		AddedAt:           r.AddedAt,
		ScheduledReviewAt: r.ScheduledReviewAt,
	}
}

type sessionRow struct {
	ID         string `gorm:"primaryKey"`
	TaskCardID string `gorm:"not null;index"`
	StartedAt  time.Time
	EndedAt    *time.Time `gorm:"index"`
}

func (sessionRow) TableName() string { return "session_logs" }

func sessionToRow(s models.SessionLog) sessionRow {
	return sessionRow{
		ID:         s.ID.String(),
		TaskCardID: s.TaskCardID.String(),
		StartedAt:  s.StartedAt,
		EndedAt:    s.EndedAt,
	}
}

func (r sessionRow) toModel() models.SessionLog {
	return models.SessionLog{
		ID:         uuid.MustParse(r.ID),
		TaskCardID: uuid.MustParse(r.TaskCardID),
		StartedAt:  r.StartedAt,
		EndedAt:    r.EndedAt,
	}
}

type reviewRow struct {
	ID         string `gorm:"primaryKey"`
	TaskCardID string `gorm:"not null;index"`
	MentorID   string `gorm:"not null"`
	Outcome    string `gorm:"not null"`
	Feedback   string `gorm:"not null"`
	CreatedAt  time.Time
}

func (reviewRow) TableName() string { return "reviews" }

func reviewToRow(r models.Review) reviewRow {
	return reviewRow{
		ID:         r.ID.String(),
		TaskCardID: r.TaskCardID.String(),
		MentorID:   r.MentorID.String(),
		Outcome:    string(r.Outcome),
		Feedback:   r.Feedback,
		CreatedAt:  r.CreatedAt,
	}
}

func (r reviewRow) toModel() models.Review {
	return models.Review{
		ID:         uuid.MustParse(r.ID),
		TaskCardID: uuid.MustParse(r.TaskCardID),
		MentorID:   uuid.MustParse(r.MentorID),
		Outcome:    models.ReviewOutcome(r.Outcome),
		Feedback:   r.Feedback,
		CreatedAt:  r.CreatedAt,
	}
}

type resultRow struct {
	ID         string `gorm:"primaryKey"`
	ReviewID   string `gorm:"not null;index"`
	QuestionID string `gorm:"not null"`
	Rating     string `gorm:"not null"`
	Comment    string
}

func (resultRow) TableName() string { return "check_question_results" }

func resultToRow(r models.CheckQuestionResult) resultRow {
	return resultRow{
		ID:         r.ID.String(),
		ReviewID:   r.ReviewID.String(),
		QuestionID: r.QuestionID.String(),
		Rating:     string(r.Rating),
		Comment:    r.Comment,
	}
}

func (r resultRow) toModel() models.CheckQuestionResult {
	return models.CheckQuestionResult{
		ID:         uuid.MustParse(r.ID),
		ReviewID:   uuid.MustParse(r.ReviewID),
		QuestionID: uuid.MustParse(r.QuestionID),
		Rating:     models.QuestionRating(r.Rating),
		Comment:    r.Comment,
	}
}

type questionRow struct {
	ID                string `gorm:"primaryKey"`
	TechnologyID      string `gorm:"not null;index"`
	Text              string `gorm:"not null"`
	Active            bool   `gorm:"default:true"`
	CreatedAt         time.Time
	CreatedByMentorID string
}

func (questionRow) TableName() string { return "check_questions" }

func questionToRow(q models.CheckQuestion) questionRow {
	return questionRow{
		ID:                q.ID.String(),
		TechnologyID:      q.TechnologyID.String(),
		Text:              q.Text,
		Active:            q.Active,
		CreatedAt:         q.CreatedAt,
		CreatedByMentorID: q.CreatedByMentorID.String(),
	}
}

func (r questionRow) toModel() models.CheckQuestion {
	return models.CheckQuestion{
		ID:                uuid.MustParse(r.ID),
		TechnologyID:      uuid.MustParse(r.TechnologyID),
		Text:              r.Text,
		Active:            r.Active,
		CreatedAt:         r.CreatedAt,
		CreatedByMentorID: uuid.MustParse(r.CreatedByMentorID),
	}
}

type statusUpdateRow struct {
	ID        string `gorm:"primaryKey"`
	TraineeID string `gorm:"not null;index"`
	CreatedAt time.Time
	Text      string `gorm:"not null"`
}

func (statusUpdateRow) TableName() string { return "status_updates" }

func statusUpdateToRow(s models.StatusUpdate) statusUpdateRow {
	return statusUpdateRow{
		ID:        s.ID.String(),
		TraineeID: s.TraineeID.String(),
		CreatedAt: s.CreatedAt,
		Text:      s.Text,
	}
}

func (r statusUpdateRow) toModel() models.StatusUpdate {
	return models.StatusUpdate{
		ID:        uuid.MustParse(r.ID),
		TraineeID: uuid.MustParse(r.TraineeID),
		CreatedAt: r.CreatedAt,
		Text:      r.Text,
	}
}

type statusFeedbackRow struct {
	ID             string `gorm:"primaryKey"`
	StatusUpdateID string `gorm:"not null;index"`
	MentorID       string `gorm:"not null"`
	Text           string `gorm:"not null"`
	CreatedAt      time.Time
}

func (statusFeedbackRow) TableName() string { return "status_feedback" }

func statusFeedbackToRow(f models.StatusFeedback) statusFeedbackRow {
	return statusFeedbackRow{
		ID:             f.ID.String(),
		StatusUpdateID: f.StatusUpdateID.String(),
		MentorID:       f.MentorID.String(),
		Text:           f.Text,
		CreatedAt:      f.CreatedAt,
	}
}

func (r statusFeedbackRow) toModel() models.StatusFeedback {
	return models.StatusFeedback{
		ID:             uuid.MustParse(r.ID),
		StatusUpdateID: uuid.MustParse(r.StatusUpdateID),
		MentorID:       uuid.MustParse(r.MentorID),
		Text:           r.Text,
		CreatedAt:      r.CreatedAt,
	}
}
