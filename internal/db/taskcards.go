package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mentahq/menta/internal/models"
)

type taskCardRepo struct {
	db *gorm.DB
}

func (r *taskCardRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.TaskCard, error) {
	var row taskCardRow
	err := r.db.WithContext(ctx).First(&row, "id = ?", id.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &models.NotFoundError{Entity: "task card", Key: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("query task card: %w", err)
	}
	card := row.toModel()
	return &card, nil
}

func (r *taskCardRepo) FindByTraineeAndTechnology(ctx context.Context, traineeID, technologyID uuid.UUID) (*models.TaskCard, error) {
	var row taskCardRow
	err := r.db.WithContext(ctx).
		Where("trainee_id = ? AND technology_id = ?", traineeID.String(), technologyID.String()).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // no card yet is a normal answer
	}
	if err != nil {
		return nil, fmt.Errorf("query task card: %w", err)
	}
	card := row.toModel()
	return &card, nil
}

func (r *taskCardRepo) Add(ctx context.Context, card models.TaskCard) error {
	row := taskCardToRow(card)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create task card: %w", err)
	}
	return nil
}

func (r *taskCardRepo) Update(ctx context.Context, card models.TaskCard) error {
	row := taskCardToRow(card)
	res := r.db.WithContext(ctx).Model(&taskCardRow{}).Where("id = ?", row.ID).
		Select("State", "ScheduledReviewAt").Updates(&row)
	if res.Error != nil {
		return fmt.Errorf("update task card: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &models.NotFoundError{Entity: "task card", Key: row.ID}
	}
	return nil
}

func (r *taskCardRepo) ListByTrainee(ctx context.Context, traineeID uuid.UUID) ([]models.TaskCard, error) {
	var rows []taskCardRow
	err := r.db.WithContext(ctx).
		Where("trainee_id = ?", traineeID.String()).
		Order("added_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list task cards: %w", err)
	}
	cards := make([]models.TaskCard, 0, len(rows))
	for _, row := range rows {
		cards = append(cards, row.toModel())
	}
	return cards, nil
}

func (r *taskCardRepo) ListByMentorAndStates(ctx context.Context, mentorID uuid.UUID, states []models.LearningState) ([]models.TaskCard, error) {
	values := make([]string, 0, len(states))
	for _, s := range states {
		values = append(values, string(s))
	}
	var rows []taskCardRow
	err := r.db.WithContext(ctx).
		Where("mentor_id = ? AND state IN ?", mentorID.String(), values).
		Order("added_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list task cards by mentor: %w", err)
	}
	cards := make([]models.TaskCard, 0, len(rows))
	for _, row := range rows {
		cards = append(cards, row.toModel())
	}
	return cards, nil
}
