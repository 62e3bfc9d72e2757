package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mentahq/menta/internal/models"
)

type statusUpdateRepo struct {
	db *gorm.DB
}

func (r *statusUpdateRepo) Add(ctx context.Context, s models.StatusUpdate) error {
	row := statusUpdateToRow(s)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create status update: %w", err)
	}
	return nil
}

func (r *statusUpdateRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.StatusUpdate, error) {
	var row statusUpdateRow
	err := r.db.WithContext(ctx).First(&row, "id = ?", id.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &models.NotFoundError{Entity: "status update", Key: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("query status update: %w", err)
	}
	s := row.toModel()
	return &s, nil
}

func (r *statusUpdateRepo) ListByTrainee(ctx context.Context, traineeID uuid.UUID) ([]models.StatusUpdate, error) {
	var rows []statusUpdateRow
	err := r.db.WithContext(ctx).
		Where("trainee_id = ?", traineeID.String()).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list status updates: %w", err)
	}
	updates := make([]models.StatusUpdate, 0, len(rows))
	for _, row := range rows {
		updates = append(updates, row.toModel())
	}
	return updates, nil
}

func (r *statusUpdateRepo) AddFeedback(ctx context.Context, f models.StatusFeedback) error {
	row := statusFeedbackToRow(f)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create status feedback: %w", err)
	}
	return nil
}

func (r *statusUpdateRepo) ListFeedback(ctx context.Context, statusUpdateID uuid.UUID) ([]models.StatusFeedback, error) {
	var rows []statusFeedbackRow
	err := r.db.WithContext(ctx).
		Where("status_update_id = ?", statusUpdateID.String()).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list status feedback: %w", err)
	}
	feedback := make([]models.StatusFeedback, 0, len(rows))
	for _, row := range rows {
		feedback = append(feedback, row.toModel())
	}
	return feedback, nil
}
