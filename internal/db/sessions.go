package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mentahq/menta/internal/models"
)

type sessionRepo struct {
	db *gorm.DB
}

func (r *sessionRepo) Add(ctx context.Context, log models.SessionLog) error {
	row := sessionToRow(log)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create session log: %w", err)
	}
	return nil
}

func (r *sessionRepo) Update(ctx context.Context, log models.SessionLog) error {
	row := sessionToRow(log)
	res := r.db.WithContext(ctx).Model(&sessionRow{}).Where("id = ?", row.ID).
		Select("EndedAt").Updates(&row)
	if res.Error != nil {
		return fmt.Errorf("update session log: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &models.NotFoundError{Entity: "session log", Key: row.ID}
	}
	return nil
}

// FindOpenByTrainee looks for the one session with no end time across
// all of the trainee's cards.
func (r *sessionRepo) FindOpenByTrainee(ctx context.Context, traineeID uuid.UUID) (*models.SessionLog, error) {
	cardIDs := r.db.Model(&taskCardRow{}).Select("id").Where("trainee_id = ?", traineeID.String())

	var row sessionRow
	err := r.db.WithContext(ctx).
		Where("ended_at IS NULL").
		Where("task_card_id IN (?)", cardIDs).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // nothing running is a normal answer
	}
	if err != nil {
		return nil, fmt.Errorf("query open session: %w", err)
	}
	log := row.toModel()
	return &log, nil
}

func (r *sessionRepo) ListForTaskCard(ctx context.Context, taskCardID uuid.UUID) ([]models.SessionLog, error) {
	var rows []sessionRow
	err := r.db.WithContext(ctx).
		Where("task_card_id = ?", taskCardID.String()).
		Order("started_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list session logs: %w", err)
	}
	logs := make([]models.SessionLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, row.toModel())
	}
	return logs, nil
}
