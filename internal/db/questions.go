package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mentahq/menta/internal/models"
)

type questionRepo struct {
	db *gorm.DB
}

func (r *questionRepo) Add(ctx context.Context, q models.CheckQuestion) error {
	row := questionToRow(q)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create question: %w", err)
	}
	return nil
}

func (r *questionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.CheckQuestion, error) {
	var row questionRow
	err := r.db.WithContext(ctx).First(&row, "id = ?", id.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &models.NotFoundError{Entity: "check question", Key: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("query question: %w", err)
	}
	q := row.toModel()
	return &q, nil
}

func (r *questionRepo) Update(ctx context.Context, q models.CheckQuestion) error {
	row := questionToRow(q)
	res := r.db.WithContext(ctx).Model(&questionRow{}).Where("id = ?", row.ID).
		Select("Text", "Active").Updates(&row)
	if res.Error != nil {
		return fmt.Errorf("update question: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &models.NotFoundError{Entity: "check question", Key: row.ID}
	}
	return nil
}

func (r *questionRepo) ListByTechnology(ctx context.Context, technologyID uuid.UUID, includeArchived bool) ([]models.CheckQuestion, error) {
	q := r.db.WithContext(ctx).Where("technology_id = ?", technologyID.String())
	if !includeArchived {
		q = q.Where("active = ?", true)
	}
	var rows []questionRow
	if err := q.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	questions := make([]models.CheckQuestion, 0, len(rows))
	for _, row := range rows {
		questions = append(questions, row.toModel())
	}
	return questions, nil
}
