package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mentahq/menta/internal/models"
)

type reviewRepo struct {
	db *gorm.DB
}

// AddWithResults writes the review and its result batch in one
// transaction, so a crash or a mid-batch failure never leaves a review
// with half its ratings.
func (r *reviewRepo) AddWithResults(ctx context.Context, review models.Review, results []models.CheckQuestionResult) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := reviewToRow(review)
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("create review: %w", err)
		}
		for _, res := range results {
			resRow := resultToRow(res)
			if err := tx.Create(&resRow).Error; err != nil {
				return fmt.Errorf("create question result: %w", err)
			}
		}
		return nil
	})
}

func (r *reviewRepo) ListForTaskCard(ctx context.Context, taskCardID uuid.UUID) ([]models.Review, error) {
	var rows []reviewRow
	err := r.db.WithContext(ctx).
		Where("task_card_id = ?", taskCardID.String()).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	reviews := make([]models.Review, 0, len(rows))
	for _, row := range rows {
		reviews = append(reviews, row.toModel())
	}
	return reviews, nil
}

func (r *reviewRepo) ResultsForReview(ctx context.Context, reviewID uuid.UUID) ([]models.CheckQuestionResult, error) {
	var rows []resultRow
	err := r.db.WithContext(ctx).
		Where("review_id = ?", reviewID.String()).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list question results: %w", err)
	}
	results := make([]models.CheckQuestionResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, row.toModel())
	}
	return results, nil
}
