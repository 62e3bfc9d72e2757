package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mentahq/menta/internal/models"
)

type userRepo struct {
	db *gorm.DB
}

func (r *userRepo) Add(ctx context.Context, u models.User) error {
	row := userToRow(u)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var row userRow
	err := r.db.WithContext(ctx).First(&row, "id = ?", id.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &models.NotFoundError{Entity: "user", Key: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	u := row.toModel()
	return &u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var row userRow
	err := r.db.WithContext(ctx).First(&row, "email = ?", strings.ToLower(email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &models.NotFoundError{Entity: "user", Key: email}
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	u := row.toModel()
	return &u, nil
}

func (r *userRepo) ListByRole(ctx context.Context, roles ...models.Role) ([]models.User, error) {
	values := make([]string, 0, len(roles))
	for _, role := range roles {
		values = append(values, string(role))
	}
	var rows []userRow
	err := r.db.WithContext(ctx).
		Where("role IN ?", values).
		Order("full_name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toModel())
	}
	return users, nil
}

func (r *userRepo) ListTraineesForMentor(ctx context.Context, mentorID uuid.UUID) ([]models.User, error) {
	var rows []userRow
	err := r.db.WithContext(ctx).
		Where("mentor_id = ? AND role = ? AND active = ?", mentorID.String(), string(models.RoleTrainee), true).
		Order("full_name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list trainees: %w", err)
	}
	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toModel())
	}
	return users, nil
}

type technologyRepo struct {
	db *gorm.DB
}

func (r *technologyRepo) Add(ctx context.Context, t models.Technology) error {
	row := technologyToRow(t)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create technology: %w", err)
	}
	return nil
}

func (r *technologyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Technology, error) {
	var row technologyRow
	err := r.db.WithContext(ctx).First(&row, "id = ?", id.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &models.NotFoundError{Entity: "technology", Key: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("query technology: %w", err)
	}
	t := row.toModel()
	return &t, nil
}

func (r *technologyRepo) GetByName(ctx context.Context, name string) (*models.Technology, error) {
	var row technologyRow
	err := r.db.WithContext(ctx).First(&row, "name = ?", strings.ToLower(name)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &models.NotFoundError{Entity: "technology", Key: name}
	}
	if err != nil {
		return nil, fmt.Errorf("query technology: %w", err)
	}
	t := row.toModel()
	return &t, nil
}

func (r *technologyRepo) ListAll(ctx context.Context) ([]models.Technology, error) {
	var rows []technologyRow
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list technologies: %w", err)
	}
	techs := make([]models.Technology, 0, len(rows))
	for _, row := range rows {
		techs = append(techs, row.toModel())
	}
	return techs, nil
}
