package repository

import (
	"context"

	"github.com/renolab/bathquote/internal/bathroom/domain"
	"gorm.io/gorm"
)

type repository struct{}

// Provide builds the bathroom configuration repository.
func Provide() domain.Repository {
	return &repository{}
}

func (r *repository) ListSquareFootage(ctx context.Context, db *gorm.DB) ([]domain.SquareFootageConfig, error) {
	var rows []domain.SquareFootageConfig
	err := db.WithContext(ctx).Order("size ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) ListTypeConfigs(ctx context.Context, db *gorm.DB) ([]domain.BathroomTypeConfig, error) {
	var rows []domain.BathroomTypeConfig
	err := db.WithContext(ctx).Order("type ASC").Find(&rows).Error
	return rows, err
}
