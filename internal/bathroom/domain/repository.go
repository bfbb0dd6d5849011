package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	ListSquareFootage(ctx context.Context, db *gorm.DB) ([]SquareFootageConfig, error)
	ListTypeConfigs(ctx context.Context, db *gorm.DB) ([]BathroomTypeConfig, error)
}
