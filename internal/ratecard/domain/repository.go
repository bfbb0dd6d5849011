package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	ListRateLines(ctx context.Context, db *gorm.DB) ([]RateLine, error)
	ListMultipliers(ctx context.Context, db *gorm.DB) ([]ProjectMultiplier, error)
	CurrentRevision(ctx context.Context, db *gorm.DB) (int64, error)
	BumpRevision(ctx context.Context, db *gorm.DB) (int64, error)
}
