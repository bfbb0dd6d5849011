package repository

import (
	"context"
	"errors"
	"time"

	"github.com/renolab/bathquote/internal/ratecard/domain"
	"gorm.io/gorm"
)

type repository struct{}

// Provide builds the rate card repository.
func Provide() domain.Repository {
	return &repository{}
}

func (r *repository) ListRateLines(ctx context.Context, db *gorm.DB) ([]domain.RateLine, error) {
	var lines []domain.RateLine
	err := db.WithContext(ctx).Order("code ASC").Find(&lines).Error
	return lines, err
}

func (r *repository) ListMultipliers(ctx context.Context, db *gorm.DB) ([]domain.ProjectMultiplier, error) {
	var multipliers []domain.ProjectMultiplier
	err := db.WithContext(ctx).Order("code ASC").Find(&multipliers).Error
	return multipliers, err
}

func (r *repository) CurrentRevision(ctx context.Context, db *gorm.DB) (int64, error) {
	var row domain.ConfigRevision
	err := db.WithContext(ctx).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrRevisionMissing
		}
		return 0, err
	}
	return row.Revision, nil
}

func (r *repository) BumpRevision(ctx context.Context, db *gorm.DB) (int64, error) {
	var row domain.ConfigRevision
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRevisionMissing
			}
			return err
		}
		row.Revision++
		row.UpdatedAt = time.Now().UTC()
		return tx.Save(&row).Error
	})
	return row.Revision, err
}
