package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/renolab/bathquote/internal/snapshot/domain"
	"github.com/renolab/bathquote/pkg/db"
	"gorm.io/gorm"
)

type repository struct{}

// Provide builds the snapshot repository.
func Provide() domain.Repository {
	return &repository{}
}

func (r *repository) Insert(ctx context.Context, conn *gorm.DB, snapshot *domain.PricingSnapshot) error {
	err := conn.WithContext(ctx).Create(snapshot).Error
	if err != nil && db.IsDuplicateKeyErr(err) {
		// Another caller won the race on the same checksum; the caller
		// re-reads by checksum.
		return gorm.ErrDuplicatedKey
	}
	return err
}

func (r *repository) FindByID(ctx context.Context, conn *gorm.DB, id snowflake.ID) (*domain.PricingSnapshot, error) {
	var snapshot domain.PricingSnapshot
	err := conn.WithContext(ctx).Where("id = ?", id).First(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &snapshot, nil
}

func (r *repository) FindByChecksum(ctx context.Context, conn *gorm.DB, checksum string) (*domain.PricingSnapshot, error) {
	var snapshot domain.PricingSnapshot
	err := conn.WithContext(ctx).Where("checksum = ?", checksum).First(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &snapshot, nil
}

// UpdateStatus moves a snapshot from one status to another. The filter on
// the expected current status makes the transition atomic; when another
// caller moved the snapshot first, zero rows match and the transition is
// rejected.
func (r *repository) UpdateStatus(ctx context.Context, conn *gorm.DB, id snowflake.ID, from, to domain.Status) error {
	result := conn.WithContext(ctx).
		Model(&domain.PricingSnapshot{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status":     to,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}
