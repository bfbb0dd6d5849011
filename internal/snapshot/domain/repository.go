package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, snapshot *PricingSnapshot) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PricingSnapshot, error)
	FindByChecksum(ctx context.Context, db *gorm.DB, checksum string) (*PricingSnapshot, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, from, to Status) error
}
