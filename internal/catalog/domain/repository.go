package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	ListMaterials(ctx context.Context, db *gorm.DB) ([]Material, error)
	FindMaterialBySKU(ctx context.Context, db *gorm.DB, sku string) (*Material, error)
	ListPackages(ctx context.Context, db *gorm.DB) ([]Package, error)
	FindPackageByCode(ctx context.Context, db *gorm.DB, code string) (*Package, error)
}
