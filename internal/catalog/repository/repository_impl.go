package repository

import (
	"context"

	"github.com/renolab/bathquote/internal/catalog/domain"
	"github.com/renolab/bathquote/pkg/repository"
	"gorm.io/gorm"
)

type catalogRepository struct{}

// Provide builds the catalog repository.
func Provide() domain.Repository {
	return &catalogRepository{}
}

func (r *catalogRepository) ListMaterials(ctx context.Context, db *gorm.DB) ([]domain.Material, error) {
	rows, err := repository.ProvideStore[domain.Material](db).
		Find(ctx, &domain.Material{Active: true})
	if err != nil {
		return nil, err
	}
	materials := make([]domain.Material, 0, len(rows))
	for _, row := range rows {
		materials = append(materials, *row)
	}
	return materials, nil
}

func (r *catalogRepository) FindMaterialBySKU(ctx context.Context, db *gorm.DB, sku string) (*domain.Material, error) {
	return repository.ProvideStore[domain.Material](db).
		FindOne(ctx, &domain.Material{SKU: sku, Active: true})
}

func (r *catalogRepository) ListPackages(ctx context.Context, db *gorm.DB) ([]domain.Package, error) {
	rows, err := repository.ProvideStore[domain.Package](db).
		Find(ctx, &domain.Package{Active: true})
	if err != nil {
		return nil, err
	}
	packages := make([]domain.Package, 0, len(rows))
	for _, row := range rows {
		packages = append(packages, *row)
	}
	return packages, nil
}

func (r *catalogRepository) FindPackageByCode(ctx context.Context, db *gorm.DB, code string) (*domain.Package, error) {
	return repository.ProvideStore[domain.Package](db).
		FindOne(ctx, &domain.Package{Code: code, Active: true})
}
