package domain

import (
	"context"
	"errors"
)

// Service assembles versioned configuration snapshots for calculations.
type Service interface {
	LoadSnapshot(ctx context.Context) (*ConfigSnapshot, error)
}

var (
	ErrRevisionMissing    = errors.New("config_revision_missing")
	ErrSquareFootageEmpty = errors.New("square_footage_config_empty")
)
