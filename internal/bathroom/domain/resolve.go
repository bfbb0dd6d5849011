package domain

import catalogdomain "github.com/renolab/bathquote/internal/catalog/domain"

// SquareFootage is the normalized per-size footage configuration handed
// to calculations.
type SquareFootage struct {
	Size            Size
	FloorTile       float64
	ShowerFloorTile float64
	AccentTile      float64
	WallTile        WallTileSpec
}

// Normalize converts a stored row into its calculation form, decoding the
// wall-tile shape exactly once.
func (c SquareFootageConfig) Normalize() (SquareFootage, error) {
	spec, err := NormalizeWallTile(c.WallTile)
	if err != nil {
		return SquareFootage{}, err
	}
	return SquareFootage{
		Size:            c.Size,
		FloorTile:       c.FloorTile,
		ShowerFloorTile: c.ShowerFloorTile,
		AccentTile:      c.AccentTile,
		WallTile:        spec,
	}, nil
}

// WallTileSqft resolves the wall-tile footage for a bathroom type and
// coverage. The second return reports whether the requested bathroom type
// was absent from the matrix and the Walk-in Shower entry was substituted;
// callers log the substitution.
func (s SquareFootage) WallTileSqft(bathroomType BathroomType, coverage WallTileCoverage) (float64, bool, error) {
	switch s.WallTile.Shape {
	case ShapeScalar:
		factor, ok := scalarCoverageFactor[coverage]
		if !ok {
			return 0, false, ErrUnknownCoverage
		}
		return s.WallTile.Scalar * factor, false, nil
	case ShapeByCoverage:
		sqft, ok := s.WallTile.ByCoverage[coverage]
		if !ok {
			return 0, false, ErrUnknownCoverage
		}
		return sqft, false, nil
	case ShapeByTypeAndCoverage:
		entry, ok := s.WallTile.ByType[bathroomType]
		substituted := false
		if !ok {
			entry, ok = s.WallTile.ByType[TypeWalkInShower]
			if !ok {
				return 0, false, ErrInvalidWallTile
			}
			substituted = true
		}
		sqft, ok := entry[coverage]
		if !ok {
			return 0, substituted, ErrUnknownCoverage
		}
		return sqft, substituted, nil
	default:
		return 0, false, ErrInvalidWallTile
	}
}

// ItemSqft resolves the footage for the non-wall tile item types, which
// have no coverage dependency.
func (s SquareFootage) ItemSqft(itemType catalogdomain.ItemType) (float64, error) {
	switch itemType {
	case catalogdomain.ItemFloorTile:
		return s.FloorTile, nil
	case catalogdomain.ItemShowerFloorTile:
		return s.ShowerFloorTile, nil
	case catalogdomain.ItemAccentTile:
		return s.AccentTile, nil
	default:
		return 0, ErrUnknownItemType
	}
}
