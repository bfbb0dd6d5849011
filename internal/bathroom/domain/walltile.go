package domain

import "encoding/json"

// WallTileShape tags the historical wall-tile configuration shapes.
type WallTileShape int

const (
	// ShapeScalar is the oldest form: a single floor-to-ceiling number.
	ShapeScalar WallTileShape = iota
	// ShapeByCoverage maps coverage -> sqft with no bathroom-type dimension.
	ShapeByCoverage
	// ShapeByTypeAndCoverage is the current matrix keyed by bathroom type
	// then coverage.
	ShapeByTypeAndCoverage
)

// WallTileSpec is the normalized wall-tile configuration. Raw JSON is
// decoded into exactly one of the three shapes once at load time so
// lookups never branch on key presence.
type WallTileSpec struct {
	Shape      WallTileShape
	Scalar     float64
	ByCoverage map[WallTileCoverage]float64
	ByType     map[BathroomType]map[WallTileCoverage]float64
}

type coverageJSON struct {
	None           *float64 `json:"none"`
	HalfwayUp      *float64 `json:"halfwayUp"`
	FloorToCeiling *float64 `json:"floorToCeiling"`
}

func (c coverageJSON) complete() bool {
	return c.None != nil && c.HalfwayUp != nil && c.FloorToCeiling != nil
}

func (c coverageJSON) toMap() map[WallTileCoverage]float64 {
	return map[WallTileCoverage]float64{
		CoverageNone:           *c.None,
		CoverageHalfwayUp:      *c.HalfwayUp,
		CoverageFloorToCeiling: *c.FloorToCeiling,
	}
}

// NormalizeWallTile decodes one of the three wall-tile shapes. Trying the
// scalar first, then the flat coverage map, then the full matrix mirrors
// the order the configuration evolved in.
func NormalizeWallTile(raw []byte) (WallTileSpec, error) {
	if len(raw) == 0 {
		return WallTileSpec{}, ErrInvalidWallTile
	}

	var scalar float64
	if err := json.Unmarshal(raw, &scalar); err == nil {
		return WallTileSpec{Shape: ShapeScalar, Scalar: scalar}, nil
	}

	var flat coverageJSON
	if err := json.Unmarshal(raw, &flat); err == nil && flat.complete() {
		return WallTileSpec{Shape: ShapeByCoverage, ByCoverage: flat.toMap()}, nil
	}

	var matrix map[string]coverageJSON
	if err := json.Unmarshal(raw, &matrix); err != nil {
		return WallTileSpec{}, ErrInvalidWallTile
	}
	byType := make(map[BathroomType]map[WallTileCoverage]float64, len(matrix))
	for key, entry := range matrix {
		if !entry.complete() {
			return WallTileSpec{}, ErrInvalidWallTile
		}
		byType[BathroomType(key)] = entry.toMap()
	}
	if len(byType) == 0 {
		return WallTileSpec{}, ErrInvalidWallTile
	}
	return WallTileSpec{Shape: ShapeByTypeAndCoverage, ByType: byType}, nil
}

// legacy scalar scaling factors, floor-to-ceiling baseline
var scalarCoverageFactor = map[WallTileCoverage]float64{
	CoverageNone:           0.25,
	CoverageHalfwayUp:      0.5,
	CoverageFloorToCeiling: 1.0,
}
