package service

import (
	quotedomain "github.com/renolab/bathquote/internal/quote/domain"
	ratecarddomain "github.com/renolab/bathquote/internal/ratecard/domain"
)

// MapQuantities turns the raw labor intake into named rate-code
// quantities. It is pure and total: no I/O, no failure path. Codes whose
// quantity would be zero are omitted entirely.
func MapQuantities(form quotedomain.QuoteFormData) (quotedomain.Quantities, quotedomain.QuantityMeta) {
	quantities := quotedomain.Quantities{}

	// Demolition is always one job.
	quantities[ratecarddomain.CodeDemolition] = 1

	points := plumbingPoints(form.BathroomType)
	quantities[ratecarddomain.CodePlumbing] = float64(points)

	if form.ElectricalItems > 0 {
		quantities[ratecarddomain.CodeElectrical] = float64(form.ElectricalItems)
	}

	// Disposal scales with the same floor area being tiled.
	totalFloor := form.FloorSqft + form.ShowerFloorSqft
	if totalFloor > 0 {
		quantities[ratecarddomain.CodeFloorTile] = totalFloor
		quantities[ratecarddomain.CodeDisposal] = totalFloor
	}

	if form.WetWallSqft > 0 {
		quantities[ratecarddomain.CodeSubstrate] = form.WetWallSqft
		quantities[ratecarddomain.CodeWaterproofing] = form.WetWallSqft
		quantities[ratecarddomain.CodeWetWallTile] = form.WetWallSqft
	}

	dryWall := 0.0
	if form.TileDryWalls {
		dryWall += form.DryWallSqft
	}
	if form.AccentFeature {
		dryWall += form.AccentSqft
	}
	if dryWall > 0 {
		quantities[ratecarddomain.CodeDryWallTile] = dryWall
	}

	if form.VanityWidth > 0 {
		quantities[ratecarddomain.CodeVanity] = 1
	}

	if form.BathroomType == quotedomain.BathroomWalkIn {
		quantities[ratecarddomain.CodeRecess] = 1
	}

	if form.YearBuilt == quotedomain.YearPre1980 {
		quantities[ratecarddomain.CodeAsbestosTest] = 1
	}

	for code, enabled := range upgradeCodes(form.Upgrades) {
		if enabled {
			quantities[code] = 1
		}
	}

	return quantities, quotedomain.QuantityMeta{
		PlumbingPoints: points,
		TotalFloorSqft: totalFloor,
	}
}

// plumbingPoints counts rough-in points: tub/shower pan plus shower set
// for anything but a powder room, one sink always, one toilet unless the
// layout is a walk-in shower.
func plumbingPoints(bathroomType quotedomain.BathroomType) int {
	points := 0
	if bathroomType != quotedomain.BathroomPowder {
		points += 4
	}
	points++
	if bathroomType != quotedomain.BathroomWalkIn {
		points++
	}
	return points
}

func upgradeCodes(flags quotedomain.UpgradeFlags) map[string]bool {
	return map[string]bool{
		ratecarddomain.CodeHeatedFloor:     flags.HeatedFloor,
		ratecarddomain.CodeHeatedTowelRack: flags.HeatedTowelRack,
		ratecarddomain.CodeNiche:           flags.Niche,
		ratecarddomain.CodeDoorUpgrade:     flags.DoorUpgrade,
		ratecarddomain.CodeSmartToilet:     flags.SmartToilet,
		ratecarddomain.CodeSteamShower:     flags.SteamShower,
		ratecarddomain.CodeInWallCistern:   flags.InWallCistern,
		ratecarddomain.CodeGrabBars:        flags.GrabBars,
	}
}
