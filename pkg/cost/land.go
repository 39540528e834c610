package cost

import (
	"fmt"

	"github.com/derichenko12/BeyondHomeV3/pkg/catalog"
	"github.com/derichenko12/BeyondHomeV3/pkg/ledger"
)

// LandInput is what the land step knows.
type LandInput struct {
	Region *catalog.Region
	Area   float64 // m²
}

// SnapLandArea clamps a requested plot size to the selectable range and
// rounds it to the nearest 250 m².
func SnapLandArea(area float64) float64 {
	return snap(area, LandAreaMin, LandAreaMax, LandAreaStep)
}

// LandPrice is the rounded purchase price of the plot.
func LandPrice(in LandInput) float64 {
	if in.Region == nil {
		return 0
	}
	return Round(in.Area * in.Region.PricePerSqm)
}

// LandItems prices the plot. Without a region there is no contribution.
func LandItems(in LandInput) []ledger.LineItem {
	if in.Region == nil {
		return nil
	}
	return []ledger.LineItem{{
		Label:    fmt.Sprintf("Land (%.1f ha)", in.Area/M2PerHa),
		Value:    LandPrice(in),
		Category: ledger.OneTimeMoney,
		Key:      "land",
	}}
}
