package cost

import (
	"fmt"

	"github.com/derichenko12/BeyondHomeV3/pkg/catalog"
	"github.com/derichenko12/BeyondHomeV3/pkg/ledger"
)

// HomeInput is what the home step knows.
type HomeInput struct {
	Region *catalog.Region
	Price  float64
}

// SnapHomePrice clamps a requested budget to the selectable range and
// rounds it to the nearest 2500.
func SnapHomePrice(price float64) float64 {
	return snap(price, HomePriceMin, HomePriceMax, HomePriceStep)
}

// HomeArea maps a purchase price to the living area it typically buys.
func HomeArea(price float64) float64 {
	switch {
	case price <= smallHomeMaxPrice:
		return smallHomeAreaM2
	case price <= mediumHomeMaxPrice:
		return mediumHomeAreaM2
	case price <= largeHomeMaxPrice:
		return largeHomeAreaM2
	default:
		return estateHomeAreaM2
	}
}

// LicenseCost is the building licence fee charged on the home price.
func LicenseCost(in HomeInput) float64 {
	if in.Region == nil {
		return 0
	}
	return Round(in.Price * in.Region.BuildingLicensePercent / 100)
}

// TotalHomeCost is the price plus licence, the figure carried downstream.
func TotalHomeCost(in HomeInput) float64 {
	if in.Region == nil {
		return 0
	}
	return in.Price + LicenseCost(in)
}

// HomeItems prices the house and its building licence.
func HomeItems(in HomeInput) []ledger.LineItem {
	if in.Region == nil {
		return nil
	}
	return []ledger.LineItem{
		{
			Label:    fmt.Sprintf("Home (%.0f m²)", HomeArea(in.Price)),
			Value:    in.Price,
			Category: ledger.OneTimeMoney,
			Key:      "home",
		},
		{
			Label:    fmt.Sprintf("Building license (%g%%)", in.Region.BuildingLicensePercent),
			Value:    LicenseCost(in),
			Category: ledger.OneTimeMoney,
			Key:      "license",
		},
	}
}
