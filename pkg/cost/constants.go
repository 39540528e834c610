package cost

// Input bounds and fixed allowances.
const (
	LandAreaMin  = 1000.0  // m²
	LandAreaMax  = 10000.0 // m²
	LandAreaStep = 250.0   // m²

	HomePriceMin  = 15000.0
	HomePriceMax  = 200000.0
	HomePriceStep = 2500.0

	InfrastructureAllowanceM2 = 200.0 // paths, parking, septic
	M2PerHa                   = 10000.0

	HoursUnit = "hrs/week"
)

// Home area tiers by purchase price.
const (
	smallHomeMaxPrice  = 35000.0
	mediumHomeMaxPrice = 80000.0
	largeHomeMaxPrice  = 120000.0

	smallHomeAreaM2  = 30.0
	mediumHomeAreaM2 = 70.0
	largeHomeAreaM2  = 120.0
	estateHomeAreaM2 = 150.0
)

// familyMultipliers scales food-production space by household size.
var familyMultipliers = map[int]float64{
	1: 0.5,
	2: 1.0,
	4: 1.8,
	6: 2.5,
}
