package cost

import (
	"slices"

	"github.com/derichenko12/BeyondHomeV3/pkg/catalog"
	"github.com/derichenko12/BeyondHomeV3/pkg/ledger"
)

// FamilyMultiplier scales space requirements by household size.
// Sizes outside the presets fall back to 1.0.
func FamilyMultiplier(size int) float64 {
	if m, ok := familyMultipliers[size]; ok {
		return m
	}
	return 1.0
}

// SpaceRequirement is the growing area a system needs for this household
// and mode. Utility space is separate and not scaled.
func SpaceRequirement(sys catalog.FoodSystem, familySize int, mode catalog.Mode) float64 {
	return Round(sys.BaseSpace * (FamilyMultiplier(familySize) * mode.SizeMultiplier))
}

// FoodContext is the upstream state the food step calculates against.
type FoodContext struct {
	Region     *catalog.Region
	Systems    []catalog.FoodSystem
	Mode       catalog.Mode
	FamilySize int
	LandArea   float64
	HomeArea   float64
}

func (c FoodContext) system(id string) *catalog.FoodSystem {
	for i := range c.Systems {
		if c.Systems[i].ID == id {
			return &c.Systems[i]
		}
	}
	return nil
}

// UtilitySpace sums the fixed sheds, coops and storage of the selection.
func (c FoodContext) UtilitySpace(selected []string) float64 {
	total := 0.0
	for _, id := range selected {
		if sys := c.system(id); sys != nil {
			total += sys.UtilitySpace
		}
	}
	return total
}

// AvailableSpace is the land left for growing once the home, the fixed
// infrastructure allowance and the selection's utility space are deducted.
func (c FoodContext) AvailableSpace(selected []string) float64 {
	return c.LandArea - (c.HomeArea + InfrastructureAllowanceM2 + c.UtilitySpace(selected))
}

// UsedSpace sums the scaled growing area of the selection.
func (c FoodContext) UsedSpace(selected []string) float64 {
	total := 0.0
	for _, id := range selected {
		if sys := c.system(id); sys != nil {
			total += SpaceRequirement(*sys, c.FamilySize, c.Mode)
		}
	}
	return total
}

// CanSelect reports whether adding id keeps the selection within budget.
// Already selected systems can always stay.
func (c FoodContext) CanSelect(selected []string, id string) bool {
	if slices.Contains(selected, id) {
		return true
	}
	sys := c.system(id)
	if sys == nil {
		return false
	}
	need := SpaceRequirement(*sys, c.FamilySize, c.Mode)
	return c.UsedSpace(selected)+need <= c.AvailableSpace(selected)
}

// Toggle removes id when selected and adds it when it fits. A rejected add
// returns the selection unchanged and false.
func (c FoodContext) Toggle(selected []string, id string) ([]string, bool) {
	if i := slices.Index(selected, id); i >= 0 {
		return slices.Delete(slices.Clone(selected), i, i+1), true
	}
	if !c.CanSelect(selected, id) {
		return selected, false
	}
	return append(slices.Clone(selected), id), true
}

// Fit drops the most recently added systems until the selection is within
// budget again, e.g. after the plot was made smaller.
func (c FoodContext) Fit(selected []string) []string {
	out := slices.Clone(selected)
	for len(out) > 0 && c.UsedSpace(out) > c.AvailableSpace(out) {
		out = out[:len(out)-1]
	}
	return out
}

// FoodOption is one food system as presented for this region and household.
type FoodOption struct {
	System       catalog.FoodSystem  `json:"system"`
	Feasibility  catalog.Feasibility `json:"feasibility"`
	Space        float64             `json:"space_m2"`
	SetupCost    float64             `json:"setup_cost"`
	AnnualCost   float64             `json:"annual_cost"`
	AverageHours float64             `json:"average_hours"`
	PeakHours    float64             `json:"peak_hours"`
}

func (c FoodContext) option(sys catalog.FoodSystem) (FoodOption, bool) {
	if c.Region == nil {
		return FoodOption{}, false
	}
	f, ok := c.Region.Feasibility[sys.ID]
	if !ok {
		return FoodOption{}, false
	}
	return FoodOption{
		System:       sys,
		Feasibility:  f,
		Space:        SpaceRequirement(sys, c.FamilySize, c.Mode),
		SetupCost:    Round(f.SetupCost * c.Mode.CostMultiplier),
		AnnualCost:   Round(f.AnnualCost * c.Mode.CostMultiplier),
		AverageHours: Round(sys.Hours.Average * c.Mode.SizeMultiplier),
		PeakHours:    Round(sys.Hours.Peak * c.Mode.SizeMultiplier),
	}, true
}

// Options lists the systems the region rates, recommended first. Systems
// with equal ratings keep catalog order.
func (c FoodContext) Options() []FoodOption {
	var out []FoodOption
	for _, sys := range c.Systems {
		if opt, ok := c.option(sys); ok {
			out = append(out, opt)
		}
	}
	slices.SortStableFunc(out, func(a, b FoodOption) int {
		return a.Feasibility.Rating.Rank() - b.Feasibility.Rating.Rank()
	})
	return out
}

// Items emits setup, annual, average-time and peak-time items for each
// selected system. Work hours scale with the mode only, not the family.
func (c FoodContext) Items(selected []string) []ledger.LineItem {
	var items []ledger.LineItem
	for _, id := range selected {
		sys := c.system(id)
		if sys == nil {
			continue
		}
		opt, ok := c.option(*sys)
		if !ok {
			continue
		}
		items = append(items,
			ledger.LineItem{Label: sys.Name + " setup", Value: opt.SetupCost, Category: ledger.OneTimeMoney, Key: id},
			ledger.LineItem{Label: sys.Name + " upkeep", Value: opt.AnnualCost, Category: ledger.AnnualMoney, Key: id},
			ledger.LineItem{Label: sys.Name + " (average)", Value: opt.AverageHours, Category: ledger.Time, TimeKind: ledger.Average, Unit: HoursUnit, Key: id},
			ledger.LineItem{Label: sys.Name + " (peak)", Value: opt.PeakHours, Category: ledger.Time, TimeKind: ledger.Peak, Unit: HoursUnit, Key: id},
		)
	}
	return items
}
