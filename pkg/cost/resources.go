package cost

import (
	"slices"

	"github.com/derichenko12/BeyondHomeV3/pkg/catalog"
	"github.com/derichenko12/BeyondHomeV3/pkg/ledger"
)

// Strength is a display-only recommendation level for a resource.
type Strength string

const (
	StrengthAvailable         Strength = "available"
	StrengthRecommended       Strength = "recommended"
	StrengthHighlyRecommended Strength = "highly_recommended"
)

// Assessment is how well a resource suits a region.
type Assessment struct {
	Available bool     `json:"available"`
	Excluded  bool     `json:"excluded"`
	Strength  Strength `json:"strength"`
	Matches   int      `json:"matches"`
}

// Assess matches a resource's tag lists against a region. Exclusion tags
// take precedence over both the "all" marker and any positive matches.
func Assess(res catalog.Resource, region *catalog.Region) Assessment {
	if region == nil {
		return Assessment{Strength: StrengthAvailable}
	}
	tags := region.Tags()

	a := Assessment{}
	all := false
	for _, t := range res.AvailableFor {
		if t == catalog.AllTag {
			all = true
			continue
		}
		if slices.Contains(tags, t) {
			a.Matches++
		}
	}
	for _, t := range res.NotRecommendedFor {
		if slices.Contains(tags, t) {
			a.Excluded = true
			break
		}
	}

	a.Available = (all || a.Matches > 0) && !a.Excluded
	switch {
	case a.Excluded:
		a.Strength = StrengthAvailable
	case a.Matches >= 2:
		a.Strength = StrengthHighlyRecommended
	case a.Matches >= 1 || all:
		a.Strength = StrengthRecommended
	default:
		a.Strength = StrengthAvailable
	}
	return a
}

// RecommendVariant picks the smallest variant sized for the household, or
// the largest if none is. Resources without variants yield "".
func RecommendVariant(res catalog.Resource, homeArea float64, familySize int) string {
	if len(res.Variants) == 0 {
		return ""
	}
	for _, v := range res.Variants {
		if v.Fits(homeArea, familySize) {
			return v.ID
		}
	}
	return res.Variants[len(res.Variants)-1].ID
}

// Selection is a chosen resource with an optional variant.
type Selection struct {
	ID      string `json:"id" yaml:"id" toml:"id"`
	Variant string `json:"variant,omitempty" yaml:"variant,omitempty" toml:"variant,omitempty"`
}

// ResourceContext is the upstream state the resources step calculates against.
type ResourceContext struct {
	Catalog    *catalog.Catalog
	Region     *catalog.Region
	HomeArea   float64
	FamilySize int
}

// ResourceOption is one available resource as presented for a region.
type ResourceOption struct {
	Resource           catalog.Resource `json:"resource"`
	Assessment         Assessment       `json:"assessment"`
	RecommendedVariant string           `json:"recommended_variant,omitempty"`
}

// Options lists the resources available in the region, in catalog order.
func (c ResourceContext) Options() []ResourceOption {
	if c.Catalog == nil || c.Region == nil {
		return nil
	}
	var out []ResourceOption
	for _, res := range c.Catalog.Resources {
		a := Assess(res, c.Region)
		if !a.Available {
			continue
		}
		out = append(out, ResourceOption{
			Resource:           res,
			Assessment:         a,
			RecommendedVariant: RecommendVariant(res, c.HomeArea, c.FamilySize),
		})
	}
	return out
}

// IsAvailable reports whether the resource can be chosen in the region.
func (c ResourceContext) IsAvailable(id string) bool {
	if c.Catalog == nil {
		return false
	}
	res := c.Catalog.Resource(id)
	return res != nil && Assess(*res, c.Region).Available
}

// AutoSelect pre-selects, for every required category that has nothing
// selected yet, the first highly recommended resource with its recommended
// variant. Existing selections are kept as they are.
func (c ResourceContext) AutoSelect(current []Selection) []Selection {
	out := slices.Clone(current)
	opts := c.Options()
	for _, cat := range catalog.RequiredCategories {
		if c.hasCategory(out, cat) {
			continue
		}
		for _, opt := range opts {
			if opt.Resource.Category == cat && opt.Assessment.Strength == StrengthHighlyRecommended {
				out = append(out, Selection{ID: opt.Resource.ID, Variant: opt.RecommendedVariant})
				break
			}
		}
	}
	return out
}

func (c ResourceContext) hasCategory(selected []Selection, cat catalog.ResourceCategory) bool {
	if c.Catalog == nil {
		return false
	}
	for _, s := range selected {
		if res := c.Catalog.Resource(s.ID); res != nil && res.Category == cat {
			return true
		}
	}
	return false
}

// RequiredCategoriesMet reports whether energy, water and heating are each
// covered. Irrigation is optional.
func (c ResourceContext) RequiredCategoriesMet(selected []Selection) bool {
	for _, cat := range catalog.RequiredCategories {
		if !c.hasCategory(selected, cat) {
			return false
		}
	}
	return true
}

// HeatingMultiplier scales heating costs by home area.
func HeatingMultiplier(homeArea float64) float64 {
	switch {
	case homeArea <= 50:
		return 0.8
	case homeArea <= 100:
		return 1.0
	default:
		return 1.3
	}
}

// WaterMultiplier scales water and irrigation costs by household size.
func WaterMultiplier(familySize int) float64 {
	switch {
	case familySize <= 2:
		return 0.8
	case familySize <= 4:
		return 1.0
	default:
		return 1.2
	}
}

// GridAnnualMultiplier scales the grid connection's running cost by both
// household size and home area.
func GridAnnualMultiplier(homeArea float64, familySize int) float64 {
	family := 1.3
	switch {
	case familySize <= 2:
		family = 0.7
	case familySize <= 4:
		family = 1.0
	}
	area := 1.2
	switch {
	case homeArea <= 50:
		area = 0.8
	case homeArea <= 100:
		area = 1.0
	}
	return family * area
}

// ResourceCosts returns the rounded setup and annual cost of a resource for
// this household. A variant's fixed costs replace the scaled base costs,
// except that the grid annual scaling still applies on top.
func ResourceCosts(res catalog.Resource, variant *catalog.Variant, homeArea float64, familySize int) (setup, annual float64) {
	scaling := res.EffectiveScaling()
	setup, annual = res.SetupCost, res.AnnualCost

	switch scaling {
	case catalog.ScalingHomeArea:
		m := HeatingMultiplier(homeArea)
		setup, annual = setup*m, annual*m
	case catalog.ScalingFamily:
		m := WaterMultiplier(familySize)
		setup, annual = setup*m, annual*m
	}

	if variant != nil {
		setup, annual = variant.SetupCost, variant.AnnualCost
	}
	if scaling == catalog.ScalingGrid {
		annual *= GridAnnualMultiplier(homeArea, familySize)
	}
	return Round(setup), Round(annual)
}

// Items emits setup and annual items for every selected resource, plus an
// upkeep time item when the resource needs regular work. Without a region
// there is no contribution.
func (c ResourceContext) Items(selected []Selection) []ledger.LineItem {
	if c.Catalog == nil || c.Region == nil {
		return nil
	}
	var items []ledger.LineItem
	for _, s := range selected {
		res := c.Catalog.Resource(s.ID)
		if res == nil {
			continue
		}
		variant := res.Variant(s.Variant)
		name := res.Name
		if variant != nil {
			name += " (" + variant.Name + ")"
		}
		setup, annual := ResourceCosts(*res, variant, c.HomeArea, c.FamilySize)
		items = append(items,
			ledger.LineItem{Label: name + " setup", Value: setup, Category: ledger.OneTimeMoney, Key: res.ID},
			ledger.LineItem{Label: name + " running", Value: annual, Category: ledger.AnnualMoney, Key: res.ID},
		)
		if res.WeeklyHours > 0 {
			items = append(items, ledger.LineItem{
				Label:    name + " upkeep",
				Value:    res.WeeklyHours,
				Category: ledger.Time,
				TimeKind: ledger.Flat,
				Unit:     HoursUnit,
				Key:      res.ID,
			})
		}
	}
	return items
}
