package journey

import (
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/derichenko12/BeyondHomeV3/pkg/cost"
)

// Default answers a fresh journey starts from.
const (
	DefaultFamilySize = 2
	DefaultLandArea   = 5000.0
	DefaultHomePrice  = 50000.0
	DefaultMode       = "homestead"
)

// Decisions is everything the user has answered so far. Derived figures
// (land price, home area) are computed from it on demand.
type Decisions struct {
	Tags        []string            `json:"tags"`
	RegionID    string              `json:"region_id"`
	FamilySize  int                 `json:"family_size"`
	LandArea    float64             `json:"land_area_m2"`
	HomePrice   float64             `json:"home_price"`
	Mode        string              `json:"mode"`
	FoodSystems []string            `json:"food_systems"`
	Resources   []cost.Selection    `json:"resources"`
	Creative    cost.CreativeChoice `json:"creative"`
}

// DefaultDecisions returns the initial answers.
func DefaultDecisions() Decisions {
	return Decisions{
		FamilySize: DefaultFamilySize,
		LandArea:   DefaultLandArea,
		HomePrice:  DefaultHomePrice,
		Mode:       DefaultMode,
	}
}

// HomeArea is the living area the home price buys.
func (d Decisions) HomeArea() float64 {
	return cost.HomeArea(d.HomePrice)
}

// HasResource reports whether the resource is selected.
func (d Decisions) HasResource(id string) bool {
	return d.resourceIndex(id) >= 0
}

func (d Decisions) resourceIndex(id string) int {
	return slices.IndexFunc(d.Resources, func(s cost.Selection) bool { return s.ID == id })
}

func (d Decisions) clone() Decisions {
	d.Tags = slices.Clone(d.Tags)
	d.FoodSystems = slices.Clone(d.FoodSystems)
	d.Resources = slices.Clone(d.Resources)
	return d
}

// normalizeID folds free-form identifiers to the catalog's lower-case form.
func normalizeID(s string) string {
	return strings.ToLower(normalizeText(s))
}

// normalizeText applies NFKC and trims surrounding space.
func normalizeText(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}
