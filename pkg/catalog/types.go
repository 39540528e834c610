package catalog

// Catalog is the complete set of reference tables the planner reads from.
// It is loaded once and never mutated afterwards.
type Catalog struct {
	Version           string             `yaml:"catalog_version" json:"catalog_version"`
	Currency          string             `yaml:"currency" json:"currency"`
	PreferenceTags    []PreferenceTag    `yaml:"preference_tags" json:"preference_tags"`
	FamilyPresets     []FamilyPreset     `yaml:"family_presets" json:"family_presets"`
	Modes             []Mode             `yaml:"modes" json:"modes"`
	FoodSystems       []FoodSystem       `yaml:"food_systems" json:"food_systems"`
	Regions           []Region           `yaml:"regions" json:"regions"`
	Resources         []Resource         `yaml:"resources" json:"resources"`
	CreativeTemplates []CreativeTemplate `yaml:"creative_templates" json:"creative_templates"`
}

// PreferenceTag is a selectable preference. Conflicts name tags that cannot
// be held together with it; the relation is read in both directions.
type PreferenceTag struct {
	ID        string   `yaml:"id" json:"id"`
	Conflicts []string `yaml:"conflicts,omitempty" json:"conflicts,omitempty"`
}

// FamilyPreset is one of the selectable household sizes.
type FamilyPreset struct {
	Size  int    `yaml:"size" json:"size"`
	Label string `yaml:"label" json:"label"`
}

// Mode is a self-sufficiency profile scaling food production.
type Mode struct {
	ID             string  `yaml:"id" json:"id"`
	Name           string  `yaml:"name" json:"name"`
	Description    string  `yaml:"description" json:"description"`
	SizeMultiplier float64 `yaml:"size_multiplier" json:"size_multiplier"`
	CostMultiplier float64 `yaml:"cost_multiplier" json:"cost_multiplier"`
}

// FoodSystem describes the region-independent footprint and workload of a
// food production system.
type FoodSystem struct {
	ID           string      `yaml:"id" json:"id"`
	Name         string      `yaml:"name" json:"name"`
	BaseSpace    float64     `yaml:"base_space_m2" json:"base_space_m2"`
	UtilitySpace float64     `yaml:"utility_space_m2" json:"utility_space_m2"`
	Hours        WeeklyHours `yaml:"weekly_hours" json:"weekly_hours"`
}

// WeeklyHours is the typical and seasonal-peak weekly workload.
type WeeklyHours struct {
	Average float64 `yaml:"average" json:"average"`
	Peak    float64 `yaml:"peak" json:"peak"`
}

// Rating is a qualitative food-production feasibility rating.
type Rating string

const (
	RatingRecommended    Rating = "recommended"
	RatingChallenging    Rating = "challenging"
	RatingNotRecommended Rating = "not_recommended"
)

// Rank orders ratings for display: recommended first.
// Unknown ratings sort after not_recommended.
func (r Rating) Rank() int {
	switch r {
	case RatingRecommended:
		return 0
	case RatingChallenging:
		return 1
	case RatingNotRecommended:
		return 2
	}
	return 3
}

// Valid reports whether r is one of the known ratings.
func (r Rating) Valid() bool {
	return r.Rank() < 3
}

// Feasibility is a region's assessment of one food system.
type Feasibility struct {
	Rating      Rating  `yaml:"rating" json:"rating"`
	Description string  `yaml:"description" json:"description"`
	SetupCost   float64 `yaml:"setup_cost" json:"setup_cost"`
	AnnualCost  float64 `yaml:"annual_cost" json:"annual_cost"`
}

// Region is a candidate homestead location.
type Region struct {
	ID                     string                 `yaml:"id" json:"id"`
	Name                   string                 `yaml:"name" json:"name"`
	Country                string                 `yaml:"country" json:"country"`
	Description            string                 `yaml:"description" json:"description"`
	Climate                []string               `yaml:"climate" json:"climate"`
	Landscape              []string               `yaml:"landscape" json:"landscape"`
	Energy                 []string               `yaml:"energy" json:"energy"`
	Crops                  []string               `yaml:"crops" json:"crops"`
	RainfallMM             float64                `yaml:"rainfall_mm" json:"rainfall_mm"`
	PricePerSqm            float64                `yaml:"price_per_sqm" json:"price_per_sqm"`
	BuildingLicensePercent float64                `yaml:"building_license_percent" json:"building_license_percent"`
	Feasibility            map[string]Feasibility `yaml:"feasibility" json:"feasibility"`
}

// Tags returns the union of the region's descriptive tag lists, in list
// order, without duplicates.
func (r Region) Tags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, list := range [][]string{r.Climate, r.Landscape, r.Energy, r.Crops} {
		for _, t := range list {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	return tags
}

// HasTag reports whether any of the region's tag lists contains tag.
func (r Region) HasTag(tag string) bool {
	for _, t := range r.Tags() {
		if t == tag {
			return true
		}
	}
	return false
}

// ResourceCategory groups infrastructure resources.
type ResourceCategory string

const (
	CategoryEnergy     ResourceCategory = "energy"
	CategoryWater      ResourceCategory = "water"
	CategoryHeating    ResourceCategory = "heating"
	CategoryIrrigation ResourceCategory = "irrigation"
)

// RequiredCategories must each have at least one selected resource.
var RequiredCategories = []ResourceCategory{CategoryEnergy, CategoryWater, CategoryHeating}

// Valid reports whether c is a known category.
func (c ResourceCategory) Valid() bool {
	switch c {
	case CategoryEnergy, CategoryWater, CategoryHeating, CategoryIrrigation:
		return true
	}
	return false
}

// Scaling selects how a resource's base cost responds to household size.
type Scaling string

const (
	// ScalingAuto derives the rule from the category: heating scales by home
	// area, water and irrigation by family size, energy not at all.
	ScalingAuto     Scaling = ""
	ScalingNone     Scaling = "none"
	ScalingHomeArea Scaling = "home_area"
	ScalingFamily   Scaling = "family"
	// ScalingGrid scales only the annual cost, by family size and home area.
	ScalingGrid Scaling = "grid"
)

// AllTag in AvailableFor makes a resource available in every region.
const AllTag = "all"

// Resource is an infrastructure catalog entry.
type Resource struct {
	ID                string           `yaml:"id" json:"id"`
	Name              string           `yaml:"name" json:"name"`
	Category          ResourceCategory `yaml:"category" json:"category"`
	Description       string           `yaml:"description" json:"description"`
	SetupCost         float64          `yaml:"setup_cost" json:"setup_cost"`
	AnnualCost        float64          `yaml:"annual_cost" json:"annual_cost"`
	WeeklyHours       float64          `yaml:"weekly_hours" json:"weekly_hours"`
	AvailableFor      []string         `yaml:"available_for" json:"available_for"`
	NotRecommendedFor []string         `yaml:"not_recommended_for" json:"not_recommended_for"`
	Scaling           Scaling          `yaml:"scaling" json:"scaling,omitempty"`
	Variants          []Variant        `yaml:"variants" json:"variants,omitempty"`
}

// EffectiveScaling resolves ScalingAuto against the resource category.
func (r Resource) EffectiveScaling() Scaling {
	if r.Scaling != ScalingAuto {
		return r.Scaling
	}
	switch r.Category {
	case CategoryHeating:
		return ScalingHomeArea
	case CategoryWater, CategoryIrrigation:
		return ScalingFamily
	}
	return ScalingNone
}

// Variant returns the variant with the given id, or nil if not found.
func (r Resource) Variant(id string) *Variant {
	for i := range r.Variants {
		if r.Variants[i].ID == id {
			return &r.Variants[i]
		}
	}
	return nil
}

// Variant is a capacity tier of a resource with its own fixed cost pair.
// MaxHomeArea and MaxFamilySize bound the households it is recommended for;
// zero means unbounded.
type Variant struct {
	ID            string  `yaml:"id" json:"id"`
	Name          string  `yaml:"name" json:"name"`
	SetupCost     float64 `yaml:"setup_cost" json:"setup_cost"`
	AnnualCost    float64 `yaml:"annual_cost" json:"annual_cost"`
	MaxHomeArea   float64 `yaml:"max_home_area_m2" json:"max_home_area_m2,omitempty"`
	MaxFamilySize int     `yaml:"max_family_size" json:"max_family_size,omitempty"`
}

// Fits reports whether the variant is sized for the given household.
func (v Variant) Fits(homeArea float64, familySize int) bool {
	if v.MaxHomeArea > 0 && homeArea > v.MaxHomeArea {
		return false
	}
	if v.MaxFamilySize > 0 && familySize > v.MaxFamilySize {
		return false
	}
	return true
}

// CreativeTemplate is a predefined creative space with a cost range.
type CreativeTemplate struct {
	ID          string  `yaml:"id" json:"id"`
	Name        string  `yaml:"name" json:"name"`
	Description string  `yaml:"description" json:"description"`
	AreaM2      float64 `yaml:"area_m2" json:"area_m2"`
	MinCost     float64 `yaml:"min_cost" json:"min_cost"`
	MaxCost     float64 `yaml:"max_cost" json:"max_cost"`
}
