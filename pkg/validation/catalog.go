package validation

import (
	"fmt"

	"github.com/derichenko12/BeyondHomeV3/pkg/catalog"
)

// ValidateCatalog checks the reference tables for structural problems
// before any journey runs against them.
func ValidateCatalog(c *catalog.Catalog) *Report {
	r := NewReport()

	validatePreferenceTags(c, r)
	validateFamilyPresets(c, r)
	validateModes(c, r)
	validateFoodSystems(c, r)
	validateRegions(c, r)
	validateResources(c, r)
	validateTemplates(c, r)

	return r
}

// duplicateIDs reports ids seen more than once under path.
func duplicateIDs(ids []string, path string, r *Report) {
	seen := make(map[string]bool)
	for i, id := range ids {
		if id == "" {
			r.AddError(Result{
				Level:   LevelCatalog,
				Message: fmt.Sprintf("%s[%d] has no id", path, i),
				Path:    fmt.Sprintf("%s[%d].id", path, i),
			})
			continue
		}
		if seen[id] {
			r.AddError(Result{
				Level:       LevelCatalog,
				Message:     fmt.Sprintf("duplicate id %q in %s", id, path),
				Path:        fmt.Sprintf("%s[%d].id", path, i),
				ActualValue: id,
			})
		}
		seen[id] = true
	}
}

func validatePreferenceTags(c *catalog.Catalog, r *Report) {
	ids := make([]string, 0, len(c.PreferenceTags))
	for _, t := range c.PreferenceTags {
		ids = append(ids, t.ID)
	}
	duplicateIDs(ids, "preference_tags", r)

	for i, t := range c.PreferenceTags {
		for _, other := range t.Conflicts {
			switch {
			case other == t.ID:
				r.AddError(Result{
					Level:       LevelCatalog,
					Message:     fmt.Sprintf("preference tag %s conflicts with itself", t.ID),
					Path:        fmt.Sprintf("preference_tags[%d].conflicts", i),
					ActualValue: other,
				})
			case c.PreferenceTag(other) == nil:
				r.AddError(Result{
					Level:        LevelCatalog,
					Message:      fmt.Sprintf("preference tag %s conflicts with unknown tag %s", t.ID, other),
					Path:         fmt.Sprintf("preference_tags[%d].conflicts", i),
					ActualValue:  other,
					Expected:     "a preference tag id",
					ConflictWith: other,
				})
			}
		}
	}
}

func validateFamilyPresets(c *catalog.Catalog, r *Report) {
	for _, size := range []int{1, 2, 4, 6} {
		if !c.HasFamilySize(size) {
			r.AddError(Result{
				Level:    LevelCatalog,
				Message:  fmt.Sprintf("family_presets is missing size %d", size),
				Path:     "family_presets",
				Expected: "sizes 1, 2, 4 and 6",
			})
		}
	}
}

func validateModes(c *catalog.Catalog, r *Report) {
	if len(c.Modes) == 0 {
		r.AddError(Result{
			Level:    LevelCatalog,
			Message:  "modes must contain at least one self-sufficiency mode",
			Path:     "modes",
			Expected: "at least 1 mode",
		})
		return
	}
	ids := make([]string, 0, len(c.Modes))
	for i, m := range c.Modes {
		ids = append(ids, m.ID)
		if m.SizeMultiplier <= 0 || m.CostMultiplier <= 0 {
			r.AddError(Result{
				Level:       LevelCatalog,
				Message:     fmt.Sprintf("mode %s: multipliers must be > 0", m.ID),
				Path:        fmt.Sprintf("modes[%d]", i),
				ActualValue: fmt.Sprintf("size %.2f, cost %.2f", m.SizeMultiplier, m.CostMultiplier),
				Expected:    "> 0",
			})
		}
	}
	duplicateIDs(ids, "modes", r)
}

func validateFoodSystems(c *catalog.Catalog, r *Report) {
	ids := make([]string, 0, len(c.FoodSystems))
	for i, fs := range c.FoodSystems {
		ids = append(ids, fs.ID)
		if fs.BaseSpace <= 0 {
			r.AddError(Result{
				Level:       LevelCatalog,
				Message:     fmt.Sprintf("food system %s: base_space_m2 must be > 0", fs.ID),
				Path:        fmt.Sprintf("food_systems[%d].base_space_m2", i),
				ActualValue: fs.BaseSpace,
				Expected:    "> 0",
			})
		}
		if fs.Hours.Peak < fs.Hours.Average {
			r.AddWarning(Result{
				Level:       LevelCatalog,
				Message:     fmt.Sprintf("food system %s: peak hours (%.1f) below average (%.1f)", fs.ID, fs.Hours.Peak, fs.Hours.Average),
				Path:        fmt.Sprintf("food_systems[%d].weekly_hours", i),
				ActualValue: fs.Hours.Peak,
				Expected:    fmt.Sprintf(">= %.1f", fs.Hours.Average),
			})
		}
	}
	duplicateIDs(ids, "food_systems", r)
}

func validateRegions(c *catalog.Catalog, r *Report) {
	if len(c.Regions) == 0 {
		r.AddError(Result{
			Level:    LevelCatalog,
			Message:  "regions must contain at least one region",
			Path:     "regions",
			Expected: "at least 1 region",
		})
		return
	}

	ids := make([]string, 0, len(c.Regions))
	for i, reg := range c.Regions {
		ids = append(ids, reg.ID)
		path := fmt.Sprintf("regions[%d]", i)

		if reg.PricePerSqm <= 0 {
			r.AddError(Result{
				Level:       LevelCatalog,
				Message:     fmt.Sprintf("region %s: price_per_sqm must be > 0", reg.ID),
				Path:        path + ".price_per_sqm",
				ActualValue: reg.PricePerSqm,
				Expected:    "> 0",
			})
		}
		if reg.BuildingLicensePercent < 0 || reg.BuildingLicensePercent > 100 {
			r.AddError(Result{
				Level:       LevelCatalog,
				Message:     fmt.Sprintf("region %s: building_license_percent %.1f is outside 0-100", reg.ID, reg.BuildingLicensePercent),
				Path:        path + ".building_license_percent",
				ActualValue: reg.BuildingLicensePercent,
				Expected:    "0-100",
			})
		}
		if len(reg.Tags()) == 0 {
			r.AddWarning(Result{
				Level:       LevelCatalog,
				Message:     fmt.Sprintf("region %s has no descriptive tags and can never be recommended", reg.ID),
				Path:        path,
				Suggestions: []string{"Add climate, landscape, energy or crops tags"},
			})
		}

		for _, fs := range c.FoodSystems {
			f, ok := reg.Feasibility[fs.ID]
			if !ok {
				r.AddWarning(Result{
					Level:   LevelCatalog,
					Message: fmt.Sprintf("region %s does not rate food system %s; it will not be offered there", reg.ID, fs.ID),
					Path:    fmt.Sprintf("%s.feasibility.%s", path, fs.ID),
				})
				continue
			}
			if !f.Rating.Valid() {
				r.AddError(Result{
					Level:       LevelCatalog,
					Message:     fmt.Sprintf("region %s: %s has unknown rating %q", reg.ID, fs.ID, f.Rating),
					Path:        fmt.Sprintf("%s.feasibility.%s.rating", path, fs.ID),
					ActualValue: f.Rating,
					Expected:    "recommended, challenging or not_recommended",
				})
			}
			if f.SetupCost < 0 || f.AnnualCost < 0 {
				r.AddError(Result{
					Level:    LevelCatalog,
					Message:  fmt.Sprintf("region %s: %s costs must be non-negative", reg.ID, fs.ID),
					Path:     fmt.Sprintf("%s.feasibility.%s", path, fs.ID),
					Expected: ">= 0",
				})
			}
		}
		for id := range reg.Feasibility {
			if c.FoodSystem(id) == nil {
				r.AddWarning(Result{
					Level:   LevelCatalog,
					Message: fmt.Sprintf("region %s rates unknown food system %s", reg.ID, id),
					Path:    fmt.Sprintf("%s.feasibility.%s", path, id),
				})
			}
		}
	}
	duplicateIDs(ids, "regions", r)
}

func validateResources(c *catalog.Catalog, r *Report) {
	ids := make([]string, 0, len(c.Resources))
	for i, res := range c.Resources {
		ids = append(ids, res.ID)
		path := fmt.Sprintf("resources[%d]", i)

		if !res.Category.Valid() {
			r.AddError(Result{
				Level:       LevelCatalog,
				Message:     fmt.Sprintf("resource %s has unknown category %q", res.ID, res.Category),
				Path:        path + ".category",
				ActualValue: res.Category,
				Expected:    "energy, water, heating or irrigation",
			})
		}
		switch res.Scaling {
		case catalog.ScalingAuto, catalog.ScalingNone, catalog.ScalingHomeArea, catalog.ScalingFamily, catalog.ScalingGrid:
		default:
			r.AddError(Result{
				Level:       LevelCatalog,
				Message:     fmt.Sprintf("resource %s has unknown scaling %q", res.ID, res.Scaling),
				Path:        path + ".scaling",
				ActualValue: res.Scaling,
			})
		}
		if len(res.AvailableFor) == 0 {
			r.AddWarning(Result{
				Level:       LevelCatalog,
				Message:     fmt.Sprintf("resource %s has no available_for tags and is never offered", res.ID),
				Path:        path + ".available_for",
				Suggestions: []string{fmt.Sprintf("Use %q to offer it everywhere", catalog.AllTag)},
			})
		}

		// Variant thresholds must grow so the first fitting tier is the smallest.
		for j := 1; j < len(res.Variants); j++ {
			prev, cur := res.Variants[j-1], res.Variants[j]
			if cur.MaxHomeArea != 0 && prev.MaxHomeArea > cur.MaxHomeArea ||
				cur.MaxFamilySize != 0 && prev.MaxFamilySize > cur.MaxFamilySize {
				r.AddWarning(Result{
					Level:        LevelCatalog,
					Message:      fmt.Sprintf("resource %s: variant %s has smaller thresholds than %s", res.ID, cur.ID, prev.ID),
					Path:         fmt.Sprintf("%s.variants[%d]", path, j),
					ConflictWith: prev.ID,
					Suggestions:  []string{"Order variants from smallest to largest"},
				})
			}
		}
	}
	duplicateIDs(ids, "resources", r)

	for _, cat := range catalog.RequiredCategories {
		if len(c.ResourcesIn(cat)) == 0 {
			r.AddError(Result{
				Level:    LevelCatalog,
				Message:  fmt.Sprintf("no resources in required category %s; the resources step could never be completed", cat),
				Path:     "resources",
				Expected: fmt.Sprintf("at least 1 %s resource", cat),
			})
		}
	}
}

func validateTemplates(c *catalog.Catalog, r *Report) {
	ids := make([]string, 0, len(c.CreativeTemplates))
	for i, t := range c.CreativeTemplates {
		ids = append(ids, t.ID)
		if t.MinCost < 0 || t.MinCost > t.MaxCost {
			r.AddError(Result{
				Level:       LevelCatalog,
				Message:     fmt.Sprintf("template %s: min_cost (%.0f) must be between 0 and max_cost (%.0f)", t.ID, t.MinCost, t.MaxCost),
				Path:        fmt.Sprintf("creative_templates[%d]", i),
				ActualValue: fmt.Sprintf("%.0f-%.0f", t.MinCost, t.MaxCost),
			})
		}
	}
	duplicateIDs(ids, "creative_templates", r)
}
