package journey

import (
	"slices"

	"github.com/derichenko12/BeyondHomeV3/pkg/cost"
)

// Every setter returns false and leaves the journey untouched when the
// value is not acceptable. Accepted changes reprice the current step.

// ToggleTag adds or removes a preference tag. Adding a tag drops the
// selected tags it conflicts with.
func (j *Journey) ToggleTag(tag string) bool {
	tag = normalizeID(tag)
	if tag == "" {
		return false
	}
	if i := slices.Index(j.d.Tags, tag); i >= 0 {
		j.d.Tags = slices.Delete(slices.Clone(j.d.Tags), i, i+1)
		j.changed()
		return true
	}
	if !j.knownTag(tag) {
		j.logger.Debug("unknown preference tag", "tag", tag)
		return false
	}
	j.d.Tags = j.addTag(j.d.Tags, tag)
	j.changed()
	return true
}

// SetTags replaces the preference tags, keeping the known ones. Tags are
// added in order, so a later tag wins over an earlier one it conflicts with.
func (j *Journey) SetTags(tags []string) bool {
	var kept []string
	for _, t := range tags {
		t = normalizeID(t)
		if t == "" || slices.Contains(kept, t) || !j.knownTag(t) {
			continue
		}
		kept = j.addTag(kept, t)
	}
	j.d.Tags = kept
	j.changed()
	return len(kept) == len(tags)
}

func (j *Journey) knownTag(tag string) bool {
	return len(j.cat.PreferenceTags) == 0 || j.cat.PreferenceTag(tag) != nil
}

// addTag appends tag to a copy of tags without the ones it conflicts with.
func (j *Journey) addTag(tags []string, tag string) []string {
	out := slices.DeleteFunc(slices.Clone(tags), func(t string) bool {
		return j.cat.TagsConflict(t, tag)
	})
	if dropped := len(tags) - len(out); dropped > 0 {
		j.logger.Debug("dropped conflicting preference tags", "tag", tag, "dropped", dropped)
	}
	return append(out, tag)
}

// SelectRegion picks a region by id.
func (j *Journey) SelectRegion(id string) bool {
	id = normalizeID(id)
	if j.cat.Region(id) == nil {
		j.logger.Debug("unknown region", "region", id)
		return false
	}
	if id != j.d.RegionID {
		j.logger.Info("region selected", "region", id)
	}
	j.d.RegionID = id
	j.changed()
	return true
}

// SetFamilySize picks one of the catalog's household presets.
func (j *Journey) SetFamilySize(n int) bool {
	if !j.cat.HasFamilySize(n) {
		return false
	}
	j.d.FamilySize = n
	j.changed()
	return true
}

// SetLandArea snaps the requested plot size and returns the stored value.
// A non-finite size leaves the current one in place.
func (j *Journey) SetLandArea(area float64) float64 {
	if !cost.Finite(area) {
		return j.d.LandArea
	}
	j.d.LandArea = cost.SnapLandArea(area)
	j.changed()
	return j.d.LandArea
}

// SetHomePrice snaps the requested budget and returns the stored value.
// A non-finite budget leaves the current one in place.
func (j *Journey) SetHomePrice(price float64) float64 {
	if !cost.Finite(price) {
		return j.d.HomePrice
	}
	j.d.HomePrice = cost.SnapHomePrice(price)
	j.changed()
	return j.d.HomePrice
}

// SetMode picks a self-sufficiency mode. On the food step, systems that no
// longer fit the larger footprint are dropped, latest first.
func (j *Journey) SetMode(id string) bool {
	id = normalizeID(id)
	if j.cat.Mode(id) == nil {
		return false
	}
	j.d.Mode = id
	if j.Current() == StepFood {
		j.d.FoodSystems = j.FoodContext().Fit(j.d.FoodSystems)
	}
	j.changed()
	return true
}

// ToggleFoodSystem selects or deselects a food system. Selecting one that
// does not fit the remaining space is rejected.
func (j *Journey) ToggleFoodSystem(id string) bool {
	sel, ok := j.FoodContext().Toggle(j.d.FoodSystems, normalizeID(id))
	if !ok {
		return false
	}
	j.d.FoodSystems = sel
	j.changed()
	return true
}

// SetFoodSystems replaces the selection, adding systems in order while they
// fit. It reports whether every requested system was taken.
func (j *Journey) SetFoodSystems(ids []string) bool {
	ctx := j.FoodContext()
	var sel []string
	all := true
	for _, id := range ids {
		id = normalizeID(id)
		if slices.Contains(sel, id) {
			continue
		}
		next, ok := ctx.Toggle(sel, id)
		if !ok {
			all = false
			continue
		}
		sel = next
	}
	j.d.FoodSystems = sel
	j.changed()
	return all
}

// ToggleResource deselects a resource or selects it with its recommended
// variant. Resources unavailable in the region are rejected.
func (j *Journey) ToggleResource(id string) bool {
	id = normalizeID(id)
	if i := j.d.resourceIndex(id); i >= 0 {
		j.d.Resources = slices.Delete(slices.Clone(j.d.Resources), i, i+1)
		j.changed()
		return true
	}
	sel, ok := j.resourceSelection(cost.Selection{ID: id})
	if !ok {
		return false
	}
	j.d.Resources = append(slices.Clone(j.d.Resources), sel)
	j.changed()
	return true
}

// SelectVariant sets the variant of a selected resource. An empty variant
// id falls back to the base resource.
func (j *Journey) SelectVariant(resourceID, variantID string) bool {
	i := j.d.resourceIndex(normalizeID(resourceID))
	if i < 0 {
		return false
	}
	variantID = normalizeID(variantID)
	if variantID != "" {
		res := j.cat.Resource(j.d.Resources[i].ID)
		if res == nil || res.Variant(variantID) == nil {
			return false
		}
	}
	j.d.Resources = slices.Clone(j.d.Resources)
	j.d.Resources[i].Variant = variantID
	j.changed()
	return true
}

// SetResources replaces the resource selection. Unavailable resources and
// unknown variants are dropped; it reports whether everything was kept.
func (j *Journey) SetResources(sels []cost.Selection) bool {
	var out []cost.Selection
	all := true
	for _, s := range sels {
		sel, ok := j.resourceSelection(s)
		if !ok || slices.ContainsFunc(out, func(o cost.Selection) bool { return o.ID == sel.ID }) {
			all = false
			continue
		}
		out = append(out, sel)
	}
	j.d.Resources = out
	j.changed()
	return all
}

// resourceSelection validates s against the region, filling in the
// recommended variant when none is given.
func (j *Journey) resourceSelection(s cost.Selection) (cost.Selection, bool) {
	s.ID = normalizeID(s.ID)
	s.Variant = normalizeID(s.Variant)
	rc := j.ResourceContext()
	if !rc.IsAvailable(s.ID) {
		j.logger.Debug("resource not available", "resource", s.ID, "region", j.d.RegionID)
		return s, false
	}
	res := j.cat.Resource(s.ID)
	if s.Variant == "" {
		s.Variant = cost.RecommendVariant(*res, rc.HomeArea, rc.FamilySize)
	} else if res.Variant(s.Variant) == nil {
		return s, false
	}
	return s, true
}

// ChooseTemplate picks a creative-space template.
func (j *Journey) ChooseTemplate(id string) bool {
	id = normalizeID(id)
	if j.cat.Template(id) == nil {
		return false
	}
	j.d.Creative = cost.TemplateChoice(id)
	j.changed()
	return true
}

// ChooseCustom describes a user-defined creative space. The name must not
// be blank and the budget must be a finite, non-negative amount.
func (j *Journey) ChooseCustom(name string, budget float64) bool {
	name = normalizeText(name)
	if name == "" || !cost.Finite(budget) || budget < 0 {
		return false
	}
	j.d.Creative = cost.CustomChoice(name, budget)
	j.changed()
	return true
}

// SkipCreative opts out of a creative space.
func (j *Journey) SkipCreative() {
	j.d.Creative = cost.SkipChoice()
	j.changed()
}

// SetCreative applies a choice of any kind.
func (j *Journey) SetCreative(c cost.CreativeChoice) bool {
	switch c.Kind {
	case cost.CreativeTemplate:
		return j.ChooseTemplate(c.TemplateID)
	case cost.CreativeCustom:
		return j.ChooseCustom(c.Name, c.Budget)
	case cost.CreativeSkipped:
		j.SkipCreative()
		return true
	}
	return false
}
