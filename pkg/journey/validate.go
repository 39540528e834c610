package journey

import (
	"fmt"
	"reflect"

	"github.com/derichenko12/BeyondHomeV3/pkg/catalog"
	"github.com/derichenko12/BeyondHomeV3/pkg/cost"
	"github.com/derichenko12/BeyondHomeV3/pkg/validation"
)

// Validate reviews the journey's decisions against the catalog and reports
// anything a user should look at before trusting the estimate.
func Validate(j *Journey) *validation.Report {
	r := validation.NewReport()
	d := j.d
	region := j.Region()

	if region == nil {
		r.AddError(validation.Result{
			Level:       validation.LevelJourney,
			Message:     "no region selected",
			Path:        "region_id",
			ActualValue: d.RegionID,
		})
		return r
	}

	if fc := j.FoodContext(); fc.AvailableSpace(nil) < 0 {
		r.AddWarning(validation.Result{
			Level:       validation.LevelJourney,
			Message:     "home and infrastructure do not fit on the plot",
			Path:        "land_area_m2",
			ActualValue: d.LandArea,
			Expected:    fmt.Sprintf(">= %.0f", d.HomeArea()+cost.InfrastructureAllowanceM2),
		})
	}

	for _, id := range d.FoodSystems {
		f, ok := region.Feasibility[id]
		if !ok {
			continue
		}
		res := validation.Result{
			Level:       validation.LevelJourney,
			Path:        "food_systems." + id,
			ActualValue: f.Rating,
		}
		switch f.Rating {
		case catalog.RatingNotRecommended:
			res.Message = fmt.Sprintf("%s is not recommended in %s", id, region.Name)
			r.AddWarning(res)
		case catalog.RatingChallenging:
			res.Message = fmt.Sprintf("%s is challenging in %s", id, region.Name)
			r.AddInfo(res)
		}
	}

	rc := j.ResourceContext()
	for _, s := range d.Resources {
		if !rc.IsAvailable(s.ID) {
			r.AddWarning(validation.Result{
				Level:   validation.LevelJourney,
				Message: fmt.Sprintf("%s is not available in %s", s.ID, region.Name),
				Path:    "resources." + s.ID,
			})
		}
	}
	if j.visited(StepResources) && !rc.RequiredCategoriesMet(d.Resources) {
		r.AddError(validation.Result{
			Level:    validation.LevelJourney,
			Message:  "energy, water and heating must each be covered",
			Path:     "resources",
			Expected: "one resource per required category",
		})
	}

	if j.visited(StepCreative) && !d.Creative.Decided() {
		r.AddWarning(validation.Result{
			Level:   validation.LevelJourney,
			Message: "creative space not decided",
			Path:    "creative",
		})
	}

	for i, step := range j.pipeline.Steps {
		if i == j.index {
			continue
		}
		for _, slot := range step.Slots() {
			current, fresh := j.ledger.Items(slot), j.contribution(slot)
			if len(current) == 0 && (i > j.index || len(fresh) == 0) {
				continue
			}
			if !reflect.DeepEqual(current, fresh) {
				r.AddInfo(validation.Result{
					Level:   validation.LevelJourney,
					Message: fmt.Sprintf("%s will be repriced when the %s step is revisited", slot, step),
					Path:    "ledger." + string(slot),
				})
			}
		}
	}
	return r
}

// visited reports whether the pipeline has passed step.
func (j *Journey) visited(step Step) bool {
	for i, s := range j.pipeline.Steps {
		if s == step {
			return i < j.index
		}
	}
	return false
}
