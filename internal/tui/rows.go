package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/derichenko12/BeyondHomeV3/pkg/cost"
	"github.com/derichenko12/BeyondHomeV3/pkg/journey"
	"github.com/derichenko12/BeyondHomeV3/pkg/receipt"
)

const (
	rowCustom = "_custom"
	rowSkip   = "_skip"
)

// row is one selectable line of the current step.
type row struct {
	id       string
	label    string
	detail   string
	checked  bool
	disabled bool
}

// rows lists the current step's options.
func (m Model) rows() []row {
	j := m.Journey
	cat := j.Catalog()
	d := j.Decisions()
	money := func(v float64) string { return receipt.FormatMoney(cat.Currency, v) }

	var out []row
	switch j.Current() {
	case journey.StepPreferences:
		for _, tag := range cat.PreferenceTags {
			r := row{id: tag.ID, label: tag.ID, checked: slices.Contains(d.Tags, tag.ID)}
			if len(tag.Conflicts) > 0 {
				r.detail = "replaces " + strings.Join(tag.Conflicts, ", ")
			}
			out = append(out, r)
		}

	case journey.StepRegion:
		for _, r := range j.RankedRegions() {
			detail := fmt.Sprintf("%s · %s/m² · %d match", r.Region.Country, money(r.Region.PricePerSqm), r.Score)
			if r.Score != 1 {
				detail += "es"
			}
			out = append(out, row{
				id:      r.Region.ID,
				label:   r.Region.Name,
				detail:  detail,
				checked: r.Region.ID == d.RegionID,
			})
		}

	case journey.StepFamily:
		for _, p := range cat.FamilyPresets {
			out = append(out, row{
				id:      strconv.Itoa(p.Size),
				label:   fmt.Sprintf("%s (%d)", p.Label, p.Size),
				checked: p.Size == d.FamilySize,
			})
		}

	case journey.StepFood:
		fc := j.FoodContext()
		for _, o := range fc.Options() {
			out = append(out, row{
				id:    o.System.ID,
				label: o.System.Name,
				detail: fmt.Sprintf("%s · %.0f m² · %s + %s/yr · %.0f-%.0f hrs/week",
					o.Feasibility.Rating, o.Space, money(o.SetupCost), money(o.AnnualCost), o.AverageHours, o.PeakHours),
				checked:  slices.Contains(d.FoodSystems, o.System.ID),
				disabled: !fc.CanSelect(d.FoodSystems, o.System.ID),
			})
		}

	case journey.StepResources:
		for _, o := range j.ResourceContext().Options() {
			label := o.Resource.Name
			for _, s := range d.Resources {
				if s.ID != o.Resource.ID {
					continue
				}
				if v := o.Resource.Variant(s.Variant); v != nil {
					label += " (" + v.Name + ")"
				}
			}
			out = append(out, row{
				id:      o.Resource.ID,
				label:   label,
				detail:  fmt.Sprintf("%s · %s", o.Resource.Category, o.Assessment.Strength),
				checked: d.HasResource(o.Resource.ID),
			})
		}

	case journey.StepCreative:
		for _, t := range cat.CreativeTemplates {
			out = append(out, row{
				id:      t.ID,
				label:   t.Name,
				detail:  fmt.Sprintf("%.0f m² · %s-%s", t.AreaM2, money(t.MinCost), money(t.MaxCost)),
				checked: d.Creative.Kind == cost.CreativeTemplate && d.Creative.TemplateID == t.ID,
			})
		}
		custom := "Custom space..."
		if d.Creative.Kind == cost.CreativeCustom {
			custom = fmt.Sprintf("Custom: %s (%s)", d.Creative.Name, money(d.Creative.Budget))
		}
		out = append(out,
			row{id: rowCustom, label: custom, checked: d.Creative.Kind == cost.CreativeCustom},
			row{id: rowSkip, label: "Skip", checked: d.Creative.Kind == cost.CreativeSkipped},
		)
	}
	return out
}
