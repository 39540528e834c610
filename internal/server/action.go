package server

import (
	"fmt"

	"github.com/derichenko12/BeyondHomeV3/pkg/journey"
)

// Action is one decision posted by a client, e.g.
// {"type":"select_region","value":"galicia"}.
type Action struct {
	Type    string  `json:"type"`
	Value   string  `json:"value,omitempty"`
	Number  float64 `json:"number,omitempty"`
	Variant string  `json:"variant,omitempty"`
}

// Apply performs the action. The bool reports whether the journey accepted
// it as given; slider values that had to be snapped report false. The error
// is for malformed actions only.
func (a Action) Apply(j *journey.Journey) (bool, error) {
	switch a.Type {
	case "toggle_tag":
		return j.ToggleTag(a.Value), nil
	case "select_region":
		return j.SelectRegion(a.Value), nil
	case "set_family_size":
		return j.SetFamilySize(int(a.Number)), nil
	case "set_land_area":
		return j.SetLandArea(a.Number) == a.Number, nil
	case "set_home_price":
		return j.SetHomePrice(a.Number) == a.Number, nil
	case "set_mode":
		return j.SetMode(a.Value), nil
	case "toggle_food_system":
		return j.ToggleFoodSystem(a.Value), nil
	case "toggle_resource":
		return j.ToggleResource(a.Value), nil
	case "select_variant":
		return j.SelectVariant(a.Value, a.Variant), nil
	case "choose_template":
		return j.ChooseTemplate(a.Value), nil
	case "choose_custom":
		return j.ChooseCustom(a.Value, a.Number), nil
	case "skip_creative":
		j.SkipCreative()
		return true, nil
	}
	return false, fmt.Errorf("unknown action type %q", a.Type)
}
