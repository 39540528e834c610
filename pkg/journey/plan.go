package journey

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/derichenko12/BeyondHomeV3/pkg/cost"
	"github.com/derichenko12/BeyondHomeV3/pkg/validation"
)

// ErrBlocked is returned by Run when a step's requirement is not met.
var ErrBlocked = errors.New("journey blocked")

// ErrUnsupportedPlan is returned for plan files that are neither YAML nor TOML.
var ErrUnsupportedPlan = errors.New("unsupported plan format")

// Plan is a complete set of answers, read from a file, that drives a
// journey without interaction.
type Plan struct {
	Pipeline    string              `yaml:"pipeline" toml:"pipeline"`
	Tags        []string            `yaml:"tags" toml:"tags"`
	Region      string              `yaml:"region" toml:"region"`
	FamilySize  int                 `yaml:"family_size" toml:"family_size"`
	LandArea    float64             `yaml:"land_area_m2" toml:"land_area_m2"`
	HomePrice   float64             `yaml:"home_price" toml:"home_price"`
	Mode        string              `yaml:"mode" toml:"mode"`
	FoodSystems []string            `yaml:"food_systems" toml:"food_systems"`
	Resources   []cost.Selection    `yaml:"resources" toml:"resources"`
	Creative    cost.CreativeChoice `yaml:"creative" toml:"creative"`
}

// ParsePlan decodes a plan. format is "yaml" or "toml".
func ParsePlan(data []byte, format string) (*Plan, error) {
	var p Plan
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("parsing plan YAML: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("parsing plan TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPlan, format)
	}
	return &p, nil
}

// LoadPlan reads a plan file, choosing the decoder by extension.
func LoadPlan(fs afero.Fs, path string) (*Plan, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return ParsePlan(data, format)
}

// Run restarts the journey and answers every step from the plan until the
// receipt is reached. Plan values the catalog rejects are reported as
// warnings; a step left without a required answer stops the run with
// ErrBlocked.
func Run(j *Journey, p *Plan) (*validation.Report, error) {
	report := validation.NewReport()
	j.Restart()

	if p.FamilySize != 0 && !j.pipeline.Has(StepFamily) {
		warnPlan(report, "family_size", p.FamilySize, "pipeline "+j.pipeline.Name+" uses the default household size")
	}

	for !j.Done() {
		step := j.Current()
		p.apply(j, step, report)
		if !j.Next() {
			return report, fmt.Errorf("%w at step %s: %s", ErrBlocked, step, j.Blocker())
		}
	}
	report.Merge(Validate(j))
	return report, nil
}

func (p *Plan) apply(j *Journey, step Step, r *validation.Report) {
	switch step {
	case StepPreferences:
		if !j.SetTags(p.Tags) {
			warnPlan(r, "tags", p.Tags, "unknown, repeated or conflicting tags were ignored")
		}
	case StepRegion:
		if !j.SelectRegion(p.Region) {
			warnPlan(r, "region", p.Region, "unknown region")
		}
	case StepFamily:
		if p.FamilySize != 0 && !j.SetFamilySize(p.FamilySize) {
			warnPlan(r, "family_size", p.FamilySize, "not a household preset")
		}
	case StepLand:
		p.applyLand(j, r)
	case StepHome:
		p.applyHome(j, r)
	case StepProperty:
		p.applyLand(j, r)
		p.applyHome(j, r)
	case StepFood:
		if p.Mode != "" && !j.SetMode(p.Mode) {
			warnPlan(r, "mode", p.Mode, "unknown mode")
		}
		if !j.SetFoodSystems(p.FoodSystems) {
			warnPlan(r, "food_systems", p.FoodSystems, "unknown systems or not enough space")
		}
	case StepResources:
		if len(p.Resources) > 0 && !j.SetResources(p.Resources) {
			warnPlan(r, "resources", p.Resources, "unavailable resources or unknown variants were dropped")
		}
	case StepCreative:
		if p.Creative.Decided() && !j.SetCreative(p.Creative) {
			warnPlan(r, "creative", p.Creative, "invalid creative space")
		}
	}
}

func (p *Plan) applyLand(j *Journey, r *validation.Report) {
	if p.LandArea == 0 {
		return
	}
	if !cost.Finite(p.LandArea) {
		warnPlan(r, "land_area_m2", fmt.Sprint(p.LandArea), fmt.Sprintf("not a number, keeping %.0f", j.d.LandArea))
		return
	}
	if got := j.SetLandArea(p.LandArea); got != p.LandArea {
		warnPlan(r, "land_area_m2", p.LandArea, fmt.Sprintf("snapped to %.0f", got))
	}
}

func (p *Plan) applyHome(j *Journey, r *validation.Report) {
	if p.HomePrice == 0 {
		return
	}
	if !cost.Finite(p.HomePrice) {
		warnPlan(r, "home_price", fmt.Sprint(p.HomePrice), fmt.Sprintf("not a number, keeping %.0f", j.d.HomePrice))
		return
	}
	if got := j.SetHomePrice(p.HomePrice); got != p.HomePrice {
		warnPlan(r, "home_price", p.HomePrice, fmt.Sprintf("snapped to %.0f", got))
	}
}

func warnPlan(r *validation.Report, path string, value any, msg string) {
	r.AddWarning(validation.Result{
		Level:       validation.LevelJourney,
		Message:     msg,
		Path:        "plan." + path,
		ActualValue: value,
	})
}
