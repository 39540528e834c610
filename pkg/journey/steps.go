package journey

import (
	"errors"
	"fmt"
	"slices"

	"github.com/derichenko12/BeyondHomeV3/pkg/ledger"
)

// Step identifies one screen of the questionnaire.
type Step string

const (
	StepIntro       Step = "intro"
	StepPreferences Step = "preferences"
	StepRegion      Step = "region"
	StepFamily      Step = "family"
	StepLand        Step = "land"
	StepHome        Step = "home"
	StepProperty    Step = "property" // land and home on one screen
	StepFood        Step = "food"
	StepResources   Step = "resources"
	StepCreative    Step = "creative"
	StepReceipt     Step = "receipt"
)

var knownSteps = []Step{
	StepIntro, StepPreferences, StepRegion, StepFamily, StepLand, StepHome,
	StepProperty, StepFood, StepResources, StepCreative, StepReceipt,
}

var stepTitles = map[Step]string{
	StepIntro:       "Welcome",
	StepPreferences: "What draws you?",
	StepRegion:      "Choose a region",
	StepFamily:      "Household size",
	StepLand:        "Land",
	StepHome:        "Home",
	StepProperty:    "Land and home",
	StepFood:        "Food production",
	StepResources:   "Infrastructure",
	StepCreative:    "Creative space",
	StepReceipt:     "Your estimate",
}

// Title is the human-readable heading of the step.
func (s Step) Title() string {
	if t, ok := stepTitles[s]; ok {
		return t
	}
	return string(s)
}

// Slots lists the ledger slots the step contributes to.
func (s Step) Slots() []ledger.Slot {
	switch s {
	case StepLand:
		return []ledger.Slot{ledger.SlotLand}
	case StepHome:
		return []ledger.Slot{ledger.SlotHome}
	case StepProperty:
		return []ledger.Slot{ledger.SlotLand, ledger.SlotHome}
	case StepFood:
		return []ledger.Slot{ledger.SlotFood}
	case StepResources:
		return []ledger.Slot{ledger.SlotResources}
	case StepCreative:
		return []ledger.Slot{ledger.SlotCreative}
	}
	return nil
}

// ErrUnknownPipeline is returned by ParsePipeline for unrecognised names.
var ErrUnknownPipeline = errors.New("unknown pipeline")

// Pipeline is an ordered, linear sequence of steps.
type Pipeline struct {
	Name  string `json:"name"`
	Steps []Step `json:"steps"`
}

// Full asks for household size and prices land and home separately.
var Full = Pipeline{
	Name: "full",
	Steps: []Step{
		StepIntro, StepPreferences, StepRegion, StepFamily, StepLand, StepHome,
		StepFood, StepResources, StepCreative, StepReceipt,
	},
}

// Compact assumes a household of two and combines land and home.
var Compact = Pipeline{
	Name: "compact",
	Steps: []Step{
		StepIntro, StepPreferences, StepRegion, StepProperty,
		StepFood, StepResources, StepCreative, StepReceipt,
	},
}

// ParsePipeline returns the named built-in pipeline.
func ParsePipeline(name string) (Pipeline, error) {
	switch name {
	case "", Full.Name:
		return Full, nil
	case Compact.Name:
		return Compact, nil
	}
	return Pipeline{}, fmt.Errorf("%w: %q", ErrUnknownPipeline, name)
}

// Has reports whether step is part of the pipeline.
func (p Pipeline) Has(step Step) bool {
	return slices.Contains(p.Steps, step)
}

// Validate checks that the pipeline starts at intro, ends at receipt, uses
// only known steps, repeats none, and never prices land or home twice.
func (p Pipeline) Validate() error {
	if len(p.Steps) < 2 {
		return errors.New("pipeline needs at least intro and receipt")
	}
	if p.Steps[0] != StepIntro {
		return fmt.Errorf("pipeline must start with %s, not %s", StepIntro, p.Steps[0])
	}
	if last := p.Steps[len(p.Steps)-1]; last != StepReceipt {
		return fmt.Errorf("pipeline must end with %s, not %s", StepReceipt, last)
	}
	seen := make(map[Step]bool)
	for _, s := range p.Steps {
		if !slices.Contains(knownSteps, s) {
			return fmt.Errorf("unknown step %q", s)
		}
		if seen[s] {
			return fmt.Errorf("step %s appears twice", s)
		}
		seen[s] = true
	}
	if seen[StepProperty] && (seen[StepLand] || seen[StepHome]) {
		return fmt.Errorf("step %s cannot be combined with %s or %s", StepProperty, StepLand, StepHome)
	}
	return nil
}
