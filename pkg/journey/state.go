package journey

import (
	"github.com/derichenko12/BeyondHomeV3/pkg/ledger"
)

// State is a detached view of a journey for display and serialisation.
type State struct {
	Pipeline   string          `json:"pipeline"`
	Steps      []Step          `json:"steps"`
	Step       Step            `json:"step"`
	Title      string          `json:"title"`
	Index      int             `json:"index"`
	CanAdvance bool            `json:"can_advance"`
	Blocker    string          `json:"blocker,omitempty"`
	Decisions  Decisions       `json:"decisions"`
	LandPrice  float64         `json:"land_price"`
	HomeArea   float64         `json:"home_area_m2"`
	Space      SpaceBudget     `json:"space"`
	Ledger     ledger.Snapshot `json:"ledger"`
}

// SpaceBudget summarises the food step's land usage.
type SpaceBudget struct {
	Available float64 `json:"available_m2"`
	Used      float64 `json:"used_m2"`
}

// Snapshot captures the journey as it stands.
func (j *Journey) Snapshot() State {
	fc := j.FoodContext()
	step := j.Current()
	return State{
		Pipeline:   j.pipeline.Name,
		Steps:      append([]Step(nil), j.pipeline.Steps...),
		Step:       step,
		Title:      step.Title(),
		Index:      j.index,
		CanAdvance: j.CanAdvance(),
		Blocker:    j.Blocker(),
		Decisions:  j.Decisions(),
		LandPrice:  j.LandPrice(),
		HomeArea:   j.d.HomeArea(),
		Space: SpaceBudget{
			Available: fc.AvailableSpace(j.d.FoodSystems),
			Used:      fc.UsedSpace(j.d.FoodSystems),
		},
		Ledger: j.ledger.Snapshot(),
	}
}
