// Package receipt turns a finished journey into the printable estimate:
// per-category subtotals, a contingency buffer and the selections behind
// them.
package receipt

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/derichenko12/BeyondHomeV3/pkg/catalog"
	"github.com/derichenko12/BeyondHomeV3/pkg/cost"
	"github.com/derichenko12/BeyondHomeV3/pkg/journey"
	"github.com/derichenko12/BeyondHomeV3/pkg/ledger"
)

// ContingencyRate is the markup added to the grand total for overruns.
const ContingencyRate = 0.3

// Contingency is the rounded buffer for a grand total.
func Contingency(total float64) float64 {
	return cost.Round(total * ContingencyRate)
}

// RegionInfo is the reference data printed in the receipt header.
type RegionInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	Description string `json:"description"`
}

// Subtotal is the money contributed by one ledger slot.
type Subtotal struct {
	Slot    ledger.Slot `json:"slot"`
	Label   string      `json:"label"`
	OneTime float64     `json:"one_time"`
	Annual  float64     `json:"annual"`
}

// Bundle is everything a renderer needs. It is computed once and never
// reads the journey again.
type Bundle struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Currency  string    `json:"currency"`

	Region     RegionInfo `json:"region"`
	FamilySize int        `json:"family_size"`
	LandArea   float64    `json:"land_area_m2"`
	HomeArea   float64    `json:"home_area_m2"`
	Mode       string     `json:"mode"`

	Subtotals   []Subtotal        `json:"subtotals"`
	Items       []ledger.LineItem `json:"items"`
	GrandTotal  float64           `json:"grand_total"`
	Contingency float64           `json:"contingency"`
	FinalTotal  float64           `json:"final_total"`
	AnnualTotal float64           `json:"annual_total"`

	AverageWeeklyHours float64 `json:"average_weekly_hours"`
	PeakWeeklyHours    float64 `json:"peak_weekly_hours"`

	FoodSystems   []string `json:"food_systems"`
	Resources     []string `json:"resources"`
	CreativeSpace string   `json:"creative_space,omitempty"`
}

// Input is the state a bundle is built from.
type Input struct {
	Catalog   *catalog.Catalog
	Decisions journey.Decisions
	Ledger    ledger.Snapshot
	Now       time.Time
	ID        string
}

// FromJourney captures the journey's current state.
func FromJourney(j *journey.Journey) Input {
	return Input{
		Catalog:   j.Catalog(),
		Decisions: j.Decisions(),
		Ledger:    j.Ledger(),
	}
}

var slotLabels = map[ledger.Slot]string{
	ledger.SlotLand:      "Land",
	ledger.SlotHome:      "Home",
	ledger.SlotFood:      "Food production",
	ledger.SlotResources: "Infrastructure",
	ledger.SlotCreative:  "Creative space",
}

// NewID returns a time-ordered receipt id.
func NewID(now time.Time) string {
	return ulid.MustNew(ulid.Timestamp(now), ulid.Monotonic(rand.Reader, 0)).String()
}

// Build computes the receipt bundle.
func Build(in Input) Bundle {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	id := in.ID
	if id == "" {
		id = NewID(now)
	}
	cat := in.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	d := in.Decisions
	totals := in.Ledger.Totals

	b := Bundle{
		ID:                 id,
		CreatedAt:          now.UTC(),
		Currency:           cat.Currency,
		FamilySize:         d.FamilySize,
		LandArea:           d.LandArea,
		HomeArea:           d.HomeArea(),
		Mode:               d.Mode,
		Items:              in.Ledger.Items,
		GrandTotal:         totals.OneTimeMoney,
		Contingency:        Contingency(totals.OneTimeMoney),
		AnnualTotal:        totals.AnnualMoney,
		AverageWeeklyHours: totals.AverageWeeklyHours,
		PeakWeeklyHours:    totals.PeakWeeklyHours,
		CreativeSpace:      d.Creative.DisplayName(cat),
	}
	b.FinalTotal = b.GrandTotal + b.Contingency

	if r := cat.Region(d.RegionID); r != nil {
		b.Region = RegionInfo{ID: r.ID, Name: r.Name, Country: r.Country, Description: r.Description}
	}
	if m := cat.Mode(d.Mode); m != nil {
		b.Mode = m.Name
	}

	for _, slot := range ledger.SlotOrder {
		t := in.Ledger.SlotTotals(slot)
		b.Subtotals = append(b.Subtotals, Subtotal{
			Slot:    slot,
			Label:   slotLabels[slot],
			OneTime: t.OneTimeMoney,
			Annual:  t.AnnualMoney,
		})
	}

	for _, sysID := range d.FoodSystems {
		if fs := cat.FoodSystem(sysID); fs != nil {
			b.FoodSystems = append(b.FoodSystems, fs.Name)
		}
	}
	for _, s := range d.Resources {
		res := cat.Resource(s.ID)
		if res == nil {
			continue
		}
		name := res.Name
		if v := res.Variant(s.Variant); v != nil {
			name += " (" + v.Name + ")"
		}
		b.Resources = append(b.Resources, name)
	}
	return b
}
