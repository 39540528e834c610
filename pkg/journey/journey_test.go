package journey

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derichenko12/BeyondHomeV3/pkg/catalog"
	"github.com/derichenko12/BeyondHomeV3/pkg/cost"
	"github.com/derichenko12/BeyondHomeV3/pkg/ledger"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newJourney(t *testing.T, opts ...Option) *Journey {
	t.Helper()
	return New(catalog.Default(), append([]Option{WithLogger(quietLogger())}, opts...)...)
}

// advanceTo presses Next until step is current.
func advanceTo(t *testing.T, j *Journey, step Step) {
	t.Helper()
	for j.Current() != step {
		require.True(t, j.Next(), "blocked at %s: %s", j.Current(), j.Blocker())
	}
}

// walkAndalusia answers every step of the full pipeline up to the receipt.
func walkAndalusia(t *testing.T, j *Journey) {
	t.Helper()
	advanceTo(t, j, StepPreferences)
	require.True(t, j.ToggleTag("sunny"))
	advanceTo(t, j, StepRegion)
	require.True(t, j.SelectRegion("andalusia"))
	advanceTo(t, j, StepFood)
	require.True(t, j.ToggleFoodSystem("vegetable_garden"))
	require.True(t, j.ToggleFoodSystem("chickens"))
	advanceTo(t, j, StepResources)
	require.True(t, j.ToggleResource("well"))
	require.True(t, j.ToggleResource("heat_pump"))
	advanceTo(t, j, StepCreative)
	require.True(t, j.ChooseTemplate("art_studio"))
	advanceTo(t, j, StepReceipt)
}

func TestBuiltinPipelinesValid(t *testing.T) {
	assert.NoError(t, Full.Validate())
	assert.NoError(t, Compact.Validate())
	assert.True(t, Full.Has(StepFamily))
	assert.False(t, Compact.Has(StepFamily))
}

func TestPipelineValidateRejects(t *testing.T) {
	tests := []struct {
		name  string
		steps []Step
	}{
		{"too short", []Step{StepIntro}},
		{"wrong start", []Step{StepRegion, StepReceipt}},
		{"wrong end", []Step{StepIntro, StepRegion}},
		{"duplicate", []Step{StepIntro, StepRegion, StepRegion, StepReceipt}},
		{"unknown", []Step{StepIntro, "pets", StepReceipt}},
		{"property with land", []Step{StepIntro, StepLand, StepProperty, StepReceipt}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, Pipeline{Name: tt.name, Steps: tt.steps}.Validate())
		})
	}
}

func TestParsePipeline(t *testing.T) {
	p, err := ParsePipeline("compact")
	require.NoError(t, err)
	assert.Equal(t, Compact.Name, p.Name)

	p, err = ParsePipeline("")
	require.NoError(t, err)
	assert.Equal(t, Full.Name, p.Name)

	_, err = ParsePipeline("scenic")
	assert.True(t, errors.Is(err, ErrUnknownPipeline))
}

func TestNewJourneyDefaults(t *testing.T) {
	j := newJourney(t)
	assert.Equal(t, StepIntro, j.Current())
	assert.Equal(t, 0, j.Index())

	d := j.Decisions()
	assert.Equal(t, 2, d.FamilySize)
	assert.Equal(t, 5000.0, d.LandArea)
	assert.Equal(t, 50000.0, d.HomePrice)
	assert.Equal(t, "homestead", d.Mode)
	assert.Empty(t, j.Ledger().Items)
	assert.False(t, j.Back(), "intro has nothing behind it")
}

func TestWithDefaultModeFallsBack(t *testing.T) {
	assert.Equal(t, "full", newJourney(t, WithDefaultMode("full")).Decisions().Mode)
	assert.Equal(t, DefaultMode, newJourney(t, WithDefaultMode("feral")).Decisions().Mode)
}

func TestForwardBlockedWithoutAnswer(t *testing.T) {
	j := newJourney(t)
	require.True(t, j.Next())
	assert.Equal(t, StepPreferences, j.Current())

	// No tags is a valid answer.
	assert.True(t, j.CanAdvance())
	assert.Empty(t, j.Blocker())
	require.True(t, j.Next())
	assert.Equal(t, StepRegion, j.Current())

	assert.False(t, j.CanAdvance())
	assert.Equal(t, "select a region", j.Blocker())
	assert.False(t, j.Next(), "region must be chosen")
	assert.Equal(t, StepRegion, j.Current())

	ranked := j.RankedRegions()
	require.Len(t, ranked, len(j.Catalog().Regions))
	for i, r := range ranked {
		assert.Equal(t, j.Catalog().Regions[i].ID, r.Region.ID, "catalog order without tags")
		assert.Zero(t, r.Score)
	}

	require.True(t, j.SelectRegion("galicia"))
	require.True(t, j.Next())
	assert.Equal(t, StepFamily, j.Current())
}

func TestFullJourneyAndalusia(t *testing.T) {
	j := newJourney(t)
	walkAndalusia(t, j)

	assert.True(t, j.Done())
	assert.False(t, j.Next(), "receipt is terminal")

	snap := j.Ledger()
	assert.Equal(t, 20000.0, snap.SlotTotals(ledger.SlotLand).OneTimeMoney)
	assert.Equal(t, 57500.0, snap.SlotTotals(ledger.SlotHome).OneTimeMoney)
	assert.Equal(t, 4000.0, snap.SlotTotals(ledger.SlotFood).OneTimeMoney)
	// solar_3kw 6000 + well 8000 + heat pump 11000
	assert.Equal(t, 25000.0, snap.SlotTotals(ledger.SlotResources).OneTimeMoney)
	assert.Equal(t, 10000.0, snap.SlotTotals(ledger.SlotCreative).OneTimeMoney)

	assert.Equal(t, 116500.0, snap.Totals.OneTimeMoney)
	assert.Equal(t, 2200.0, snap.Totals.AnnualMoney)
	assert.Equal(t, 8.0, snap.Totals.AverageWeeklyHours)
	assert.Equal(t, 14.0, snap.Totals.PeakWeeklyHours)

	assert.Equal(t, []cost.Selection{
		{ID: "solar_pv", Variant: "solar_3kw"},
		{ID: "well"},
		{ID: "heat_pump"},
	}, j.Decisions().Resources)
}

func TestBackKeepsDecisions(t *testing.T) {
	j := newJourney(t)
	walkAndalusia(t, j)
	before := j.Decisions()

	for j.Back() {
	}
	assert.Equal(t, StepIntro, j.Current())
	assert.Equal(t, before, j.Decisions())
	assert.Equal(t, 116500.0, j.Ledger().Totals.OneTimeMoney, "back never removes contributions")
}

func TestUpstreamChangeRepricesOnReentry(t *testing.T) {
	j := newJourney(t)
	walkAndalusia(t, j)

	for j.Current() != StepHome {
		require.True(t, j.Back())
	}
	assert.Equal(t, 150000.0, j.SetHomePrice(150000))
	assert.Contains(t, j.Ledger().Slots[ledger.SlotHome][0].Label, "150 m²")

	heatPump := func() float64 {
		for _, it := range j.Ledger().Slots[ledger.SlotResources] {
			if it.Key == "heat_pump" && it.Category == ledger.OneTimeMoney {
				return it.Value
			}
		}
		return 0
	}
	assert.Equal(t, 11000.0, heatPump(), "downstream slot waits for re-entry")

	report := Validate(j)
	assert.NotEmpty(t, report.Info, "stale resources slot is reported")

	advanceTo(t, j, StepResources)
	assert.Equal(t, 14300.0, heatPump(), "11000 * 1.3 for a 150 m² home")
}

func TestCompactPipeline(t *testing.T) {
	j := newJourney(t, WithPipeline(Compact))
	advanceTo(t, j, StepPreferences)
	require.True(t, j.ToggleTag("sunny"))
	advanceTo(t, j, StepRegion)
	require.True(t, j.SelectRegion("andalusia"))
	advanceTo(t, j, StepProperty)

	snap := j.Ledger()
	assert.Equal(t, 20000.0, snap.SlotTotals(ledger.SlotLand).OneTimeMoney)
	assert.Equal(t, 57500.0, snap.SlotTotals(ledger.SlotHome).OneTimeMoney)

	version := snap.Version
	j.SetLandArea(2500)
	snap = j.Ledger()
	assert.Equal(t, 10000.0, snap.SlotTotals(ledger.SlotLand).OneTimeMoney)
	assert.Equal(t, version+1, snap.Version)
	assert.Equal(t, 2, j.Decisions().FamilySize)
}

func TestInvalidPipelineOptionIgnored(t *testing.T) {
	j := newJourney(t, WithPipeline(Pipeline{Name: "broken", Steps: []Step{StepReceipt}}))
	assert.Equal(t, Full.Name, j.Pipeline().Name)
}

func TestSetModeRefitsFood(t *testing.T) {
	j := newJourney(t)
	advanceTo(t, j, StepPreferences)
	require.True(t, j.ToggleTag("sunny"))
	advanceTo(t, j, StepRegion)
	require.True(t, j.SelectRegion("andalusia"))
	advanceTo(t, j, StepLand)
	assert.Equal(t, 1000.0, j.SetLandArea(900))
	advanceTo(t, j, StepHome)
	j.SetHomePrice(200000)
	advanceTo(t, j, StepFood)

	// 1000 m² plot with a 150 m² home leaves 650 m² before utility space.
	require.True(t, j.ToggleFoodSystem("goats"))
	assert.False(t, j.ToggleFoodSystem("fruit_orchard"))
	require.True(t, j.ToggleFoodSystem("greenhouse"))

	// Full mode needs 600 + 60 m², more than the 615 m² left.
	require.True(t, j.SetMode("full"))
	assert.Equal(t, []string{"goats"}, j.Decisions().FoodSystems)
	assert.Len(t, j.Ledger().Slots[ledger.SlotFood], 4)
}

func TestFoodEntryDropsWhatNoLongerFits(t *testing.T) {
	j := newJourney(t)
	advanceTo(t, j, StepPreferences)
	require.True(t, j.ToggleTag("sunny"))
	advanceTo(t, j, StepRegion)
	require.True(t, j.SelectRegion("andalusia"))
	advanceTo(t, j, StepLand)
	j.SetLandArea(1000)
	advanceTo(t, j, StepFood)
	require.True(t, j.SetMode("full"))
	require.True(t, j.ToggleFoodSystem("goats"))
	require.True(t, j.ToggleFoodSystem("greenhouse"))

	require.True(t, j.Back())
	j.SetHomePrice(200000)
	require.True(t, j.Next())
	assert.Equal(t, []string{"goats"}, j.Decisions().FoodSystems)
}

func TestResourcesEntryPrunesAndAutoSelects(t *testing.T) {
	j := newJourney(t)
	advanceTo(t, j, StepPreferences)
	require.True(t, j.ToggleTag("coastal"))
	advanceTo(t, j, StepRegion)
	require.True(t, j.SelectRegion("andalusia"))
	advanceTo(t, j, StepFood)
	require.True(t, j.ToggleFoodSystem("vegetable_garden"))
	advanceTo(t, j, StepResources)

	assert.Equal(t, []cost.Selection{{ID: "solar_pv", Variant: "solar_3kw"}}, j.Decisions().Resources)
	assert.False(t, j.CanAdvance())
	require.True(t, j.ToggleResource("well"))
	require.True(t, j.ToggleResource("heat_pump"))
	require.True(t, j.ToggleResource("wind_turbine"))
	assert.False(t, j.ToggleResource("micro_hydro"), "no rivers in Andalusia")

	for j.Current() != StepRegion {
		require.True(t, j.Back())
	}
	require.True(t, j.SelectRegion("varmland"))
	advanceTo(t, j, StepResources)

	// Solar and wind are excluded in snowy forest; micro-hydro fills energy.
	assert.Equal(t, []cost.Selection{
		{ID: "well"},
		{ID: "heat_pump"},
		{ID: "micro_hydro"},
	}, j.Decisions().Resources)
	assert.True(t, j.CanAdvance())
}

func TestDeselectingAutoSelectedResourceSticks(t *testing.T) {
	j := newJourney(t)
	advanceTo(t, j, StepPreferences)
	require.True(t, j.ToggleTag("sunny"))
	advanceTo(t, j, StepRegion)
	require.True(t, j.SelectRegion("andalusia"))
	advanceTo(t, j, StepFood)
	require.True(t, j.ToggleFoodSystem("chickens"))
	advanceTo(t, j, StepResources)

	require.True(t, j.ToggleResource("solar_pv"))
	assert.Empty(t, j.Decisions().Resources)
	assert.Empty(t, j.Ledger().Slots[ledger.SlotResources])
}

func TestSelectVariant(t *testing.T) {
	j := newJourney(t)
	advanceTo(t, j, StepPreferences)
	require.True(t, j.ToggleTag("sunny"))
	advanceTo(t, j, StepRegion)
	require.True(t, j.SelectRegion("andalusia"))
	advanceTo(t, j, StepFood)
	require.True(t, j.ToggleFoodSystem("chickens"))
	advanceTo(t, j, StepResources)

	assert.False(t, j.SelectVariant("solar_pv", "solar_99kw"))
	assert.False(t, j.SelectVariant("well", "deep"), "well is not selected")
	require.True(t, j.SelectVariant("solar_pv", "solar_8kw"))
	assert.Equal(t, 14000.0, j.Ledger().SlotTotals(ledger.SlotResources).OneTimeMoney)

	require.True(t, j.SelectVariant("solar_pv", ""))
	assert.Equal(t, 9000.0, j.Ledger().SlotTotals(ledger.SlotResources).OneTimeMoney)
}

func TestSettersRejectBadInput(t *testing.T) {
	j := newJourney(t)
	assert.False(t, j.SelectRegion("atlantis"))
	assert.False(t, j.SetFamilySize(3))
	assert.False(t, j.SetMode("feral"))
	assert.False(t, j.ToggleTag("volcanic"))
	assert.False(t, j.ToggleTag("   "))
	assert.False(t, j.ChooseTemplate("ballroom"))
	assert.False(t, j.ChooseCustom("   ", 1000))
	assert.False(t, j.ChooseCustom("Studio", -1))
	assert.False(t, j.ChooseCustom("Studio", math.NaN()))
	assert.False(t, j.ChooseCustom("Studio", math.Inf(1)))
	assert.False(t, j.SetCreative(cost.CustomChoice("Studio", math.Inf(-1))))
	assert.False(t, j.SetCreative(cost.CreativeChoice{}))
	assert.Equal(t, DefaultDecisions(), j.Decisions())
}

func TestNonFiniteSlidersKeepValue(t *testing.T) {
	j := newJourney(t)
	require.True(t, j.SelectRegion("andalusia"))
	advanceTo(t, j, StepLand)
	require.Equal(t, 5250.0, j.SetLandArea(5250))
	version := j.Ledger().Version

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.Equal(t, 5250.0, j.SetLandArea(v))
		assert.Equal(t, DefaultHomePrice, j.SetHomePrice(v))
	}
	assert.Equal(t, 5250.0, j.Decisions().LandArea)
	assert.Equal(t, DefaultHomePrice, j.Decisions().HomePrice)
	assert.Equal(t, version, j.Ledger().Version)
	assert.Equal(t, 21000.0, j.Ledger().Totals.OneTimeMoney)

	_, err := json.Marshal(j.Snapshot())
	assert.NoError(t, err)
}

func TestNonFiniteCustomBudgetKeepsChoice(t *testing.T) {
	j := newJourney(t)
	walkAndalusia(t, j)
	require.True(t, j.Back())
	require.Equal(t, StepCreative, j.Current())

	assert.False(t, j.ChooseCustom("Studio", math.NaN()))
	assert.False(t, j.ChooseCustom("Studio", math.Inf(1)))
	assert.Equal(t, cost.TemplateChoice("art_studio"), j.Decisions().Creative)
	assert.Equal(t, 116500.0, j.Ledger().Totals.OneTimeMoney)

	_, err := json.Marshal(j.Snapshot())
	assert.NoError(t, err)
}

func TestConflictingTagsReplaceEachOther(t *testing.T) {
	j := newJourney(t)
	require.True(t, j.ToggleTag("forest"))
	require.True(t, j.ToggleTag("sunny"))

	// cold_winters conflicts with sunny, declared on sunny.
	require.True(t, j.ToggleTag("cold_winters"))
	assert.Equal(t, []string{"forest", "cold_winters"}, j.Decisions().Tags)

	// And the other way round.
	require.True(t, j.ToggleTag("sunny"))
	assert.Equal(t, []string{"forest", "sunny"}, j.Decisions().Tags)

	require.True(t, j.ToggleTag("mild_winters"))
	assert.Equal(t, []string{"forest", "sunny", "mild_winters"}, j.Decisions().Tags)
}

func TestSetTagsLaterConflictWins(t *testing.T) {
	j := newJourney(t)
	assert.False(t, j.SetTags([]string{"sunny", "lakes", "cold_winters"}), "sunny was dropped")
	assert.Equal(t, []string{"lakes", "cold_winters"}, j.Decisions().Tags)

	assert.True(t, j.SetTags([]string{"sunny", "mild_winters"}))
	assert.Equal(t, []string{"sunny", "mild_winters"}, j.Decisions().Tags)
}

func TestFreeTextIsNormalized(t *testing.T) {
	j := newJourney(t)
	require.True(t, j.ToggleTag("  SUNNY "))
	assert.Equal(t, []string{"sunny"}, j.Decisions().Tags)
	require.True(t, j.ToggleTag("sunny"))
	assert.Empty(t, j.Decisions().Tags)

	require.True(t, j.SelectRegion("Andalusia"))
	require.True(t, j.ChooseCustom("  Ｂoat shed ", 12000))
	assert.Equal(t, "Boat shed", j.Decisions().Creative.Name)
}

func TestCreativeStep(t *testing.T) {
	j := newJourney(t)
	walkAndalusia(t, j)
	require.True(t, j.Back())
	require.Equal(t, StepCreative, j.Current())

	require.True(t, j.ChooseCustom("Boat shed", 12345.4))
	assert.Equal(t, 12345.0, j.Ledger().SlotTotals(ledger.SlotCreative).OneTimeMoney)

	j.SkipCreative()
	_, ok := j.Ledger().Slots[ledger.SlotCreative]
	assert.False(t, ok, "a skip contributes nothing")
	assert.True(t, j.CanAdvance())
}

func TestRestart(t *testing.T) {
	j := newJourney(t)
	walkAndalusia(t, j)
	j.Restart()

	assert.Equal(t, StepIntro, j.Current())
	assert.Equal(t, DefaultDecisions(), j.Decisions())
	snap := j.Ledger()
	assert.Empty(t, snap.Items)
	assert.Zero(t, snap.Totals.OneTimeMoney)
}

func TestSetCatalogReprices(t *testing.T) {
	j := newJourney(t)
	advanceTo(t, j, StepPreferences)
	require.True(t, j.ToggleTag("sunny"))
	advanceTo(t, j, StepRegion)
	require.True(t, j.SelectRegion("andalusia"))
	advanceTo(t, j, StepLand)
	require.Equal(t, 20000.0, j.Ledger().Totals.OneTimeMoney)

	cat := catalog.Default()
	cat.Region("andalusia").PricePerSqm = 5
	j.SetCatalog(cat)
	assert.Equal(t, 25000.0, j.Ledger().Totals.OneTimeMoney)

	j.SetCatalog(nil)
	assert.Same(t, cat, j.Catalog())
}

func TestSnapshotState(t *testing.T) {
	j := newJourney(t)
	walkAndalusia(t, j)
	for j.Current() != StepFood {
		require.True(t, j.Back())
	}

	s := j.Snapshot()
	assert.Equal(t, "full", s.Pipeline)
	assert.Equal(t, StepFood, s.Step)
	assert.Equal(t, "Food production", s.Title)
	assert.True(t, s.CanAdvance)
	assert.Empty(t, s.Blocker)
	assert.Equal(t, 20000.0, s.LandPrice)
	assert.Equal(t, 70.0, s.HomeArea)
	// 5000 - (70 + 200 + 10 + 15); garden 160 + chickens 80
	assert.Equal(t, 4705.0, s.Space.Available)
	assert.Equal(t, 240.0, s.Space.Used)

	s.Decisions.FoodSystems[0] = "goats"
	assert.Equal(t, "vegetable_garden", j.Decisions().FoodSystems[0], "snapshot is detached")
}

func TestValidateJourney(t *testing.T) {
	j := newJourney(t)
	r := Validate(j)
	assert.False(t, r.Valid, "no region")

	advanceTo(t, j, StepPreferences)
	require.True(t, j.ToggleTag("forest"))
	advanceTo(t, j, StepRegion)
	require.True(t, j.SelectRegion("varmland"))
	advanceTo(t, j, StepFood)
	require.True(t, j.ToggleFoodSystem("goats"))
	require.True(t, j.ToggleFoodSystem("greenhouse"))
	require.True(t, j.ToggleFoodSystem("chickens"))

	r = Validate(j)
	assert.True(t, r.Valid)
	require.Len(t, r.Warnings, 1)
	assert.Equal(t, "food_systems.goats", r.Warnings[0].Path)
	require.Len(t, r.Info, 1)
	assert.Equal(t, "food_systems.chickens", r.Info[0].Path)
}

func TestRankedRegionsFollowTags(t *testing.T) {
	j := newJourney(t)
	require.True(t, j.ToggleTag("forest"))
	require.True(t, j.ToggleTag("lakes"))
	require.True(t, j.ToggleTag("cold_winters"))

	ranked := j.RankedRegions()
	require.Len(t, ranked, len(j.Catalog().Regions))
	assert.Equal(t, "varmland", ranked[0].Region.ID)
	assert.Equal(t, 3, ranked[0].Score)
}
