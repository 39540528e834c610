package tui

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derichenko12/BeyondHomeV3/pkg/catalog"
	"github.com/derichenko12/BeyondHomeV3/pkg/cost"
	"github.com/derichenko12/BeyondHomeV3/pkg/journey"
)

func newTestModel(t *testing.T) (Model, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	j := journey.New(catalog.Default(), journey.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return NewModel(j, Options{Fs: fs, ExportDir: "receipts"}), fs
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// cursorTo moves the cursor down to the row with id.
func cursorTo(t *testing.T, m Model, id string) Model {
	t.Helper()
	rows := m.rows()
	for m.Cursor > 0 {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	}
	for i := range rows {
		if rows[i].id == id {
			return m
		}
		m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	t.Fatalf("no row %q on step %s", id, m.Journey.Current())
	return m
}

func choose(t *testing.T, m Model, id string) Model {
	t.Helper()
	m = cursorTo(t, m, id)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, m.StatusErr, "selecting %s: %s", id, m.Status)
	return m
}

func next(t *testing.T, m Model, want journey.Step) Model {
	t.Helper()
	m = press(t, m, runeKey("n"))
	require.Equal(t, want, m.Journey.Current(), "status: %s", m.Status)
	return m
}

// walkToReceipt answers every step the way the journey tests do.
func walkToReceipt(t *testing.T, m Model) Model {
	t.Helper()
	m = next(t, m, journey.StepPreferences)
	m = choose(t, m, "sunny")
	m = next(t, m, journey.StepRegion)
	m = choose(t, m, "andalusia")
	m = next(t, m, journey.StepFamily)
	m = choose(t, m, "2")
	m = next(t, m, journey.StepLand)
	m = next(t, m, journey.StepHome)
	m = next(t, m, journey.StepFood)
	m = choose(t, m, "vegetable_garden")
	m = choose(t, m, "chickens")
	m = next(t, m, journey.StepResources)
	m = choose(t, m, "well")
	m = choose(t, m, "heat_pump")
	m = next(t, m, journey.StepCreative)
	m = choose(t, m, "art_studio")
	return next(t, m, journey.StepReceipt)
}

func TestNextBlockedShowsReason(t *testing.T) {
	m, _ := newTestModel(t)
	m = next(t, m, journey.StepPreferences)
	m = next(t, m, journey.StepRegion)

	m = press(t, m, runeKey("n"))
	assert.Equal(t, journey.StepRegion, m.Journey.Current())
	assert.True(t, m.StatusErr)
	assert.Equal(t, "select a region", m.Status)
	assert.Contains(t, m.View(), "select a region")
}

func TestConflictingTagReplacesSelection(t *testing.T) {
	m, _ := newTestModel(t)
	m = next(t, m, journey.StepPreferences)
	m = choose(t, m, "sunny")
	m = choose(t, m, "cold_winters")
	assert.Equal(t, []string{"cold_winters"}, m.Journey.Decisions().Tags)

	for _, r := range m.rows() {
		if r.id == "sunny" {
			assert.False(t, r.checked)
			assert.Equal(t, "replaces cold_winters", r.detail)
		}
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	m, _ := newTestModel(t)
	m = next(t, m, journey.StepPreferences)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.Cursor)

	n := len(m.rows())
	for i := 0; i < n+3; i++ {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, n-1, m.Cursor)
}

func TestFullWalkBuildsReceipt(t *testing.T) {
	m, _ := newTestModel(t)
	m = walkToReceipt(t, m)

	totals := m.Journey.Ledger().Totals
	assert.Equal(t, 116500.0, totals.OneTimeMoney)
	assert.Equal(t, 2200.0, totals.AnnualMoney)

	require.NotNil(t, m.bundle)
	assert.Equal(t, 151450.0, m.bundle.FinalTotal)

	view := m.View()
	assert.Contains(t, view, "EUR 151,450")
	assert.Contains(t, view, "Contingency (30%)")
	assert.NotContains(t, view, "Your cart")
}

func TestCartFollowsSelections(t *testing.T) {
	m, _ := newTestModel(t)
	m = next(t, m, journey.StepPreferences)
	assert.Contains(t, m.cart(), "nothing yet")

	m = choose(t, m, "sunny")
	m = next(t, m, journey.StepRegion)
	m = choose(t, m, "andalusia")
	m = next(t, m, journey.StepFamily)
	m = next(t, m, journey.StepLand)

	cart := m.cart()
	assert.Contains(t, cart, "Your cart")
	assert.Contains(t, cart, "EUR 20,000")
}

func TestSliderSnapsToStep(t *testing.T) {
	m, _ := newTestModel(t)
	m = next(t, m, journey.StepPreferences)
	m = choose(t, m, "sunny")
	m = next(t, m, journey.StepRegion)
	m = choose(t, m, "andalusia")
	m = next(t, m, journey.StepFamily)
	m = next(t, m, journey.StepLand)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 5250.0, m.Journey.Decisions().LandArea)
	m = press(t, m, runeKey("h"), runeKey("h"))
	assert.Equal(t, 4750.0, m.Journey.Decisions().LandArea)
	assert.Contains(t, m.View(), "4750 m²")

	m = next(t, m, journey.StepHome)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 50000.0-cost.HomePriceStep, m.Journey.Decisions().HomePrice)
}

func TestSliderClampsAtBounds(t *testing.T) {
	m, _ := newTestModel(t)
	m = next(t, m, journey.StepPreferences)
	m = choose(t, m, "sunny")
	m = next(t, m, journey.StepRegion)
	m = choose(t, m, "andalusia")
	m = next(t, m, journey.StepFamily)
	m = next(t, m, journey.StepLand)

	for i := 0; i < 40; i++ {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	}
	assert.Equal(t, cost.LandAreaMax, m.Journey.Decisions().LandArea)
}

func TestFoodRejectionExplainsSpace(t *testing.T) {
	m, _ := newTestModel(t)
	m = next(t, m, journey.StepPreferences)
	m = choose(t, m, "sunny")
	m = next(t, m, journey.StepRegion)
	m = choose(t, m, "andalusia")
	m = next(t, m, journey.StepFamily)
	m = next(t, m, journey.StepLand)
	for i := 0; i < 20; i++ {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	}
	require.Equal(t, cost.LandAreaMin, m.Journey.Decisions().LandArea)
	m = next(t, m, journey.StepHome)
	m = next(t, m, journey.StepFood)

	// 1000 m² plot, 70 m² home: goats fit, the orchard then does not.
	m = choose(t, m, "goats")
	m = cursorTo(t, m, "fruit_orchard")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.StatusErr)
	assert.Contains(t, m.Status, "not enough land left for")
	assert.Equal(t, []string{"goats"}, m.Journey.Decisions().FoodSystems)
}

func TestModeCycles(t *testing.T) {
	m, _ := newTestModel(t)
	m = next(t, m, journey.StepPreferences)
	m = choose(t, m, "sunny")
	m = next(t, m, journey.StepRegion)
	m = choose(t, m, "andalusia")
	m = next(t, m, journey.StepFamily)
	m = next(t, m, journey.StepLand)
	m = next(t, m, journey.StepHome)
	m = next(t, m, journey.StepFood)

	require.Equal(t, "homestead", m.Journey.Decisions().Mode)
	m = press(t, m, runeKey("m"))
	assert.Equal(t, "full", m.Journey.Decisions().Mode)
	m = press(t, m, runeKey("m"))
	assert.Equal(t, "hobby", m.Journey.Decisions().Mode)
}

func TestVariantCycles(t *testing.T) {
	m, _ := newTestModel(t)
	m = walkToReceipt(t, m)
	m = press(t, m, runeKey("b"), runeKey("b"))
	require.Equal(t, journey.StepResources, m.Journey.Current())

	m = cursorTo(t, m, "solar_pv")
	m = press(t, m, runeKey("v"))
	var variant string
	for _, s := range m.Journey.Decisions().Resources {
		if s.ID == "solar_pv" {
			variant = s.Variant
		}
	}
	assert.Equal(t, "solar_5kw", variant)
	assert.Contains(t, m.View(), "Solar")
}

func TestVariantNeedsSelection(t *testing.T) {
	m, _ := newTestModel(t)
	m = walkToReceipt(t, m)
	m = press(t, m, runeKey("b"), runeKey("b"))

	m = choose(t, m, "solar_pv") // deselect the auto-selected array
	m = press(t, m, runeKey("v"))
	assert.True(t, m.StatusErr)
	assert.False(t, m.Journey.Decisions().HasResource("solar_pv"))
}

func TestCustomCreativeSpace(t *testing.T) {
	m, _ := newTestModel(t)
	m = walkToReceipt(t, m)
	m = press(t, m, runeKey("b"))
	require.Equal(t, journey.StepCreative, m.Journey.Current())

	m = press(t, m, runeKey("c"))
	require.True(t, m.Editing)
	m = typeText(t, m, "Boat shed")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "12,000")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.Editing)
	assert.False(t, m.StatusErr, m.Status)
	c := m.Journey.Decisions().Creative
	assert.Equal(t, cost.CustomChoice("Boat shed", 12000), c)
	assert.Contains(t, m.View(), "Custom: Boat shed (EUR 12,000)")
}

func TestCustomCreativeRejectsBadBudget(t *testing.T) {
	m, _ := newTestModel(t)
	m = walkToReceipt(t, m)
	m = press(t, m, runeKey("b"))

	m = press(t, m, runeKey("c"))
	m = typeText(t, m, "Kiln")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "lots")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.Editing)
	assert.True(t, m.StatusErr)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Editing)
	assert.Equal(t, cost.TemplateChoice("art_studio"), m.Journey.Decisions().Creative)
}

func TestSkipCreative(t *testing.T) {
	m, _ := newTestModel(t)
	m = walkToReceipt(t, m)
	m = press(t, m, runeKey("b"))
	m = press(t, m, runeKey("s"))
	assert.Equal(t, cost.SkipChoice(), m.Journey.Decisions().Creative)
	assert.Equal(t, 106500.0, m.Journey.Ledger().Totals.OneTimeMoney)
}

func TestExportWritesReceipt(t *testing.T) {
	m, fs := newTestModel(t)
	m = walkToReceipt(t, m)

	m = press(t, m, runeKey("e"))
	require.False(t, m.StatusErr, m.Status)
	path := strings.TrimPrefix(m.Status, "saved ")
	assert.True(t, strings.HasSuffix(path, ".html"))

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "151,450")
}

func TestExportOnlyOnReceipt(t *testing.T) {
	m, fs := newTestModel(t)
	m = press(t, m, runeKey("e"))
	assert.Empty(t, m.Status)

	exists, err := afero.DirExists(fs, "receipts")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRestartFromReceipt(t *testing.T) {
	m, _ := newTestModel(t)
	m = walkToReceipt(t, m)

	m = press(t, m, runeKey("r"))
	assert.Equal(t, journey.StepIntro, m.Journey.Current())
	assert.Nil(t, m.bundle)
	assert.Empty(t, m.Journey.Ledger().Items)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(runeKey("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestWindowSize(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	m = updated.(Model)
	assert.Equal(t, 140, m.Width)
	assert.Equal(t, 102, m.bodyWidth())
}

func TestHelpShowsStepBindings(t *testing.T) {
	m, _ := newTestModel(t)
	help := m.help()
	assert.Contains(t, help, "next step")
	assert.NotContains(t, help, "export")

	m = walkToReceipt(t, m)
	help = m.help()
	assert.Contains(t, help, "export")
	assert.NotContains(t, help, "select")
}

func TestGauge(t *testing.T) {
	assert.Equal(t, strings.Repeat("░", 24), gauge(1000, 1000, 10000))
	assert.Equal(t, strings.Repeat("█", 24), gauge(10000, 1000, 10000))
	assert.Equal(t, strings.Repeat("█", 24), gauge(20000, 1000, 10000))
}

func TestParseBudget(t *testing.T) {
	v, err := parseBudget("12,000")
	require.NoError(t, err)
	assert.Equal(t, 12000.0, v)

	_, err = parseBudget("")
	assert.Error(t, err)

	for _, in := range []string{"NaN", "Inf", "-inf", "1e999"} {
		_, err = parseBudget(in)
		assert.Error(t, err, in)
	}
}

func TestCustomCreativeRejectsNonFiniteBudget(t *testing.T) {
	m, _ := newTestModel(t)
	m = walkToReceipt(t, m)
	m = press(t, m, runeKey("b"))

	m = press(t, m, runeKey("c"))
	m = typeText(t, m, "Kiln")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "NaN")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.Editing)
	assert.True(t, m.StatusErr)
	assert.Equal(t, cost.TemplateChoice("art_studio"), m.Journey.Decisions().Creative)
	assert.Equal(t, 116500.0, m.Journey.Ledger().Totals.OneTimeMoney)
}
