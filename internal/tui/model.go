package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/derichenko12/BeyondHomeV3/pkg/cost"
	"github.com/derichenko12/BeyondHomeV3/pkg/journey"
	"github.com/derichenko12/BeyondHomeV3/pkg/receipt"
)

// stepKind describes which controls a step offers.
type stepKind struct {
	hasList  bool
	sliders  int
	modes    bool
	variants bool
	creative bool
	receipt  bool
}

func kindOf(step journey.Step) stepKind {
	switch step {
	case journey.StepPreferences, journey.StepRegion, journey.StepFamily:
		return stepKind{hasList: true}
	case journey.StepLand, journey.StepHome:
		return stepKind{sliders: 1}
	case journey.StepProperty:
		return stepKind{sliders: 2}
	case journey.StepFood:
		return stepKind{hasList: true, modes: true}
	case journey.StepResources:
		return stepKind{hasList: true, variants: true}
	case journey.StepCreative:
		return stepKind{hasList: true, creative: true}
	case journey.StepReceipt:
		return stepKind{receipt: true}
	}
	return stepKind{}
}

// Options configures the model.
type Options struct {
	Fs        afero.Fs
	ExportDir string
}

// Model is the root bubbletea model: one journey, a cursor over the current
// step's options and a live cart.
type Model struct {
	Journey *journey.Journey
	Keys    KeyMap
	Edit    EditKeyMap
	Cursor  int
	Width   int
	Height  int

	Status    string
	StatusErr bool

	// Custom creative form.
	Editing     bool
	NameInput   textinput.Model
	BudgetInput textinput.Model

	bundle    *receipt.Bundle
	fs        afero.Fs
	exportDir string
}

// NewModel wraps a journey.
func NewModel(j *journey.Journey, opts Options) Model {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "receipts"
	}

	name := textinput.New()
	name.Prompt = "▸ "
	name.Placeholder = "name of your space"
	name.CharLimit = 64

	budget := textinput.New()
	budget.Prompt = "▸ "
	budget.Placeholder = "budget"
	budget.CharLimit = 12

	m := Model{
		Journey:     j,
		Keys:        DefaultKeyMap(),
		Edit:        DefaultEditKeyMap(),
		NameInput:   name,
		BudgetInput: budget,
		Width:       100,
		fs:          opts.Fs,
		exportDir:   opts.ExportDir,
	}
	m.enteredStep()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.Editing {
			return m.updateEditing(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := stepKeyMap(m.Keys, kindOf(m.Journey.Current()))
	m.Status, m.StatusErr = "", false

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.Cursor < m.rowCount()-1 {
			m.Cursor++
		}
	case key.Matches(msg, keys.Select):
		m.selectRow()
	case key.Matches(msg, keys.Next):
		if reason := m.Journey.Blocker(); !m.Journey.Next() {
			m.fail(reason)
		} else {
			m.enteredStep()
		}
	case key.Matches(msg, keys.Prev):
		if m.Journey.Back() {
			m.enteredStep()
		}
	case key.Matches(msg, keys.Decrease):
		m.slide(-1)
	case key.Matches(msg, keys.Increase):
		m.slide(1)
	case key.Matches(msg, keys.Mode):
		m.cycleMode()
	case key.Matches(msg, keys.Variant):
		m.cycleVariant()
	case key.Matches(msg, keys.Custom):
		return m.startEditing()
	case key.Matches(msg, keys.Skip):
		m.Journey.SkipCreative()
		m.info("no creative space")
	case key.Matches(msg, keys.Export):
		m.export()
	case key.Matches(msg, keys.Restart):
		m.Journey.Restart()
		m.enteredStep()
		m.info("started over")
	}
	return m, nil
}

func (m *Model) fail(msg string) {
	m.Status, m.StatusErr = msg, true
}

func (m *Model) info(msg string) {
	m.Status, m.StatusErr = msg, false
}

func (m *Model) enteredStep() {
	m.Cursor = 0
	m.bundle = nil
	if m.Journey.Done() {
		b := receipt.Build(receipt.FromJourney(m.Journey))
		m.bundle = &b
	}
}

func (m Model) rowCount() int {
	if k := kindOf(m.Journey.Current()); k.sliders > 0 {
		return k.sliders
	}
	return len(m.rows())
}

func (m *Model) selectRow() {
	rows := m.rows()
	if m.Cursor >= len(rows) {
		return
	}
	r := rows[m.Cursor]
	j := m.Journey

	var ok bool
	switch j.Current() {
	case journey.StepPreferences:
		ok = j.ToggleTag(r.id)
	case journey.StepRegion:
		ok = j.SelectRegion(r.id)
	case journey.StepFamily:
		n, _ := strconv.Atoi(r.id)
		ok = j.SetFamilySize(n)
	case journey.StepFood:
		if ok = j.ToggleFoodSystem(r.id); !ok {
			m.fail("not enough land left for " + r.label)
			return
		}
	case journey.StepResources:
		ok = j.ToggleResource(r.id)
	case journey.StepCreative:
		switch r.id {
		case rowCustom:
			m.beginEditing()
			return
		case rowSkip:
			j.SkipCreative()
			ok = true
		default:
			ok = j.ChooseTemplate(r.id)
		}
	}
	if !ok {
		m.fail("cannot select " + r.label)
	}
}

func (m *Model) slide(dir float64) {
	j := m.Journey
	d := j.Decisions()
	landSlider := j.Current() == journey.StepLand || (j.Current() == journey.StepProperty && m.Cursor == 0)
	if landSlider {
		j.SetLandArea(d.LandArea + dir*cost.LandAreaStep)
		return
	}
	j.SetHomePrice(d.HomePrice + dir*cost.HomePriceStep)
}

func (m *Model) cycleMode() {
	modes := m.Journey.Catalog().Modes
	if len(modes) == 0 {
		return
	}
	current := m.Journey.Decisions().Mode
	next := 0
	for i, mode := range modes {
		if mode.ID == current {
			next = (i + 1) % len(modes)
			break
		}
	}
	before := len(m.Journey.Decisions().FoodSystems)
	m.Journey.SetMode(modes[next].ID)
	if dropped := before - len(m.Journey.Decisions().FoodSystems); dropped > 0 {
		m.info(fmt.Sprintf("%s mode: %d system(s) no longer fit", modes[next].Name, dropped))
	}
}

func (m *Model) cycleVariant() {
	rows := m.rows()
	if m.Cursor >= len(rows) {
		return
	}
	id := rows[m.Cursor].id
	res := m.Journey.Catalog().Resource(id)
	if res == nil || len(res.Variants) == 0 {
		return
	}
	d := m.Journey.Decisions()
	if !d.HasResource(id) {
		m.fail("select " + res.Name + " first")
		return
	}
	current := ""
	for _, s := range d.Resources {
		if s.ID == id {
			current = s.Variant
		}
	}
	next := 0
	for i, v := range res.Variants {
		if v.ID == current {
			next = (i + 1) % len(res.Variants)
		}
	}
	m.Journey.SelectVariant(id, res.Variants[next].ID)
}

func (m *Model) beginEditing() {
	m.Editing = true
	m.NameInput.SetValue("")
	m.BudgetInput.SetValue("")
	m.NameInput.Focus()
	m.BudgetInput.Blur()
}

func (m Model) startEditing() (tea.Model, tea.Cmd) {
	m.beginEditing()
	return m, textinput.Blink
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Edit.Cancel):
		m.Editing = false
		return m, nil
	case key.Matches(msg, m.Edit.Switch):
		if m.NameInput.Focused() {
			m.NameInput.Blur()
			m.BudgetInput.Focus()
		} else {
			m.BudgetInput.Blur()
			m.NameInput.Focus()
		}
		return m, nil
	case key.Matches(msg, m.Edit.Submit):
		budget, err := parseBudget(m.BudgetInput.Value())
		if err != nil {
			m.fail("budget must be a number")
			return m, nil
		}
		if !m.Journey.ChooseCustom(m.NameInput.Value(), budget) {
			m.fail("give your space a name and a budget of zero or more")
			return m, nil
		}
		m.Editing = false
		m.info("custom space saved")
		return m, nil
	}

	var cmd tea.Cmd
	if m.NameInput.Focused() {
		m.NameInput, cmd = m.NameInput.Update(msg)
	} else {
		m.BudgetInput, cmd = m.BudgetInput.Update(msg)
	}
	return m, cmd
}

func parseBudget(s string) (float64, error) {
	s = strings.NewReplacer(",", "", "_", "", " ", "").Replace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if !cost.Finite(v) {
		return 0, fmt.Errorf("budget %q is not a finite number", s)
	}
	return v, nil
}

func (m *Model) export() {
	if m.bundle == nil {
		return
	}
	path, err := receipt.Export(m.fs, m.exportDir, *m.bundle, receipt.FormatHTML)
	if err != nil {
		m.fail(err.Error())
		return
	}
	m.info("saved " + path)
}
