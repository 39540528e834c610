package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/derichenko12/BeyondHomeV3/pkg/cost"
	"github.com/derichenko12/BeyondHomeV3/pkg/journey"
	"github.com/derichenko12/BeyondHomeV3/pkg/receipt"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	body := m.body()
	if m.Journey.Done() {
		b.WriteString(body)
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(m.bodyWidth()).Render(body), m.cart()))
	}
	b.WriteString("\n")

	if m.Status != "" {
		style := styleStatusInfo
		if m.StatusErr {
			style = styleStatusError
		}
		b.WriteString(style.Render(m.Status))
		b.WriteString("\n")
	}
	b.WriteString(m.help())
	return b.String()
}

func (m Model) bodyWidth() int {
	w := m.Width - 38
	if w < 40 {
		w = 40
	}
	return w
}

func (m Model) header() string {
	j := m.Journey
	steps := j.Pipeline().Steps
	title := styleHeader.Render(fmt.Sprintf("BeyondHome · %s", j.Current().Title()))
	progress := styleProgress.Render(fmt.Sprintf(" step %d/%d ", j.Index()+1, len(steps)))

	crumbs := make([]string, len(steps))
	for i, s := range steps {
		switch {
		case i < j.Index():
			crumbs[i] = styleStepDone.Render(string(s))
		case i == j.Index():
			crumbs[i] = styleStepCurrent.Render(string(s))
		default:
			crumbs[i] = styleStepTodo.Render(string(s))
		}
	}
	return title + progress + "\n" + strings.Join(crumbs, styleStepTodo.Render(" › "))
}

func (m Model) body() string {
	j := m.Journey
	d := j.Decisions()
	cat := j.Catalog()

	switch j.Current() {
	case journey.StepIntro:
		return "Estimate the money, land and time it takes to live off-grid.\n" +
			"Answer each step; the cart on the right keeps a running total.\n\n" +
			"Press n to begin."

	case journey.StepLand:
		return m.landSlider(d, true)

	case journey.StepHome:
		return m.homeSlider(d, true)

	case journey.StepProperty:
		return m.landSlider(d, m.Cursor == 0) + "\n\n" + m.homeSlider(d, m.Cursor == 1)

	case journey.StepReceipt:
		if m.bundle == nil {
			return ""
		}
		var buf strings.Builder
		if err := receipt.WriteText(&buf, *m.bundle); err != nil {
			return err.Error()
		}
		return buf.String()
	}

	var b strings.Builder
	switch j.Current() {
	case journey.StepFood:
		if mode := cat.Mode(d.Mode); mode != nil {
			fmt.Fprintf(&b, "Mode: %s (m to change)\n", styleSlider.Render(mode.Name))
		}
		s := j.Snapshot().Space
		fmt.Fprintf(&b, "Growing space: %.0f of %.0f m² used\n\n", s.Used, s.Available)
	case journey.StepRegion:
		if len(d.Tags) > 0 {
			fmt.Fprintf(&b, "Ranked for: %s\n\n", strings.Join(d.Tags, ", "))
		}
	}

	for i, r := range m.rows() {
		b.WriteString(renderRow(r, i == m.Cursor))
		b.WriteString("\n")
	}
	if m.Editing {
		b.WriteString("\n")
		b.WriteString("Name:   " + m.NameInput.View() + "\n")
		b.WriteString("Budget: " + m.BudgetInput.View() + "\n")
	}
	return b.String()
}

func renderRow(r row, active bool) string {
	icon := iconUnchecked
	if r.checked {
		icon = iconChecked
	} else if r.disabled {
		icon = iconDisabled
	}

	prefix := "  "
	style := styleRowNormal
	if active {
		prefix = selectionIndicator + " "
		style = styleRowSelected
	}
	if r.disabled && !r.checked {
		style = styleRowDisabled
	}

	line := prefix + style.Render(icon+" "+r.label)
	if r.detail != "" {
		line += "\n" + styleDetail.Render(r.detail)
	}
	return line
}

func (m Model) landSlider(d journey.Decisions, active bool) string {
	cur := "  "
	if active {
		cur = selectionIndicator + " "
	}
	region := m.Journey.Region()
	price := 0.0
	if region != nil {
		price = region.PricePerSqm
	}
	return fmt.Sprintf("%sLand  ◂ %s ▸  %.1f ha at %s/m²\n%s",
		cur, styleSlider.Render(fmt.Sprintf("%.0f m²", d.LandArea)), d.LandArea/cost.M2PerHa,
		receipt.FormatMoney(m.Journey.Catalog().Currency, price),
		styleDetail.Render(gauge(d.LandArea, cost.LandAreaMin, cost.LandAreaMax)))
}

func (m Model) homeSlider(d journey.Decisions, active bool) string {
	cur := "  "
	if active {
		cur = selectionIndicator + " "
	}
	return fmt.Sprintf("%sHome  ◂ %s ▸  about %.0f m²\n%s",
		cur, styleSlider.Render(receipt.FormatMoney(m.Journey.Catalog().Currency, d.HomePrice)), d.HomeArea(),
		styleDetail.Render(gauge(d.HomePrice, cost.HomePriceMin, cost.HomePriceMax)))
}

// gauge draws a fixed-width bar for a value within [lo, hi].
func gauge(v, lo, hi float64) string {
	const width = 24
	filled := int((v - lo) / (hi - lo) * width)
	filled = max(0, min(width, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func (m Model) help() string {
	var bindings []key.Binding
	if m.Editing {
		bindings = []key.Binding{m.Edit.Submit, m.Edit.Switch, m.Edit.Cancel}
	} else {
		km := stepKeyMap(m.Keys, kindOf(m.Journey.Current()))
		bindings = []key.Binding{km.Up, km.Down, km.Select, km.Decrease, km.Increase, km.Mode, km.Variant,
			km.Custom, km.Skip, km.Next, km.Prev, km.Export, km.Restart, km.Quit}
	}
	var parts []string
	for _, kb := range bindings {
		if !kb.Enabled() {
			continue
		}
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return styleHelp.Render(strings.Join(parts, " · "))
}
