package tui

import (
	"fmt"
	"strings"

	"github.com/derichenko12/BeyondHomeV3/pkg/ledger"
	"github.com/derichenko12/BeyondHomeV3/pkg/receipt"
)

var cartLabels = map[ledger.Slot]string{
	ledger.SlotLand:      "Land",
	ledger.SlotHome:      "Home",
	ledger.SlotFood:      "Food",
	ledger.SlotResources: "Infrastructure",
	ledger.SlotCreative:  "Creative",
}

// cart renders the running totals next to every step.
func (m Model) cart() string {
	snap := m.Journey.Ledger()
	currency := m.Journey.Catalog().Currency
	money := func(v float64) string { return receipt.FormatMoney(currency, v) }

	var b strings.Builder
	b.WriteString(styleCartTitle.Render("Your cart"))
	b.WriteString("\n")
	if len(snap.Items) == 0 {
		b.WriteString(styleRowNormal.Render("nothing yet"))
		return styleCart.Render(b.String())
	}

	for _, slot := range ledger.SlotOrder {
		if _, ok := snap.Slots[slot]; !ok {
			continue
		}
		t := snap.SlotTotals(slot)
		fmt.Fprintf(&b, "%-15s %14s\n", cartLabels[slot], money(t.OneTimeMoney))
	}
	b.WriteString("\n")
	t := snap.Totals
	b.WriteString(styleCartTotal.Render(fmt.Sprintf("%-15s %14s", "One-time", money(t.OneTimeMoney))))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%-15s %14s\n", "Per year", money(t.AnnualMoney))
	fmt.Fprintf(&b, "%-15s %14s\n", "Weekly time", fmt.Sprintf("%.0f h", t.AverageWeeklyHours))
	fmt.Fprintf(&b, "%-15s %14s", "Peak weeks", fmt.Sprintf("%.0f h", t.PeakWeeklyHours))
	return styleCart.Render(b.String())
}
