// Package ledger holds the running cost and time tally of a journey.
//
// Items are grouped into slots, one per contributing step. A step always
// replaces its whole slot, so totals are a pure function of the current item
// set and nothing removed can linger in them.
package ledger

import (
	"reflect"
	"slices"
)

// Category discriminates how an item participates in aggregation.
type Category string

const (
	OneTimeMoney Category = "one_time"
	AnnualMoney  Category = "annual"
	Time         Category = "time"
)

// TimeKind qualifies Time items. Average items count toward the weekly
// average, Peak items toward the seasonal peak, and Flat items (constant
// upkeep with no seasonality) toward both.
type TimeKind string

const (
	Flat    TimeKind = ""
	Average TimeKind = "average"
	Peak    TimeKind = "peak"
)

// LineItem is one priced or timed entry.
type LineItem struct {
	Label    string   `json:"label"`
	Value    float64  `json:"value"`
	Category Category `json:"category"`
	TimeKind TimeKind `json:"time_kind,omitempty"`
	Unit     string   `json:"unit,omitempty"`
	// Key identifies the underlying system; paired average and peak items
	// share it.
	Key string `json:"key,omitempty"`
}

// Slot names the step that owns a group of items.
type Slot string

const (
	SlotLand      Slot = "land"
	SlotHome      Slot = "home"
	SlotFood      Slot = "food"
	SlotResources Slot = "resources"
	SlotCreative  Slot = "creative"
)

// SlotOrder is the display order of the known slots.
var SlotOrder = []Slot{SlotLand, SlotHome, SlotFood, SlotResources, SlotCreative}

// Totals are the derived aggregates of an item set.
type Totals struct {
	OneTimeMoney       float64 `json:"one_time_money"`
	AnnualMoney        float64 `json:"annual_money"`
	AverageWeeklyHours float64 `json:"average_weekly_hours"`
	PeakWeeklyHours    float64 `json:"peak_weekly_hours"`
}

// Sum computes the aggregates over items.
func Sum(items []LineItem) Totals {
	var t Totals
	for _, it := range items {
		switch it.Category {
		case OneTimeMoney:
			t.OneTimeMoney += it.Value
		case AnnualMoney:
			t.AnnualMoney += it.Value
		case Time:
			switch it.TimeKind {
			case Average:
				t.AverageWeeklyHours += it.Value
			case Peak:
				t.PeakWeeklyHours += it.Value
			default:
				t.AverageWeeklyHours += it.Value
				t.PeakWeeklyHours += it.Value
			}
		}
	}
	return t
}

// Ledger is an ordered, slot-partitioned collection of line items.
// It is not safe for concurrent use; its owner serialises access.
type Ledger struct {
	slots   map[Slot][]LineItem
	extra   []Slot
	version uint64
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{slots: make(map[Slot][]LineItem)}
}

// ReplaceSlot swaps every item previously contributed under slot for items.
// Other slots are untouched. It reports whether the ledger changed; an item
// set deep-equal to the current one is a no-op and leaves Version as is.
func (l *Ledger) ReplaceSlot(slot Slot, items []LineItem) bool {
	if !l.replace(slot, items) {
		return false
	}
	l.version++
	return true
}

// ReplaceSlots applies several slot replacements as one update.
func (l *Ledger) ReplaceSlots(updates map[Slot][]LineItem) bool {
	changed := false
	// Deterministic order for slots outside SlotOrder.
	for _, slot := range l.orderFor(updates) {
		if l.replace(slot, updates[slot]) {
			changed = true
		}
	}
	if changed {
		l.version++
	}
	return changed
}

func (l *Ledger) replace(slot Slot, items []LineItem) bool {
	current, had := l.slots[slot]
	if len(items) == 0 {
		if !had {
			return false
		}
		delete(l.slots, slot)
		return true
	}
	if had && reflect.DeepEqual(current, items) {
		return false
	}
	if !had && !slices.Contains(SlotOrder, slot) && !slices.Contains(l.extra, slot) {
		l.extra = append(l.extra, slot)
	}
	l.slots[slot] = slices.Clone(items)
	return true
}

func (l *Ledger) orderFor(updates map[Slot][]LineItem) []Slot {
	var order []Slot
	for _, s := range SlotOrder {
		if _, ok := updates[s]; ok {
			order = append(order, s)
		}
	}
	var rest []Slot
	for s := range updates {
		if !slices.Contains(SlotOrder, s) {
			rest = append(rest, s)
		}
	}
	slices.Sort(rest)
	return append(order, rest...)
}

// Clear empties all slots.
func (l *Ledger) Clear() {
	if len(l.slots) == 0 {
		return
	}
	l.slots = make(map[Slot][]LineItem)
	l.extra = nil
	l.version++
}

// Items returns a copy of the items contributed under slot.
func (l *Ledger) Items(slot Slot) []LineItem {
	return slices.Clone(l.slots[slot])
}

// Version increases on every effective mutation. Readers can compare
// versions to skip redundant redraws.
func (l *Ledger) Version() uint64 {
	return l.version
}

func (l *Ledger) slotOrder() []Slot {
	order := make([]Slot, 0, len(SlotOrder)+len(l.extra))
	order = append(order, SlotOrder...)
	return append(order, l.extra...)
}

// Snapshot returns the full ordered item list and its aggregates.
func (l *Ledger) Snapshot() Snapshot {
	snap := Snapshot{Version: l.version, Slots: make(map[Slot][]LineItem)}
	for _, slot := range l.slotOrder() {
		items, ok := l.slots[slot]
		if !ok {
			continue
		}
		snap.Slots[slot] = slices.Clone(items)
		snap.Items = append(snap.Items, items...)
	}
	snap.Totals = Sum(snap.Items)
	return snap
}

// Snapshot is a read-only view of a ledger at one version.
type Snapshot struct {
	Version uint64              `json:"version"`
	Items   []LineItem          `json:"items"`
	Slots   map[Slot][]LineItem `json:"slots"`
	Totals  Totals              `json:"totals"`
}

// SlotTotals returns the aggregates of one slot.
func (s Snapshot) SlotTotals(slot Slot) Totals {
	return Sum(s.Slots[slot])
}

// PeakFor returns the peak-hours item paired with key.
func (s Snapshot) PeakFor(key string) (LineItem, bool) {
	for _, it := range s.Items {
		if it.Category == Time && it.TimeKind == Peak && it.Key == key {
			return it, true
		}
	}
	return LineItem{}, false
}
