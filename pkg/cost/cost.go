// Package cost turns journey decisions into ledger line items.
//
// Every calculator is a pure function of its inputs. None of them reads or
// writes a ledger; the journey decides which slot their output lands in.
package cost

import "math"

// Round rounds half up to the nearest integer. All money and space figures
// are rounded at the point they are computed, never accumulated.
func Round(v float64) float64 {
	return math.Floor(v + 0.5)
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// snap rounds v to the nearest multiple of step and clamps it to [lo, hi].
// lo and hi must themselves be multiples of step.
func snap(v, lo, hi, step float64) float64 {
	return math.Max(lo, math.Min(hi, Round(v/step)*step))
}
