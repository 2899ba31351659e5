// Package bin implements pass B: size estimation and bin assignment,
// packing pagerando functions into fixed-size bins with an optional
// call-graph-aware strategy that keeps callers and callees together.
package bin

import "pagerando/internal/mir"

// minimumFunctionSize is the floor spec.md §4.1 requires so a trivially
// empty function still occupies a unit and packing decisions never
// collapse around a zero size.
const minimumFunctionSize = 2

// EstimateSize sums fn's per-instruction byte sizes as reported by
// target, floored at minimumFunctionSize (spec.md §4.1). Purely
// functional: never mutates fn or target.
func EstimateSize(fn *mir.Function, target mir.Target) int {
	total := 0
	for _, inst := range fn.Instructions {
		total += target.InstrSize(inst)
	}
	if total < minimumFunctionSize {
		return minimumFunctionSize
	}
	return total
}
