package bin

import (
	"fmt"

	"pagerando/internal/mir"
)

// Strategy selects pass B's dispatch per spec.md §4.4.
type Strategy int

const (
	// StrategySimple assigns bins per-function in module order.
	StrategySimple Strategy = iota
	// StrategyCallgraph clusters the call graph and packs per cluster.
	StrategyCallgraph
)

// Stats reports what one Run of the bin assignment driver did.
type Stats struct {
	FunctionsSized  int
	BinsOpened      int
	Strategy        Strategy
}

// Run implements spec.md §4.4: dispatch on strategy and stamp each
// assigned function's section prefix. The simple strategy sizes every
// pagerando function with EstimateSize; the callgraph strategy packs
// graph's nodes by the sizes already stored in them and does not call
// EstimateSize.
func Run(functions []*mir.Function, target mir.Target, strategy Strategy, capacity int, graph *CallGraph) *Stats {
	stats := &Stats{Strategy: strategy}
	packer := NewFirstFitPacker(capacity)

	byName := make(map[string]*mir.Function, len(functions))
	for _, fn := range functions {
		if fn.Pagerando {
			stats.FunctionsSized++
		}
		byName[fn.Name] = fn
	}

	var assignment map[string]int
	switch strategy {
	case StrategyCallgraph:
		assignment = Assign(graph, packer)
	default:
		assignment = make(map[string]int, len(functions))
		for _, fn := range functions {
			if !fn.Pagerando {
				continue
			}
			size := EstimateSize(fn, target)
			assignment[fn.Name] = packer.Assign(size)
		}
	}

	seen := make(map[int]bool)
	for name, id := range assignment {
		fn, ok := byName[name]
		if !ok {
			continue
		}
		fn.SectionPrefix = fmt.Sprintf(".bin_%d", id)
		seen[id] = true
	}
	stats.BinsOpened = len(seen)

	return stats
}
