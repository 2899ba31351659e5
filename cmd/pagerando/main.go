package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"

	"pagerando/internal/bin"
	"pagerando/internal/fixture"
	"pagerando/internal/ir"
	"pagerando/internal/mir"
	"pagerando/internal/skiplog"
)

func main() {
	strategy := flag.String("strategy", "simple", "bin assignment strategy: simple or callgraph")
	capacity := flag.Int("capacity", bin.DefaultCapacity, "bin capacity in bytes")
	target := flag.String("target", "A", "intra-bin target ISA: A or B")
	flag.Parse()

	commonlog.Configure(1, nil)

	if flag.NArg() < 1 {
		fmt.Println("usage: pagerando [flags] <file.par>")
		os.Exit(1)
	}
	path := flag.Arg(0)

	parsed, err := fixture.ParseFile(path)
	if err != nil {
		os.Exit(1) // syntax errors were printed by reportParseError; read errors are not printed
	}

	module := fixture.Build(parsed)

	color.Cyan("== module %s (before) ==", module.Name)
	fmt.Print(ir.Print(module))

	skip := skiplog.New()
	wstats := ir.SynthesizeWrappers(module, skip)

	color.Green("wrapper synthesis: %d created, %d skipped, %d local-only preserved, %d variadic rewritten",
		wstats.WrappersCreated, wstats.Skipped, wstats.LocalOnlyPreserved, wstats.VariadicRewritten)
	for _, rec := range skip.Records() {
		log.Printf("skipped %s: %s", rec.Function, rec.Reason)
	}

	color.Cyan("== module %s (after wrapper synthesis) ==", module.Name)
	fmt.Print(ir.Print(module))

	runBinDemo(module, selectTarget(*target), selectStrategy(*strategy), *capacity)
}

// runBinDemo demonstrates pass B over demo-sized machine functions
// standing in for each surviving pagerando function: real instruction
// selection is an external collaborator this core never performs
// (spec.md §1), so the stand-ins carry no machine instructions. Under the
// callgraph strategy each node's size is an instruction-count proxy (4
// bytes per IR instruction plus 4); under the simple strategy bin.Run
// sizes each empty stand-in with EstimateSize, which yields its 2-byte floor.
func runBinDemo(module *ir.Module, target mir.Target, strategy bin.Strategy, capacity int) {
	var functions []*mir.Function
	var nodes []*bin.Node
	id := 0
	for _, f := range module.Functions {
		if !f.Pagerando {
			continue
		}
		size := len(f.Entry.Instructions)*4 + 4
		functions = append(functions, &mir.Function{Name: f.Name, Pagerando: true})
		nodes = append(nodes, &bin.Node{ID: id, Functions: []string{f.Name}, SelfSize: size})
		id++
	}
	if len(functions) == 0 {
		color.Yellow("no pagerando functions to bin")
		return
	}

	var graph *bin.CallGraph
	if strategy == bin.StrategyCallgraph {
		graph = bin.BuildGraph(nodes, nil)
	}

	stats := bin.Run(functions, target, strategy, capacity, graph)
	color.Green("bin assignment: %d functions sized, %d bins opened", stats.FunctionsSized, stats.BinsOpened)
	for _, f := range functions {
		fmt.Printf("  %-20s %s\n", f.Name, f.SectionPrefix)
	}
}

func selectTarget(name string) mir.Target {
	if name == "B" {
		return mir.TargetB{}
	}
	return mir.TargetA{}
}

func selectStrategy(name string) bin.Strategy {
	if name == "callgraph" {
		return bin.StrategyCallgraph
	}
	return bin.StrategySimple
}
