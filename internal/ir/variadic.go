package ir

import "pagerando/internal/invariant"

// countVaStarts returns how many va_start sites f's entry block contains.
func countVaStarts(entry *BasicBlock) int {
	if entry == nil {
		return 0
	}
	n := 0
	for _, inst := range entry.Instructions {
		if _, ok := inst.(*VaStartInst); ok {
			n++
		}
	}
	return n
}

// findAlloca locates the AllocaInst defining val within block.
func findAlloca(block *BasicBlock, val *Value) *AllocaInst {
	for _, inst := range block.Instructions {
		if a, ok := inst.(*AllocaInst); ok && a.Result == val {
			return a
		}
	}
	return nil
}

// rewriteVariadic performs spec.md §4.6's variadic rewrite in place on f:
// it determines the va_list type by tracing the first va_start back to
// its originating alloca, appends a trailing va_list* parameter, flips
// f.Variadic off, and rewrites every va_start site (erasing the single
// one, or replacing each of several with a va_copy). It returns the
// va_list element type so the caller can build a matching wrapper body.
//
// Precondition: f has at least one va_start in its entry block; callers
// check that via countVaStarts and treat a zero count as the spec's
// "degenerate vararg" case (no variadic rewrite, ordinary $$orig path).
func rewriteVariadic(f *Function) Type {
	var firstStart *VaStartInst
	var starts []int
	for i, inst := range f.Entry.Instructions {
		if vs, ok := inst.(*VaStartInst); ok {
			starts = append(starts, i)
			if firstStart == nil {
				firstStart = vs
			}
		}
	}
	invariant.Check(firstStart != nil, invariant.CodeVaListAllocationMissing,
		"rewriteVariadic called on %s with no va_start", f.Name)

	alloca := findAlloca(f.Entry, firstStart.List)
	invariant.Check(alloca != nil, invariant.CodeVaListAllocationMissing,
		"va_start in %s does not trace back to a stack allocation", f.Name)

	vaListType := alloca.Type
	paramValue := &Value{Name: "valist", Type: &PointerType{Elem: vaListType}}
	f.Params = append(f.Params, &Parameter{Name: "valist", Type: paramValue.Type, Value: paramValue})
	f.Variadic = false

	if len(starts) == 1 {
		replaceValueInBlock(f.Entry, alloca.Result, paramValue)
		f.Entry.Instructions = deleteInstructions(f.Entry.Instructions, func(inst Instruction) bool {
			if a, ok := inst.(*AllocaInst); ok && a == alloca {
				return true
			}
			if vs, ok := inst.(*VaStartInst); ok {
				return vs == firstStart
			}
			return false
		})
	} else {
		for _, idx := range starts {
			f.Entry.Instructions[idx] = &VaCopyInst{Dst: alloca.Result, Src: paramValue}
		}
	}

	return vaListType
}

// replaceValueInBlock substitutes every reference to old with replacement
// across block's instructions and terminator-equivalents.
func replaceValueInBlock(block *BasicBlock, old, replacement *Value) {
	for _, inst := range block.Instructions {
		switch i := inst.(type) {
		case *CallInst:
			if i.Result == old {
				i.Result = replacement
			}
			for _, arg := range i.Args {
				if arg.Value == old {
					arg.Value = replacement
				}
			}
		case *VaStartInst:
			if i.List == old {
				i.List = replacement
			}
		case *VaEndInst:
			if i.List == old {
				i.List = replacement
			}
		case *VaCopyInst:
			if i.Dst == old {
				i.Dst = replacement
			}
			if i.Src == old {
				i.Src = replacement
			}
		case *ReturnInst:
			if i.Value == old {
				i.Value = replacement
			}
		}
	}
}

// deleteInstructions returns a new slice with every instruction matching
// drop removed, preserving relative order.
func deleteInstructions(insts []Instruction, drop func(Instruction) bool) []Instruction {
	out := make([]Instruction, 0, len(insts))
	for _, inst := range insts {
		if !drop(inst) {
			out = append(out, inst)
		}
	}
	return out
}
