package ir

import "pagerando/internal/skiplog"

// Stats reports what SynthesizeWrappers did, mirroring the teacher's
// OptimizationPipeline.Run progress reporting (spec.md SPEC_FULL.md §4.9).
type Stats struct {
	WrappersCreated int
	VariadicRewritten int
	LocalOnlyPreserved int
	Skipped int
}

// SynthesizeWrappers runs pass W (spec.md §4.5/§4.6) over module in place.
// skip may be nil; when non-nil it records every degenerate-input skip.
func SynthesizeWrappers(module *Module, skip *skiplog.Log) *Stats {
	stats := &Stats{}
	visitedConsts := make(map[*ConstantExpr]bool)

	// Snapshot the worklist: wrapper insertion prepends new functions to
	// module.Functions, and per spec.md §5 the order functions are
	// visited in doesn't affect the observable output set, because every
	// use-list was captured by value before any replacement happens.
	worklist := append([]*Function{}, module.Functions...)
	var wrappers []*Function

	for _, f := range worklist {
		if !f.Pagerando {
			continue
		}
		if reason, shouldSkip := skipReason(f); shouldSkip {
			f.Pagerando = false
			skip.Skip(f.Name, reason)
			stats.Skipped++
			continue
		}

		uses := collectUses(module, f)
		taken := addressTaken(uses)

		needsWrapper := f.Linkage == LinkageExternal || len(taken) > 0
		if !needsWrapper {
			skip.Skip(f.Name, skiplog.ReasonNoEligibleUses)
			stats.LocalOnlyPreserved++
			continue
		}

		hadVaStart := f.Variadic && countVaStarts(f.Entry) > 0
		wrapper := buildWrapper(f, uses, taken, visitedConsts)
		if hadVaStart {
			stats.VariadicRewritten++
		}
		wrappers = append(wrappers, wrapper)
		stats.WrappersCreated++
	}

	if len(wrappers) > 0 {
		module.Functions = append(append([]*Function{}, wrappers...), module.Functions...)
		emitPOT(module)
	}

	return stats
}

// skipReason evaluates spec.md §4.5's skip predicates, in the order the
// spec lists them.
func skipReason(f *Function) (skiplog.Reason, bool) {
	switch {
	case f.IsDeclaration():
		return skiplog.ReasonDeclaration, true
	case f.AvailableExternally:
		return skiplog.ReasonAvailableExternally, true
	case f.Comdat != "":
		return skiplog.ReasonComdat, true
	case isAbstractDestructorTrap(f):
		return skiplog.ReasonAbstractDestructor, true
	case f.Naked:
		return skiplog.ReasonNaked, true
	case f.Thunk:
		return skiplog.ReasonThunk, true
	default:
		return "", false
	}
}

// buildWrapper synthesizes f's wrapper per spec.md §4.5: the wrapper takes
// over f's original name and external-facing signature, f is renamed and
// hidden (or protected, for the "still fully rewritten" case), and uses
// are redirected according to the replacement-policy branch the spec
// describes. f is mutated in place; its pointer identity is preserved, so
// the uses collected before this call remain valid addresses to rewrite.
func buildWrapper(f *Function, uses, taken []*Use, visitedConsts map[*ConstantExpr]bool) *Function {
	origParams := append([]*Parameter{}, f.Params...)
	origReturnType := f.ReturnType
	origCC := f.CallingConv
	oldLinkage := f.Linkage
	oldVisibility := f.Visibility
	oldName := f.Name

	hasVaStart := f.Variadic && countVaStarts(f.Entry) > 0
	var vaListType Type
	if hasVaStart {
		vaListType = rewriteVariadic(f)
	}

	suffix := "$$orig"
	if hasVaStart {
		suffix = "$$origva"
	}
	f.Name = oldName + suffix

	wrapper := &Function{
		Name:        oldName,
		Linkage:     oldLinkage,
		Visibility:  oldVisibility,
		Variadic:    hasVaStart, // the wrapper keeps the original's public varargs signature
		Params:      origParams,
		ReturnType:  origReturnType,
		CallingConv: origCC,
		Pagerando:   false, // the trampoline itself is never further isolated
		Attributes:  copyAttributesForWrapper(f.Attributes),
		Entry:       buildWrapperBody(f, origParams, origReturnType, hasVaStart, vaListType, origCC),
	}

	rewriteEverything := hasVaStart || (oldLinkage == LinkageExternal && oldVisibility != VisibilityProtected)
	if rewriteEverything {
		for _, u := range uses {
			u.replace(wrapper, visitedConsts)
		}
		if oldLinkage == LinkageExternal {
			f.Visibility = VisibilityProtected
		} else {
			f.Visibility = VisibilityHidden
		}
	} else {
		for _, u := range taken {
			u.replace(wrapper, visitedConsts)
		}
		f.Visibility = VisibilityHidden
	}
	f.Linkage = LinkageLocal

	return wrapper
}

// buildWrapperBody constructs the single-block trampoline body spec.md
// P2 requires: forward every original argument, make one call to callee,
// and return its result (or nothing, for a void callee). A variadic
// wrapper additionally allocates and starts a va_list before the call and
// ends it after, threading the list as the callee's trailing argument.
func buildWrapperBody(callee *Function, origParams []*Parameter, origReturn Type, hasVaStart bool, vaListType Type, cc string) *BasicBlock {
	var insts []Instruction
	args := make([]*Operand, 0, len(origParams)+1)
	for _, p := range origParams {
		args = append(args, &Operand{Value: p.Value})
	}

	var listVal *Value
	if hasVaStart {
		listVal = &Value{Name: "ap", Type: &PointerType{Elem: vaListType}}
		insts = append(insts, &AllocaInst{Result: listVal, Type: vaListType})
		insts = append(insts, &VaStartInst{List: listVal})
		args = append(args, &Operand{Value: listVal})
	}

	var result *Value
	if origReturn != nil {
		if _, isVoid := origReturn.(*VoidType); !isVoid {
			result = &Value{Name: "ret", Type: origReturn}
		}
	}
	insts = append(insts, &CallInst{Result: result, Callee: callee, Args: args, CC: cc})

	if hasVaStart {
		insts = append(insts, &VaEndInst{List: listVal})
	}

	insts = append(insts, &ReturnInst{Value: result})
	return &BasicBlock{Instructions: insts}
}

// isAbstractDestructorTrap recognizes an entry block containing only
// debug info, a trap intrinsic, and unreachable — spec.md §4.5's
// "abstract destructor" skip predicate.
func isAbstractDestructorTrap(f *Function) bool {
	if f.Entry == nil || len(f.Entry.Instructions) == 0 {
		return false
	}
	sawTrap := false
	for _, inst := range f.Entry.Instructions {
		switch inst.(type) {
		case *DebugInst:
			// allowed anywhere
		case *TrapInst:
			sawTrap = true
		case *UnreachableInst:
			// allowed, and expected at the end
		default:
			return false
		}
	}
	return sawTrap
}
