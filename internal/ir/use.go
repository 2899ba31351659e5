package ir

// UseKind is the tagged variant spec.md §9 asks for: a single total
// function classifies every use of a function value into one of these
// arms. AddressTaken is the only arm wrapper synthesis ever rewrites.
type UseKind int

const (
	UseCallee UseKind = iota
	UseAliasTarget
	UseBlockAddress
	UsePersonalityRef
	UseBitcastOnlySkippable
	UseAddressTaken
)

func (k UseKind) skippable() bool {
	return k != UseAddressTaken
}

// Use is a directed edge from some user IR entity to a function value,
// carrying enough context to rewrite the use in place.
type Use struct {
	Kind UseKind

	// Exactly one of the following identifies the use site.
	Call     *CallInst       // Kind == UseCallee, or UseAddressTaken via a func-valued arg
	CallArg  *Operand        // set alongside Call when the use is a func-valued argument
	Global   *GlobalVariable // Kind == UseAddressTaken (global initializer)
	Alias    *GlobalAlias    // Kind == UseAliasTarget
	Const    *ConstantExpr   // Kind == UseBlockAddress / UsePersonalityRef / UseBitcastOnlySkippable / UseAddressTaken
	OwnerFn  *Function       // function whose Personality references the target
}

// collectUses walks every user entity in the module and classifies its
// reference to target, per spec.md §3's Use classification.
func collectUses(module *Module, target *Function) []*Use {
	var uses []*Use

	for _, fn := range module.Functions {
		if fn.Personality == target {
			uses = append(uses, &Use{Kind: UsePersonalityRef, Const: nil, OwnerFn: fn})
		}
		if fn.Entry == nil {
			continue
		}
		for _, inst := range fn.Entry.Instructions {
			call, ok := inst.(*CallInst)
			if !ok {
				continue
			}
			if call.Callee == target {
				uses = append(uses, &Use{Kind: UseCallee, Call: call})
			}
			for _, arg := range call.Args {
				if arg.Func == target {
					uses = append(uses, &Use{Kind: UseAddressTaken, Call: call, CallArg: arg})
				}
			}
		}
	}

	for _, g := range module.Globals {
		if g.Initializer == target {
			uses = append(uses, &Use{Kind: UseAddressTaken, Global: g})
		}
	}

	for _, a := range module.Aliases {
		if a.Aliasee == target {
			uses = append(uses, &Use{Kind: UseAliasTarget, Alias: a})
		}
	}

	for _, c := range module.Constants {
		if c.Operand != target {
			continue
		}
		switch c.Kind {
		case ConstBlockAddress:
			uses = append(uses, &Use{Kind: UseBlockAddress, Const: c})
		case ConstPersonalityRef:
			uses = append(uses, &Use{Kind: UsePersonalityRef, Const: c})
		case ConstBitcast:
			if c.OnlySkippableUses {
				uses = append(uses, &Use{Kind: UseBitcastOnlySkippable, Const: c})
			} else {
				uses = append(uses, &Use{Kind: UseAddressTaken, Const: c})
			}
		case ConstPlain:
			uses = append(uses, &Use{Kind: UseAddressTaken, Const: c})
		}
	}

	return uses
}

// addressTaken filters uses down to the AddressTaken arm, the only one
// wrapper synthesis ever needs to rewrite.
func addressTaken(uses []*Use) []*Use {
	var out []*Use
	for _, u := range uses {
		if u.Kind == UseAddressTaken {
			out = append(out, u)
		}
	}
	return out
}

// replace rewrites this use to point at replacement instead of its
// current target, following spec.md §4.5's per-user-kind strategy. A
// shared visited set guards "at most once per constant" bulk rewrites.
func (u *Use) replace(replacement *Function, visitedConsts map[*ConstantExpr]bool) {
	switch {
	case u.Global != nil:
		u.Global.Initializer = replacement
	case u.Alias != nil:
		u.Alias.Aliasee = replacement
	case u.Const != nil:
		if visitedConsts[u.Const] {
			return
		}
		if u.Const.replaced {
			return
		}
		u.Const.Operand = replacement
		u.Const.replaced = true
		visitedConsts[u.Const] = true
	case u.CallArg != nil:
		u.CallArg.Func = replacement
	case u.OwnerFn != nil:
		u.OwnerFn.Personality = replacement
	case u.Call != nil:
		u.Call.Callee = replacement
	}
}
