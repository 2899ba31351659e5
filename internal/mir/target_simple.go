package mir

import "pagerando/internal/invariant"

// instrSizeB is a variable-width size table (amd64-style: loads and adds
// cost more than a bare call opcode), grounded on the simpler encoding
// conventions of the non-arm wazero backend this core's examples use.
var instrSizeB = map[Opcode]int{
	OpCPLoad:        6,
	OpAddressAdd:    3,
	OpCall:          5,
	OpCallIndirect:  2,
	OpBinAddrPseudo: 9, // the two steps it represents, combined
	OpPCRelLoad:     7,
}

// TargetB is a simpler RISC-like target whose POT indirection is a single
// two-step "bin-addressing pseudo": load the POT offset, add it to the
// bin base, in one modeled instruction. It carries the callee symbol
// directly rather than through a constant-pool index, and has no
// constant-pool cleanup pass.
type TargetB struct{}

func (TargetB) Name() string { return "B" }

func (TargetB) InstrSize(inst *Instruction) int {
	if size, ok := instrSizeB[inst.Op]; ok {
		return size
	}
	return 2
}

// Candidates finds bin-addressing pseudos, per spec.md §4.7's table row
// for target B.
func (TargetB) Candidates(f *Function) []*Instruction {
	var out []*Instruction
	for _, inst := range f.Instructions {
		if !inst.dead && inst.Op == OpBinAddrPseudo {
			out = append(out, inst)
		}
	}
	return out
}

func (TargetB) ResolveCallee(f *Function, candidate *Instruction) *Function {
	return candidate.Callee
}

func (TargetB) ToDirectCall(inst *Instruction, callee *Function) {
	switch inst.Op {
	case OpCall, OpCallIndirect:
		inst.Op = OpCall
		inst.Callee = callee
		inst.Uses = nil
	default:
		invariant.Check(false, invariant.CodeUnhandledCallOpcode,
			"toDirectCall: target B cannot rewrite opcode %q", inst.Op)
	}
}

func (TargetB) SupportsCPCleanup() bool { return false }
