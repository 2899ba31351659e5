package mir

import "testing"

// TestIntraBinEliminationTargetA is P9: a same-bin POTOFF-modified CP
// load feeding an indirect call becomes a direct call, and the whole
// address-materialization chain is erased.
func TestIntraBinEliminationTargetA(t *testing.T) {
	callee := &Function{Name: "callee", SectionPrefix: ".bin_1", Pagerando: true}
	addr := &Register{Name: "addr"}
	base := &Register{Name: "base"}

	f := &Function{
		Name:          "caller",
		Pagerando:     true,
		SectionPrefix: ".bin_1",
		ConstantPool: []*CPEntry{
			{Modifier: ModPOTOFF, Global: callee},
		},
		Instructions: []*Instruction{
			{Op: OpCPLoad, Defs: []*Register{addr}, CPIndex: 0},
			{Op: OpAddressAdd, Defs: []*Register{base}, Uses: []*Register{addr}},
			{Op: OpCallIndirect, Uses: []*Register{base}},
		},
	}

	stats := Optimize(f, TargetA{})

	if stats.IntraBinRewritten != 1 {
		t.Fatalf("expected 1 intra-bin rewrite, got %d", stats.IntraBinRewritten)
	}
	if len(f.Instructions) != 1 {
		t.Fatalf("expected the chain collapsed to 1 direct call, got %d instructions", len(f.Instructions))
	}
	call := f.Instructions[0]
	if call.Op != OpCall || call.Callee != callee {
		t.Errorf("surviving instruction should be a direct call to callee, got %+v", call)
	}
}

// TestIntraBinSkipsCrossBin checks that a candidate targeting a callee in
// a different bin is left alone.
func TestIntraBinSkipsCrossBin(t *testing.T) {
	callee := &Function{Name: "callee", SectionPrefix: ".bin_2", Pagerando: true}
	addr := &Register{Name: "addr"}

	f := &Function{
		Name:          "caller",
		Pagerando:     true,
		SectionPrefix: ".bin_1",
		ConstantPool:  []*CPEntry{{Modifier: ModPOTOFF, Global: callee}},
		Instructions: []*Instruction{
			{Op: OpCPLoad, Defs: []*Register{addr}, CPIndex: 0},
			{Op: OpCallIndirect, Uses: []*Register{addr}},
		},
	}

	stats := Optimize(f, TargetA{})
	if stats.IntraBinRewritten != 0 {
		t.Errorf("cross-bin candidate must not be rewritten, got %d rewrites", stats.IntraBinRewritten)
	}
	if len(f.Instructions) != 2 {
		t.Errorf("cross-bin candidate's instructions must survive untouched")
	}
}

// TestCPRenumberingTotal is P10: after cleanup, every surviving cp_load's
// index points at an existing, non-deleted constant-pool entry.
func TestCPRenumberingTotal(t *testing.T) {
	sameBinCallee := &Function{Name: "same", SectionPrefix: ".bin_1", Pagerando: true}
	otherGlobal := &Function{Name: "other", SectionPrefix: ".bin_9", Pagerando: true}

	addr1 := &Register{Name: "addr1"}

	f := &Function{
		Name:          "caller",
		Pagerando:     true,
		SectionPrefix: ".bin_1",
		ConstantPool: []*CPEntry{
			{Modifier: ModPOTOFF, Global: sameBinCallee}, // index 0: rewritten away
			{Modifier: ModNone, Global: otherGlobal},     // index 1: survives
		},
		Instructions: []*Instruction{
			{Op: OpCPLoad, Defs: []*Register{addr1}, CPIndex: 0},
			{Op: OpCallIndirect, Uses: []*Register{addr1}},
			{Op: OpCPLoad, CPIndex: 1}, // an unrelated surviving use of entry 1
		},
	}

	stats := Optimize(f, TargetA{})

	if stats.CPEntriesRenumbered != 1 {
		t.Fatalf("expected 1 dead entry renumbered away, got %d", stats.CPEntriesRenumbered)
	}
	if len(f.ConstantPool) != 1 {
		t.Fatalf("expected 1 surviving constant-pool entry, got %d", len(f.ConstantPool))
	}
	if f.ConstantPool[0].Global != otherGlobal {
		t.Error("surviving entry should be the one that wasn't rewritten away")
	}

	for _, inst := range f.Instructions {
		if inst.Op == OpCPLoad {
			if inst.CPIndex < 0 || inst.CPIndex >= len(f.ConstantPool) {
				t.Errorf("surviving cp_load index %d out of range after renumbering", inst.CPIndex)
			}
		}
	}
}

func TestOptimizeNoopOnNonPagerando(t *testing.T) {
	f := &Function{Name: "plain", Pagerando: false}
	stats := Optimize(f, TargetA{})
	if stats.CandidatesFound != 0 || stats.IntraBinRewritten != 0 {
		t.Errorf("non-pagerando function must be a no-op, got %+v", stats)
	}
}
