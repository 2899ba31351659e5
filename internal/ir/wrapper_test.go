package ir

import (
	"testing"

	"pagerando/internal/skiplog"
)

func emptyFunc(name string, linkage Linkage, pagerando bool) *Function {
	return &Function{
		Name:       name,
		Linkage:    linkage,
		Pagerando:  pagerando,
		Entry:      &BasicBlock{},
		Attributes: map[Attribute]bool{},
	}
}

// TestSynthesizeWrappersCalls mirrors the calls.par scenario: an
// external pagerando function, a local-only pagerando function, and a
// caller that reaches both directly.
func TestSynthesizeWrappersCalls(t *testing.T) {
	global := emptyFunc("fn_global", LinkageExternal, true)
	internal := emptyFunc("fn_internal", LinkageLocal, true)
	user := emptyFunc("user", LinkageLocal, true)
	user.Entry.Instructions = []Instruction{
		&CallInst{Callee: global},
		&CallInst{Callee: internal},
	}

	module := &Module{Name: "calls", Functions: []*Function{global, internal, user}}
	stats := SynthesizeWrappers(module, skiplog.New())

	if stats.WrappersCreated != 1 {
		t.Fatalf("expected 1 wrapper, got %d", stats.WrappersCreated)
	}
	if stats.LocalOnlyPreserved != 2 {
		t.Fatalf("expected 2 local-only functions preserved, got %d", stats.LocalOnlyPreserved)
	}

	var wrapper *Function
	for _, fn := range module.Functions {
		if fn.Name == "fn_global" {
			wrapper = fn
		}
	}
	if wrapper == nil {
		t.Fatal("wrapper fn_global not found")
	}
	if !wrapper.Attributes[AttrNoInline] || !wrapper.Attributes[AttrOptimizeForSize] {
		t.Error("wrapper must carry noinline and optsize")
	}
	if wrapper.Pagerando {
		t.Error("wrapper itself must not be pagerando")
	}

	if global.Name != "fn_global$$orig" {
		t.Errorf("original should be renamed, got %q", global.Name)
	}
	if global.Visibility != VisibilityProtected {
		t.Errorf("external original should become protected, got %v", global.Visibility)
	}
	if internal.Visibility != VisibilityDefault {
		t.Errorf("local-only internal should keep default visibility, got %v", internal.Visibility)
	}

	for _, inst := range user.Entry.Instructions {
		call := inst.(*CallInst)
		if call.Callee.Name != "fn_global" && call.Callee != internal {
			t.Errorf("user's calls should still resolve to fn_global/fn_internal by name, got %v", call.Callee.Name)
		}
	}
}

// TestSynthesizeWrappersAddressTaken mirrors address-taken.par: two
// global pointers initialized to pagerando functions must be redirected
// to the wrappers, and the originals renamed and hidden.
func TestSynthesizeWrappersAddressTaken(t *testing.T) {
	global := emptyFunc("fn_global", LinkageExternal, true)
	internal := emptyFunc("fn_internal", LinkageLocal, true)

	g1 := &GlobalVariable{Name: "fn_ptr1", Initializer: global}
	g2 := &GlobalVariable{Name: "fn_ptr2", Initializer: internal}

	module := &Module{
		Name:      "address_taken",
		Functions: []*Function{global, internal},
		Globals:   []*GlobalVariable{g1, g2},
	}
	stats := SynthesizeWrappers(module, skiplog.New())

	if stats.WrappersCreated != 2 {
		t.Fatalf("expected 2 wrappers, got %d", stats.WrappersCreated)
	}
	if g1.Initializer.Name != "fn_global" || g1.Initializer == global {
		t.Error("fn_ptr1 should now point at the wrapper, not the original")
	}
	if g2.Initializer.Name != "fn_internal" || g2.Initializer == internal {
		t.Error("fn_ptr2 should now point at the wrapper, not the original")
	}
	if internal.Name != "fn_internal$$orig" || internal.Visibility != VisibilityHidden {
		t.Errorf("local address-taken original should be renamed and hidden, got name=%q vis=%v",
			internal.Name, internal.Visibility)
	}
}

func TestSkipAbstractDestructor(t *testing.T) {
	f := emptyFunc("dtor", LinkageExternal, true)
	f.Entry.Instructions = []Instruction{&DebugInst{}, &TrapInst{}, &UnreachableInst{}}

	module := &Module{Name: "m", Functions: []*Function{f}}
	stats := SynthesizeWrappers(module, skiplog.New())

	if stats.Skipped != 1 {
		t.Fatalf("expected skip, got stats=%+v", stats)
	}
	if f.Pagerando {
		t.Error("pagerando attribute should be cleared on skip")
	}
}
