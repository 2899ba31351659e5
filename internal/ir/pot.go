package ir

// emitPOT emits the llvm.pot global exactly once per module (spec.md §6):
// an array-of-pointer global with protected visibility, appended to the
// "used" list so dead-global elimination never removes it. Its runtime
// contents are populated by the loader; this core only reserves its name.
func emitPOT(module *Module) {
	if module.wrapperEmitted {
		return
	}
	module.wrapperEmitted = true
	module.potGlobal = &GlobalVariable{
		Name:       "llvm.pot",
		Visibility: VisibilityProtected,
		Used:       true,
	}
	module.Globals = append(module.Globals, module.potGlobal)
}

// POTGlobal returns the llvm.pot global once wrapper synthesis has
// created at least one wrapper, or nil otherwise.
func (m *Module) POTGlobal() *GlobalVariable {
	return m.potGlobal
}
