package mir

// Target abstracts the two concerns the core needs from instruction
// selection and target-specific lowering: per-instruction byte size (for
// pass B's size estimator) and intra-bin candidate recognition (for pass
// O), per spec.md §4.7's table of target A / target B candidates.
//
// Concrete targets are grounded on two ISA families actually exercised in
// code-generation backends: target A mirrors a fixed-width RISC encoding
// (arm64-style, constant-pool loads materializing a POT/bin offset),
// target B mirrors a simpler two-step bin-addressing pseudo over a
// variable-width encoding. The core never needs more than these two
// shapes; a third real target would implement the same interface.
type Target interface {
	Name() string

	// InstrSize returns inst's encoded size in bytes (spec.md §4.1).
	InstrSize(inst *Instruction) int

	// Candidates returns every intra-bin candidate instruction in f, per
	// this target's table row in spec.md §4.7.
	Candidates(f *Function) []*Instruction

	// ResolveCallee extracts the callee a candidate instruction ultimately
	// addresses, by walking to its referenced constant-pool entry or
	// pseudo operand.
	ResolveCallee(f *Function, candidate *Instruction) *Function

	// ToDirectCall rewrites a call instruction to a direct call on
	// Callee, preserving CC and CondLink. It panics (an invariant
	// violation, spec.md §4.7's "Failure semantics") if op is not a call
	// opcode this target knows how to rewrite.
	ToDirectCall(inst *Instruction, callee *Function)

	// SupportsCPCleanup reports whether this target's constant pool is
	// swept and renumbered after rewriting (target A only, spec.md §4.7).
	SupportsCPCleanup() bool
}
