// Package mir implements the machine-level IR data model and the
// intra-bin optimizer (pass O): it recognizes call sites that resolve
// through the Page-Offset Table but target a callee already sharing the
// caller's bin, and rewrites them into direct PC-relative calls.
package mir

// CPModifier classifies what a constant-pool entry's referenced value is
// used for by the instruction that loads it.
type CPModifier int

const (
	// ModNone is an ordinary constant-pool entry (a literal, a plain
	// address) with no pagerando significance.
	ModNone CPModifier = iota
	// ModPOTOFF marks an entry holding a function's offset into the
	// Page-Offset Table.
	ModPOTOFF
	// ModBINOFF marks an entry holding a function's offset within its
	// own bin; target A treats it as an intra-bin candidate like ModPOTOFF.
	ModBINOFF
)

// CPEntry is one constant-pool slot a machine instruction may reference
// by index (spec.md §3's Constant-pool entry).
type CPEntry struct {
	Modifier CPModifier
	Global   *Function // the function value this entry ultimately names
	dead     bool       // not set by Optimize, which tracks dead entries by index
}

// Register is an opaque virtual or physical register handle; this core
// never interprets its value and never creates new ones, only compares
// identity (SSA form is required going into the optimizer, per spec.md §4.7).
type Register struct {
	Name string
}

// Opcode names the operation a machine Instruction performs. The small
// set below is everything the optimizer's rewrite rules need to
// recognize or emit; target-specific lowering may use others that the
// optimizer simply never touches.
type Opcode string

const (
	OpCPLoad        Opcode = "cp_load"     // loads the value named by a CPEntry into a register
	OpAddressAdd    Opcode = "addr_add"    // adds a POT/bin base register to an offset register
	OpCall          Opcode = "call"        // direct call to a known symbol
	OpCallIndirect  Opcode = "call_ind"    // indirect branch-and-link through a register
	OpPCRelLoad     Opcode = "pcrel_load"  // target-A PC-relative materialization of a symbol address
	OpBinAddrPseudo Opcode = "bin_addr"    // target-B's two-step POT-load-then-offset-add, modeled as one pseudo
)

// Instruction is one machine instruction within a Function's body, in
// the flat pre-register-allocation form the optimizer operates on.
type Instruction struct {
	Op Opcode

	// Defs/Uses model the SSA def-use graph the optimizer's worklist
	// walks; every instruction that reads a register produced by another
	// instruction lists it in Uses.
	Defs []*Register
	Uses []*Register

	// CPIndex is valid for OpCPLoad: the constant-pool index this load
	// reads from.
	CPIndex int

	// Callee is valid for OpCall: the direct-call target symbol.
	Callee *Function

	// CC carries calling-convention and branch-prediction operands that
	// must survive a call-instruction rewrite verbatim (spec.md §4.7).
	CC string

	// CondLink is target A's conditional-link predicate operand, re-emitted
	// when rewriting a call that carried one.
	CondLink string

	dead bool
}

// Function is a machine function: a flat instruction list plus the
// constant pool instruction selection populated for it, annotated with
// the section prefix pass B assigned.
type Function struct {
	Name          string
	SectionPrefix string // ".bin_<id>", set by pass B; "" means unbinned
	Pagerando     bool
	SkipOptimizer bool // host-level "skip this function" flag (spec.md §4.7)

	Instructions []*Instruction
	ConstantPool []*CPEntry
}

// BinPrefix returns f's bin section prefix, or "" if unbinned.
func (f *Function) BinPrefix() string { return f.SectionPrefix }
