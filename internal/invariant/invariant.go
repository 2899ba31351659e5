// Package invariant carries the pagerando core's assertion-class failures
// (spec.md §7.1): bugs in the implementation, never recoverable input
// errors. It follows the teacher's internal/errors code-table idiom
// (stable string codes, one source of descriptions) but panics instead of
// collecting diagnostics, because these conditions have no user-facing
// recovery path — the host compiler pass either completes or aborts.
package invariant

import "fmt"

// Code ranges mirror SPEC_FULL.md §7: P0001-P0099 wrapper synthesis,
// P0100-P0199 binning, P0200-P0299 the intra-bin optimizer.
const (
	CodeVaListAllocationMissing = "P0001" // va_start traced back to no alloca
	CodeDoubleWrapped           = "P0002" // a function already has a wrapper pair

	CodePackerNegativeSize = "P0101" // assign() called with a negative size
	CodeFreshBinIsZero      = "P0102" // packer minted bin id 0

	CodeUnhandledCallOpcode  = "P0201" // toDirectCall saw an opcode it can't rewrite
	CodeCPIndexDangling      = "P0202" // a surviving CP-index use maps to a deleted entry
	CodeCPRenumberIncomplete = "P0203" // renumbering left a gap
)

// Violation is the panic value raised by Check. Callers that want to
// observe a violation (tests, a top-level recover in a CLI) can type-
// assert the recovered value to *Violation.
type Violation struct {
	Code    string
	Message string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("[%s] invariant violated: %s", v.Code, v.Message)
}

// Check panics with a *Violation carrying code when cond is false.
func Check(cond bool, code, format string, args ...any) {
	if cond {
		return
	}
	panic(&Violation{Code: code, Message: fmt.Sprintf(format, args...)})
}
