// Package skiplog records the degenerate-input silent-skip class of
// non-failure (spec.md §7.2): declaration-only functions, comdat
// functions, trap-only abstract destructors, naked/thunk functions, and
// pagerando functions with no eligible uses to rewrite. None of these are
// errors; the spec only asks for "optional debug logging", so records
// here are for tests and the CLI's report, plus one log.Printf per skip
// in the teacher's own style (internal/lsp/handler.go logs every
// request with the standard log package rather than a custom logger).
package skiplog

import "log"

// Reason enumerates why a pagerando-marked function was dropped from the
// wrapper-synthesis worklist.
type Reason string

const (
	ReasonDeclaration         Reason = "declaration-only"
	ReasonAvailableExternally Reason = "available_externally linkage"
	ReasonComdat              Reason = "comdat group member"
	ReasonAbstractDestructor  Reason = "trap-only abstract destructor"
	ReasonNaked               Reason = "naked attribute"
	ReasonThunk               Reason = "thunk attribute"
	ReasonNoEligibleUses      Reason = "no address-taken uses and local linkage"
)

// Record is one skip event.
type Record struct {
	Function string
	Reason   Reason
}

// Log accumulates skip records. The zero value is ready to use; a nil
// *Log is also safe to call methods on (bookkeeping becomes a no-op),
// so callers that don't care can pass nil.
type Log struct {
	records []Record
}

// New returns an empty Log.
func New() *Log { return &Log{} }

// Skip records fn as skipped for reason and logs a debug line.
func (l *Log) Skip(fn string, reason Reason) {
	log.Printf("pagerando: skipping %s: %s", fn, reason)
	if l == nil {
		return
	}
	l.records = append(l.records, Record{Function: fn, Reason: reason})
}

// Records returns every skip recorded so far.
func (l *Log) Records() []Record {
	if l == nil {
		return nil
	}
	return l.records
}
