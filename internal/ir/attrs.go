package ir

// wrapperSafeAttributes is the explicit allow-list spec.md §4.5/§9
// resolves the Open Question with: attributes safe to copy onto a thin
// trampoline. Anything not listed here is conservatively dropped,
// including attribute kinds this core doesn't know about — the same
// "do not copy unknown" stance the teacher's errors.GetErrorDescription
// takes for unknown error codes (return a safe default, never guess).
var wrapperSafeAttributes = map[Attribute]bool{
	AttrCold:            true,
	AttrConvergent:      true,
	AttrSanitizeAddress: true,
	AttrSanitizeThread:  true,
	AttrUWTable:         true,
	AttrStackAlignment:  true,
}

// copyAttributesForWrapper filters src down to the attributes allowed to
// transfer onto a wrapper, per the allow-list above, then unconditionally
// adds noinline and optsize (spec.md §4.5: "Always add").
func copyAttributesForWrapper(src map[Attribute]bool) map[Attribute]bool {
	dst := make(map[Attribute]bool)
	for attr := range src {
		if wrapperSafeAttributes[attr] {
			dst[attr] = true
		}
	}
	dst[AttrNoInline] = true
	dst[AttrOptimizeForSize] = true
	return dst
}
