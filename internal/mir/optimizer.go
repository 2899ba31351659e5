package mir

import (
	"sort"

	"pagerando/internal/invariant"
)

// candidateState names the per-candidate lifecycle spec.md §4.7 defines:
// Live until discovered, RewriteInProgress while its def-use closure is
// being torn down, Erased once the candidate itself has been deleted.
type candidateState int

const (
	stateLive candidateState = iota
	stateRewriteInProgress
	stateErased
)

// Stats reports what one call to Optimize did.
type Stats struct {
	CandidatesFound    int
	IntraBinRewritten  int
	InstructionsErased int
	CPEntriesRenumbered int
}

// Optimize runs pass O (spec.md §4.7) over f in place using target's
// ISA-specific candidate recognition and call rewriting. It is a no-op
// unless f is pagerando and not flagged to skip.
func Optimize(f *Function, target Target) *Stats {
	stats := &Stats{}
	if !f.Pagerando || f.SkipOptimizer {
		return stats
	}

	deadCP := make(map[int]bool)
	binPrefix := f.BinPrefix()

	for _, candidate := range target.Candidates(f) {
		stats.CandidatesFound++
		if candidate.dead { // already Erased by an earlier candidate's closure
			continue
		}

		callee := target.ResolveCallee(f, candidate)
		if callee == nil || callee.SectionPrefix != binPrefix {
			continue // not an intra-bin call; leave the indirection in place
		}

		// Live -> RewriteInProgress for the candidate's whole def-use
		// closure; rewriteClosure drives every member to Erased.
		erased := rewriteClosure(f, candidate, callee, target, deadCP)
		stats.IntraBinRewritten++
		stats.InstructionsErased += erased
	}

	if target.SupportsCPCleanup() && len(deadCP) > 0 {
		stats.CPEntriesRenumbered = cleanupConstantPool(f, deadCP)
	}

	return stats
}

// rewriteClosure tears down the def-use closure rooted at candidate: it
// walks every transitive user, rewriting the call instruction at the end
// of the chain into a direct call and deleting every other link, per
// spec.md §4.7 step 2.
func rewriteClosure(f *Function, candidate *Instruction, callee *Function, target Target, deadCP map[int]bool) int {
	erased := 0
	worklist := []*Instruction{candidate}
	visited := make(map[*Instruction]bool)

	for len(worklist) > 0 {
		inst := worklist[0]
		worklist = worklist[1:]
		if visited[inst] || inst.dead {
			continue
		}
		visited[inst] = true

		if inst.Op == OpCall || inst.Op == OpCallIndirect {
			target.ToDirectCall(inst, callee)
			continue
		}

		for _, user := range usersOf(f, inst) {
			worklist = append(worklist, user)
		}
		if inst.Op == OpCPLoad {
			deadCP[inst.CPIndex] = true
		}
		inst.dead = true
		erased++
	}

	f.Instructions = removeDead(f.Instructions)
	return erased
}

// usersOf finds every instruction in f reading a register inst defines.
func usersOf(f *Function, inst *Instruction) []*Instruction {
	if len(inst.Defs) == 0 {
		return nil
	}
	defined := make(map[*Register]bool, len(inst.Defs))
	for _, r := range inst.Defs {
		defined[r] = true
	}
	var users []*Instruction
	for _, cand := range f.Instructions {
		if cand == inst || cand.dead {
			continue
		}
		for _, u := range cand.Uses {
			if defined[u] {
				users = append(users, cand)
				break
			}
		}
	}
	return users
}

func removeDead(insts []*Instruction) []*Instruction {
	out := insts[:0]
	for _, inst := range insts {
		if !inst.dead {
			out = append(out, inst)
		}
	}
	return out
}

// cleanupConstantPool implements spec.md §4.7's four-step renumbering:
// sort dead indices, build an Old→New map for survivors, remap every
// remaining use, then erase dead entries in reverse order.
func cleanupConstantPool(f *Function, deadCP map[int]bool) int {
	dead := make([]int, 0, len(deadCP))
	for idx := range deadCP {
		dead = append(dead, idx)
	}
	sort.Ints(dead)

	remap := make([]int, len(f.ConstantPool))
	next := 0
	for old := range f.ConstantPool {
		if deadCP[old] {
			remap[old] = -1
			continue
		}
		remap[old] = next
		next++
	}

	for _, inst := range f.Instructions {
		if inst.Op != OpCPLoad {
			continue
		}
		newIdx := remap[inst.CPIndex]
		invariant.Check(newIdx != -1, invariant.CodeCPIndexDangling,
			"surviving cp_load in %s maps to deleted constant-pool entry %d", f.Name, inst.CPIndex)
		inst.CPIndex = newIdx
	}

	for i := len(dead) - 1; i >= 0; i-- {
		idx := dead[i]
		f.ConstantPool = append(f.ConstantPool[:idx], f.ConstantPool[idx+1:]...)
	}

	invariant.Check(next == len(f.ConstantPool), invariant.CodeCPRenumberIncomplete,
		"%s: renumbered %d entries but %d remain", f.Name, next, len(f.ConstantPool))

	return len(dead)
}
