package bin

import "testing"

// TestFirstFitScenario mirrors spec.md's concrete scenario 4: requests
// (3000, 3001, 3000, 100) on a 4096-byte capacity land in bins 1,2,3,2 —
// the third request opens a fresh bin because bin 1's 1096-byte
// remainder isn't big enough for it, but bin 1's remainder later becomes
// irrelevant once its leftover (1096) still doesn't fit 3000 either; only
// the trailing 100-byte request is small enough to reuse a remainder.
func TestFirstFitScenario(t *testing.T) {
	p := NewFirstFitPacker(DefaultCapacity)
	got := []int{p.Assign(3000), p.Assign(3001), p.Assign(3000), p.Assign(100)}
	want := []int{1, 2, 3, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("request %d: want bin %d, got %d (full: %v)", i, want[i], got[i], got)
		}
	}
}

// TestOversizedFunctionScenario mirrors scenario 5: each bin-sized or
// larger request forces its own fresh bin.
func TestOversizedFunctionScenario(t *testing.T) {
	p := NewFirstFitPacker(DefaultCapacity)
	got := []int{p.Assign(4096), p.Assign(8192), p.Assign(1)}
	want := []int{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("request %d: want bin %d, got %d", i, want[i], got[i])
		}
	}
}

// TestAssignNeverReturnsZero checks the packer's guarantee that a fresh
// bin id is never zero (0 is reserved as "unbinned", spec.md §3).
func TestAssignNeverReturnsZero(t *testing.T) {
	p := NewFirstFitPacker(DefaultCapacity)
	for i := 0; i < 20; i++ {
		if bin := p.Assign(500); bin == 0 {
			t.Fatalf("Assign returned reserved bin id 0 on call %d", i)
		}
	}
}

// TestAssignMonotonicBinIDs checks monotonic, non-reused fresh bin ids
// (P7's totality property, the packer half).
func TestAssignMonotonicBinIDs(t *testing.T) {
	p := NewFirstFitPacker(128)
	seen := map[int]bool{}
	for i := 0; i < 10; i++ {
		bin := p.Assign(128) // bin-sized, always forces a fresh bin
		if seen[bin] {
			t.Fatalf("bin id %d reused", bin)
		}
		seen[bin] = true
	}
}
