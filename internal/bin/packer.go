package bin

import "sort"

// DefaultCapacity is the default page-sized bin capacity (spec.md §3).
const DefaultCapacity = 4096

// freeEntry is one row of the packer's private multimap: a bin id keyed
// by its remaining free space, kept sorted by free ascending so assign
// can binary-search the smallest-fit.
type freeEntry struct {
	free int
	bin  int
}

// FirstFitPacker is the state machine spec.md §4.2 describes: a single
// private store mapping remaining free space to bin ids, implementing
// best-fit-by-least-remainder over a sorted structure.
type FirstFitPacker struct {
	capacity int
	nextBin  int
	entries  []freeEntry // sorted by free ascending
}

// NewFirstFitPacker creates a packer with the given bin capacity.
func NewFirstFitPacker(capacity int) *FirstFitPacker {
	return &FirstFitPacker{capacity: capacity, nextBin: 1}
}

// Capacity returns the packer's configured bin capacity.
func (p *FirstFitPacker) Capacity() int { return p.capacity }

// Assign implements spec.md §4.2 steps 1-5: find the smallest remaining
// free space >= size, reuse that bin if found, otherwise open a fresh
// one; reinsert the bin's new free space unless it has dropped below the
// minimum function size, in which case the bin is considered full and
// dropped from the store.
func (p *FirstFitPacker) Assign(size int) int {
	i := sort.Search(len(p.entries), func(i int) bool { return p.entries[i].free >= size })

	var bin, free int
	if i < len(p.entries) {
		bin = p.entries[i].bin
		free = p.entries[i].free - size
		p.entries = append(p.entries[:i], p.entries[i+1:]...)
	} else {
		bin = p.nextBin
		p.nextBin++
		rem := size % p.capacity
		if rem == 0 {
			free = 0
		} else {
			free = p.capacity - rem
		}
	}

	if free >= minimumFunctionSize {
		p.insert(freeEntry{free: free, bin: bin})
	}

	return bin
}

func (p *FirstFitPacker) insert(e freeEntry) {
	i := sort.Search(len(p.entries), func(i int) bool { return p.entries[i].free >= e.free })
	p.entries = append(p.entries, freeEntry{})
	copy(p.entries[i+1:], p.entries[i:])
	p.entries[i] = e
}
