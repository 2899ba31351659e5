package bin

import "testing"

// TestCallGraphClusteringScenario mirrors spec.md §4.3's canonical
// 8-node example: sizes [600,800,3500,1000,1000,1000,4000,100], edges
// 0->1, 0->2, 1->3, 1->4, 1->5, 2->6, 2->7, capacity 4096, expected bin
// mapping [4,2,3,2,2,2,1,3] for node ids 0..7.
func TestCallGraphClusteringScenario(t *testing.T) {
	sizes := []int{600, 800, 3500, 1000, 1000, 1000, 4000, 100}
	nodes := make([]*Node, len(sizes))
	for i, s := range sizes {
		nodes[i] = &Node{ID: i, Functions: []string{fn(i)}, SelfSize: s}
	}
	edges := []Edge{{0, 1}, {0, 2}, {1, 3}, {1, 4}, {1, 5}, {2, 6}, {2, 7}}

	graph := BuildGraph(nodes, edges)
	packer := NewFirstFitPacker(4096)
	result := Assign(graph, packer)

	want := []int{4, 2, 3, 2, 2, 2, 1, 3}
	for i, bin := range want {
		if got := result[fn(i)]; got != bin {
			t.Errorf("node %d: want bin %d, got %d (full mapping %v)", i, bin, got, result)
		}
	}
}

// TestClusteringMonotonicity is P8: a node's assigned bin equals every
// transitive callee's bin, as computed at pack time.
func TestClusteringMonotonicity(t *testing.T) {
	nodes := []*Node{
		{ID: 0, Functions: []string{"root"}, SelfSize: 100},
		{ID: 1, Functions: []string{"mid"}, SelfSize: 100},
		{ID: 2, Functions: []string{"leaf"}, SelfSize: 100},
	}
	edges := []Edge{{0, 1}, {1, 2}}

	graph := BuildGraph(nodes, edges)
	packer := NewFirstFitPacker(4096)
	result := Assign(graph, packer)

	if result["root"] != result["mid"] || result["mid"] != result["leaf"] {
		t.Errorf("expected root/mid/leaf to share a bin when the whole chain fits capacity, got %v", result)
	}
}

func fn(i int) string {
	names := []string{"n0", "n1", "n2", "n3", "n4", "n5", "n6", "n7"}
	return names[i]
}
