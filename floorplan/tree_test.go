package floorplan

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uniformModel builds n blocks named B0..B(n-1), each w x h with a single
// dimension option.
func uniformModel(n int, w, h float64) *BlockModel {
	blocks := make([]Block, n)
	for i := range blocks {
		blocks[i] = Block{
			Name:       fmt.Sprintf("B%d", i),
			Dimensions: []Dimension{{Width: w, Height: h, ColMultiple: 1, RowMultiple: 1}},
		}
	}
	return NewBlockModel(blocks)
}

// identitySeed seeds t left-skewed with block i on node i and its first
// dimension option.
func identitySeed(t *Tree) {
	n := len(t.Nodes)
	order := make([]int, n)
	dims := make([]int, n)
	for i := range order {
		order[i] = i
	}
	t.SeedLeftSkewed(order, dims)
}

// checkInvariants asserts I1-I4: block bijection, acyclic reachability
// from the root, parent/child consistency, and dimension validity.
func checkInvariants(t *testing.T, tree *Tree) {
	t.Helper()
	n := len(tree.Nodes)

	// I1: every block appears on exactly one node.
	seen := make([]int, n)
	for i := range tree.Nodes {
		id := tree.Nodes[i].BlockID
		require.GreaterOrEqual(t, id, 0)
		require.Less(t, id, n)
		seen[id]++
	}
	for id, count := range seen {
		require.Equalf(t, 1, count, "block %d held by %d nodes", id, count)
	}

	// I2: the left/right edges form a tree covering all nodes from root.
	if n == 0 {
		return
	}
	require.NotEqual(t, None, tree.Root, "non-empty tree must have a root")
	require.Equal(t, None, tree.Nodes[tree.Root].Parent, "root must have no parent")
	visited := make([]bool, n)
	count := 0
	var walk func(u int)
	walk = func(u int) {
		if u == None {
			return
		}
		require.Falsef(t, visited[u], "node %d reached twice", u)
		visited[u] = true
		count++
		walk(tree.Nodes[u].Left)
		walk(tree.Nodes[u].Right)
	}
	walk(tree.Root)
	require.Equal(t, n, count, "all nodes reachable from root")

	// I2/I3: parent pointers climb to the root; children point back.
	for u := range tree.Nodes {
		steps := 0
		for v := u; tree.Nodes[v].Parent != None; v = tree.Nodes[v].Parent {
			steps++
			require.LessOrEqualf(t, steps, n, "parent chain from node %d does not terminate", u)
		}
		if l := tree.Nodes[u].Left; l != None {
			require.Equalf(t, u, tree.Nodes[l].Parent, "left child %d of %d has wrong parent", l, u)
		}
		if r := tree.Nodes[u].Right; r != None {
			require.Equalf(t, u, tree.Nodes[r].Parent, "right child %d of %d has wrong parent", r, u)
		}
	}

	// I4: dimension indices valid, sizes mirror the selected option.
	for u := range tree.Nodes {
		node := tree.Nodes[u]
		opts := tree.Model().Blocks[node.BlockID].Dimensions
		require.GreaterOrEqual(t, node.DimIdx, 0)
		require.Less(t, node.DimIdx, len(opts))
		require.Equal(t, opts[node.DimIdx].Width, node.Width)
		require.Equal(t, opts[node.DimIdx].Height, node.Height)
	}
}

func TestTree_SeedLeftSkewed_BuildsChain(t *testing.T) {
	// GIVEN four blocks
	tree := NewTree(uniformModel(4, 2, 3))

	// WHEN seeded left-skewed in identity order
	identitySeed(tree)

	// THEN node i's left child is node i+1 and no right edges exist
	checkInvariants(t, tree)
	assert.Equal(t, 0, tree.Root)
	for i := 0; i < 3; i++ {
		assert.Equal(t, i+1, tree.Nodes[i].Left)
		assert.Equal(t, None, tree.Nodes[i].Right)
	}
	assert.Equal(t, None, tree.Nodes[3].Left)
}

func TestTree_Seed_RandomPermutationKeepsInvariants(t *testing.T) {
	tree := NewTree(uniformModel(9, 1, 1))
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 20; i++ {
		tree.Seed(rng)
		checkInvariants(t, tree)
	}
}

func TestTree_Detach_Leaf_SlotBecomesEmpty(t *testing.T) {
	tree := NewTree(uniformModel(3, 1, 1))
	identitySeed(tree)

	// WHEN the tail leaf is detached
	promoted := tree.Detach(2)

	// THEN nothing is promoted and the leaf is fully unlinked
	assert.Equal(t, None, promoted)
	assert.Equal(t, None, tree.Nodes[1].Left)
	assert.Equal(t, None, tree.Nodes[2].Parent)
}

func TestTree_Detach_OneChild_ChildPromoted(t *testing.T) {
	tree := NewTree(uniformModel(3, 1, 1))
	identitySeed(tree)

	// WHEN the middle node of the chain is detached
	promoted := tree.Detach(1)

	// THEN its only child takes its slot under the old parent
	assert.Equal(t, 2, promoted)
	assert.Equal(t, 2, tree.Nodes[0].Left)
	assert.Equal(t, 0, tree.Nodes[2].Parent)
	assert.Equal(t, None, tree.Nodes[1].Parent)
	assert.Equal(t, None, tree.Nodes[1].Left)
}

func TestTree_Detach_TwoChildren_RightSubtreeReattachedUnderLeft(t *testing.T) {
	// GIVEN node u with left child L (whose rightmost descendant is L
	// itself) and right child R
	tree := NewTree(uniformModel(4, 1, 1))
	identitySeed(tree) // chain 0 -> 1 -> 2 -> 3
	tree.Detach(3)
	tree.Attach(3, 1, false) // node 1 now has left=2, right=3

	// WHEN u=1 is detached
	promoted := tree.Detach(1)

	// THEN L=2 is promoted into u's slot and R=3 hangs off L's rightmost
	// descendant
	assert.Equal(t, 2, promoted)
	assert.Equal(t, 2, tree.Nodes[0].Left)
	assert.Equal(t, 0, tree.Nodes[2].Parent)
	assert.Equal(t, 3, tree.Nodes[2].Right)
	assert.Equal(t, 2, tree.Nodes[3].Parent)
	checkTreeAfterRelink(t, tree)
}

// checkTreeAfterRelink re-checks I2/I3 for trees mid-edit where one node
// is intentionally unlinked.
func checkTreeAfterRelink(t *testing.T, tree *Tree) {
	t.Helper()
	for u := range tree.Nodes {
		if l := tree.Nodes[u].Left; l != None {
			require.Equal(t, u, tree.Nodes[l].Parent)
		}
		if r := tree.Nodes[u].Right; r != None {
			require.Equal(t, u, tree.Nodes[r].Parent)
		}
	}
}

func TestTree_Detach_Root_PromotedChildBecomesRoot(t *testing.T) {
	tree := NewTree(uniformModel(3, 1, 1))
	identitySeed(tree)

	promoted := tree.Detach(0)

	assert.Equal(t, 1, promoted)
	assert.Equal(t, 1, tree.Root)
	assert.Equal(t, None, tree.Nodes[1].Parent)
}

func TestTree_DetachAttach_RestoresInvariants(t *testing.T) {
	tree := NewTree(uniformModel(5, 1, 1))
	identitySeed(tree)

	tree.Detach(2)
	tree.Attach(2, 4, true)

	checkInvariants(t, tree)
}

func TestTree_Attach_SplicesAboveOldChild(t *testing.T) {
	// GIVEN a chain 0 -> 1 -> 2 and a detached node 3... build from 4
	tree := NewTree(uniformModel(4, 1, 1))
	identitySeed(tree)
	tree.Detach(3)

	// WHEN 3 is attached as 0's left child
	tree.Attach(3, 0, true)

	// THEN the old left child 1 is now 3's left child
	assert.Equal(t, 3, tree.Nodes[0].Left)
	assert.Equal(t, 1, tree.Nodes[3].Left)
	assert.Equal(t, 3, tree.Nodes[1].Parent)
	checkInvariants(t, tree)
}

func TestTree_SwapPayload_TopologyUntouched(t *testing.T) {
	model := NewBlockModel([]Block{
		{Name: "A", Dimensions: []Dimension{{Width: 1, Height: 2}}},
		{Name: "B", Dimensions: []Dimension{{Width: 3, Height: 4}}},
		{Name: "C", Dimensions: []Dimension{{Width: 5, Height: 6}}},
	})
	tree := NewTree(model)
	identitySeed(tree)

	tree.SwapPayload(0, 2)

	assert.Equal(t, 2, tree.Nodes[0].BlockID)
	assert.Equal(t, 0, tree.Nodes[2].BlockID)
	assert.Equal(t, 5.0, tree.Nodes[0].Width)
	assert.Equal(t, 1.0, tree.Nodes[2].Width)
	assert.Equal(t, 1, tree.Nodes[0].Left) // topology unchanged
	checkInvariants(t, tree)
}

func TestTree_SetDim_RefreshesSize(t *testing.T) {
	model := NewBlockModel([]Block{
		{Name: "A", Dimensions: []Dimension{{Width: 2, Height: 8}, {Width: 8, Height: 2}}},
	})
	tree := NewTree(model)
	identitySeed(tree)

	tree.SetDim(0, 1)

	assert.Equal(t, 1, tree.Nodes[0].DimIdx)
	assert.Equal(t, 8.0, tree.Nodes[0].Width)
	assert.Equal(t, 2.0, tree.Nodes[0].Height)
}

func TestTree_Clone_IsIndependent(t *testing.T) {
	tree := NewTree(uniformModel(3, 2, 2))
	identitySeed(tree)
	tree.Pack()
	tree.EvaluateCost()

	clone := tree.Clone()
	clone.Detach(2)
	clone.Attach(2, 0, false)
	clone.Nodes[0].X = 99

	// The original is untouched by edits to the clone.
	assert.Equal(t, 2, tree.Nodes[1].Left)
	assert.Equal(t, 0.0, tree.Nodes[0].X)
	assert.Same(t, tree.Model(), clone.Model())
}
