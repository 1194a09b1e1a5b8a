package floorplan

import "math/rand"

// None marks an absent node handle (no parent, no child, empty root).
const None = -1

// Node is one slot in the tree arena. BlockID and DimIdx index into the
// shared BlockModel; Width/Height mirror the selected dimension option;
// X/Y are outputs of Pack.
type Node struct {
	BlockID int
	Parent  int
	Left    int
	Right   int
	DimIdx  int
	Width   float64
	Height  float64
	X       float64
	Y       float64
}

// Tree is a B*-tree floorplan solution: a fixed-size arena of nodes (one
// per block) linked by integer handles, plus the packed chip extents and
// cost scalars. A left child sits immediately to the right of its parent;
// a right child sits directly above it.
//
// A Tree is owned by exactly one worker at a time. Clone produces an
// independent deep copy; the search loops never mutate a tree after it has
// been published as a current or best solution, they replace it.
type Tree struct {
	model *BlockModel
	Nodes []Node
	Root  int

	ChipWidth  float64
	ChipHeight float64
	ChipArea   float64
	Cost       float64
	INL        float64
}

// NewTree allocates an empty tree over the model: one unlinked node per
// block, no root, cost at the rejection sentinel.
func NewTree(model *BlockModel) *Tree {
	t := &Tree{
		model: model,
		Nodes: make([]Node, model.NumBlocks()),
		Root:  None,
		Cost:  CostSentinel,
	}
	for i := range t.Nodes {
		t.Nodes[i] = Node{Parent: None, Left: None, Right: None}
	}
	return t
}

// Model returns the shared read-only block model this tree places.
func (t *Tree) Model() *BlockModel {
	return t.model
}

// Clone returns a deep copy sharing only the read-only model.
func (t *Tree) Clone() *Tree {
	c := *t
	c.Nodes = make([]Node, len(t.Nodes))
	copy(c.Nodes, t.Nodes)
	return &c
}

// Seed rebuilds the tree as a fresh random initial solution: a random
// permutation of blocks on a left-skewed chain, each node holding a
// uniformly drawn dimension option.
func (t *Tree) Seed(rng *rand.Rand) {
	perm := rng.Perm(len(t.Nodes))
	dims := make([]int, len(t.Nodes))
	for i, blockID := range perm {
		dims[i] = rng.Intn(len(t.model.Blocks[blockID].Dimensions))
	}
	t.SeedLeftSkewed(perm, dims)
}

// SeedLeftSkewed rebuilds the tree deterministically: node i carries block
// order[i] with dimension option dimChoices[i], node 0 is the root, and
// each node's left child is the next node. order must be a permutation of
// the block indices and dimChoices valid per block.
func (t *Tree) SeedLeftSkewed(order []int, dimChoices []int) {
	for i := range t.Nodes {
		blockID := order[i]
		d := t.model.Blocks[blockID].Dimensions[dimChoices[i]]
		t.Nodes[i] = Node{
			BlockID: blockID,
			Parent:  None,
			Left:    None,
			Right:   None,
			DimIdx:  dimChoices[i],
			Width:   d.Width,
			Height:  d.Height,
		}
	}
	if len(t.Nodes) == 0 {
		t.Root = None
		return
	}
	t.Root = 0
	for i := 0; i < len(t.Nodes)-1; i++ {
		t.Nodes[i].Left = i + 1
		t.Nodes[i+1].Parent = i
	}
}

// Detach unlinks node u from the tree and returns the handle promoted into
// its slot (None if u was a leaf). When u has two children, u's right
// subtree is re-attached as the right child of the rightmost descendant of
// u's left child, and the left child is promoted. On return u has no
// parent and no children.
func (t *Tree) Detach(u int) int {
	if u == None {
		return None
	}
	p, l, r := t.Nodes[u].Parent, t.Nodes[u].Left, t.Nodes[u].Right

	if l != None && r != None {
		rightmost := l
		for t.Nodes[rightmost].Right != None {
			rightmost = t.Nodes[rightmost].Right
		}
		t.Nodes[rightmost].Right = r
		t.Nodes[r].Parent = rightmost
	}

	promoted := r
	if l != None {
		promoted = l
	}

	if p != None {
		if t.Nodes[p].Left == u {
			t.Nodes[p].Left = promoted
		} else {
			t.Nodes[p].Right = promoted
		}
		if promoted != None {
			t.Nodes[promoted].Parent = p
		}
	} else {
		t.Root = promoted
		if promoted != None {
			t.Nodes[promoted].Parent = None
		}
	}

	t.Nodes[u].Parent = None
	t.Nodes[u].Left = None
	t.Nodes[u].Right = None
	return promoted
}

// Attach splices the fully unlinked node u in as p's child on the chosen
// side; p's previous child on that side becomes u's child on the same
// side. Callers must only pass a u just unlinked by Detach, with p != u.
func (t *Tree) Attach(u, p int, asLeft bool) {
	if u == None || p == None {
		return
	}
	t.Nodes[u].Parent = p
	if asLeft {
		old := t.Nodes[p].Left
		t.Nodes[u].Left = old
		if old != None {
			t.Nodes[old].Parent = u
		}
		t.Nodes[p].Left = u
	} else {
		old := t.Nodes[p].Right
		t.Nodes[u].Right = old
		if old != None {
			t.Nodes[old].Parent = u
		}
		t.Nodes[p].Right = u
	}
}

// SwapPayload exchanges the block and dimension selection of two nodes
// without touching the topology.
func (t *Tree) SwapPayload(a, b int) {
	na, nb := &t.Nodes[a], &t.Nodes[b]
	na.BlockID, nb.BlockID = nb.BlockID, na.BlockID
	na.DimIdx, nb.DimIdx = nb.DimIdx, na.DimIdx
	na.Width, nb.Width = nb.Width, na.Width
	na.Height, nb.Height = nb.Height, na.Height
}

// SetDim selects dimension option k for node u and refreshes its size.
func (t *Tree) SetDim(u, k int) {
	n := &t.Nodes[u]
	n.DimIdx = k
	d := t.model.Blocks[n.BlockID].Dimensions[k]
	n.Width = d.Width
	n.Height = d.Height
}

// RefreshDims re-reads every node's width/height from its currently
// selected dimension option.
func (t *Tree) RefreshDims() {
	for i := range t.Nodes {
		n := &t.Nodes[i]
		d := t.model.Blocks[n.BlockID].Dimensions[n.DimIdx]
		n.Width = d.Width
		n.Height = d.Height
	}
}
