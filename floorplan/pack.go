package floorplan

// Pack maps the tree topology to concrete coordinates and recomputes the
// chip extents. Placement is a pre-order walk: a node lands after its
// parent and before its subtree. The x coordinate follows the B*-tree
// rule (left child right of parent, right child above parent at the same
// x); the y coordinate is the highest skyline value under the node's
// horizontal span. Identical trees always pack to identical coordinates.
func (t *Tree) Pack() {
	t.ChipWidth = 0
	t.ChipHeight = 0
	t.ChipArea = 0
	if t.Root == None {
		return
	}

	c := newContour()
	t.packNode(t.Root, c)

	for i := range t.Nodes {
		n := &t.Nodes[i]
		if right := n.X + n.Width; right > t.ChipWidth {
			t.ChipWidth = right
		}
		if top := n.Y + n.Height; top > t.ChipHeight {
			t.ChipHeight = top
		}
	}
	t.ChipArea = t.ChipWidth * t.ChipHeight
}

func (t *Tree) packNode(u int, c *contour) {
	if u == None {
		return
	}
	n := &t.Nodes[u]

	x := 0.0
	if n.Parent != None {
		p := &t.Nodes[n.Parent]
		if p.Left == u {
			x = p.X + p.Width
		} else {
			x = p.X
		}
	}
	n.X = x
	n.Y = c.maxYIn(x, x+n.Width)
	c.place(x, x+n.Width, n.Y+n.Height)

	t.packNode(n.Left, c)
	t.packNode(n.Right, c)
}
