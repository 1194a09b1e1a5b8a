package floorplan

// Dimension is a single admissible width/height option for a block.
// The column/row multiples are carried through to the output unchanged;
// they affect neither geometry nor cost.
type Dimension struct {
	Width       float64
	Height      float64
	ColMultiple int
	RowMultiple int
}

// Block is one rectangular module awaiting placement. Every block has at
// least one Dimension option. Immutable after load.
type Block struct {
	Name       string
	Dimensions []Dimension
}

// BlockModel is the read-only problem description. One instance is shared
// by all concurrent search workers; nothing in this package mutates it
// after construction.
type BlockModel struct {
	Blocks   []Block
	nameToID map[string]int
}

// NewBlockModel builds a BlockModel from a block list and indexes the
// blocks by name.
func NewBlockModel(blocks []Block) *BlockModel {
	m := &BlockModel{
		Blocks:   blocks,
		nameToID: make(map[string]int, len(blocks)),
	}
	for i, b := range blocks {
		m.nameToID[b.Name] = i
	}
	return m
}

// NumBlocks returns the number of blocks in the model.
func (m *BlockModel) NumBlocks() int {
	return len(m.Blocks)
}

// BlockID returns the index of the named block, if present.
func (m *BlockModel) BlockID(name string) (int, bool) {
	id, ok := m.nameToID[name]
	return id, ok
}
