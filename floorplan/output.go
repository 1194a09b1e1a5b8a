package floorplan

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"sort"
)

// WriteOutput writes the packed placement to path in the result format:
// chip area, then chip width and height, then the INL, then one line per
// block sorted by natural name order with its position and chosen
// dimension. A non-finite INL is written as 0.
func WriteOutput(t *Tree, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	inl := t.INL
	if math.IsNaN(inl) || math.IsInf(inl, 0) {
		inl = 0
	}
	fmt.Fprintf(w, "%.4f\n", t.ChipArea)
	fmt.Fprintf(w, "%.2f %.2f\n", t.ChipWidth, t.ChipHeight)
	fmt.Fprintf(w, "%.2f\n", inl)

	type placement struct {
		name string
		x, y float64
		dim  Dimension
	}
	rows := make([]placement, len(t.Nodes))
	for i := range t.Nodes {
		n := &t.Nodes[i]
		b := t.model.Blocks[n.BlockID]
		rows[i] = placement{
			name: b.Name,
			x:    n.X,
			y:    n.Y,
			dim:  b.Dimensions[n.DimIdx],
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return LessBlockName(rows[i].name, rows[j].name)
	})

	for _, row := range rows {
		fmt.Fprintf(w, "%s %.3f %.3f (%.2f %.2f %d %d)\n",
			row.name, row.x, row.y,
			row.dim.Width, row.dim.Height,
			row.dim.ColMultiple, row.dim.RowMultiple)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush output file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}
	return nil
}
