package floorplan

import "github.com/google/btree"

// contourPoint is one skyline breakpoint: the boundary holds height y from
// x until the next breakpoint.
type contourPoint struct {
	x float64
	y float64
}

// contour is the upper skyline of the rectangles placed so far, kept as an
// ordered set of breakpoints. The boundary value at position x is the y of
// the greatest breakpoint whose key is <= x. A fresh contour holds the
// single breakpoint (0, 0).
type contour struct {
	points *btree.BTreeG[contourPoint]
}

func newContour() *contour {
	c := &contour{
		points: btree.NewG(8, func(a, b contourPoint) bool { return a.x < b.x }),
	}
	c.points.ReplaceOrInsert(contourPoint{x: 0, y: 0})
	return c
}

// yAt returns the boundary value at x: the y of the greatest breakpoint
// with key <= x, or 0 if none exists.
func (c *contour) yAt(x float64) float64 {
	y := 0.0
	c.points.DescendLessOrEqual(contourPoint{x: x}, func(p contourPoint) bool {
		y = p.y
		return false
	})
	return y
}

// maxYIn returns the maximum boundary value over [xStart, xEnd). The
// breakpoint immediately to the left of xStart governs the boundary at
// xStart itself, so it participates whenever xStart has no breakpoint of
// its own.
func (c *contour) maxYIn(xStart, xEnd float64) float64 {
	from := xStart
	c.points.DescendLessOrEqual(contourPoint{x: xStart}, func(p contourPoint) bool {
		from = p.x
		return false
	})
	maxY := 0.0
	c.points.AscendGreaterOrEqual(contourPoint{x: from}, func(p contourPoint) bool {
		if p.x >= xEnd {
			return false
		}
		if p.y > maxY {
			maxY = p.y
		}
		return true
	})
	return maxY
}

// place updates the skyline for a rectangle spanning [xStart, xEnd) whose
// top edge sits at newTop. Breakpoints inside the span are removed, the
// span is capped at newTop, and the boundary value that held at xEnd
// before the update is restored there. A breakpoint already at xEnd is
// outside the removed range and keeps its y, which is that same value.
func (c *contour) place(xStart, xEnd, newTop float64) {
	yAfter := c.yAt(xEnd)

	var doomed []contourPoint
	c.points.AscendRange(contourPoint{x: xStart}, contourPoint{x: xEnd}, func(p contourPoint) bool {
		doomed = append(doomed, p)
		return true
	})
	for _, p := range doomed {
		c.points.Delete(p)
	}

	c.points.ReplaceOrInsert(contourPoint{x: xStart, y: newTop})
	if existing, ok := c.points.Get(contourPoint{x: xEnd}); !ok || existing.y < yAfter {
		c.points.ReplaceOrInsert(contourPoint{x: xEnd, y: yAfter})
	}
}
