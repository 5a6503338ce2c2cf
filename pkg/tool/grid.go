package tool

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceSch/pkg/geom"
	"github.com/OpenTraceLab/OpenTraceSch/pkg/sch"
)

// DefaultGridSize is 50 mil in internal units.
const DefaultGridSize = 12700

// GridHelper snaps positions to the grid and to connection points of nearby
// items.
type GridHelper struct {
	Size   int
	Origin geom.Point
	// SnapRadius is the distance within which a cursor snaps to a
	// connection point of an item on Screen. Zero disables item snapping.
	SnapRadius int
	Screen     *sch.Screen
	// Disabled turns grid alignment off; positions pass through.
	Disabled bool
}

// NewGridHelper returns a helper with grid size and no item snapping.
func NewGridHelper(size int) *GridHelper {
	if size <= 0 {
		size = DefaultGridSize
	}
	return &GridHelper{Size: size}
}

func (g *GridHelper) Step() int {
	if g.Size <= 0 {
		return DefaultGridSize
	}
	return g.Size
}

// AlignGrid returns the grid point nearest to p.
func (g *GridHelper) AlignGrid(p geom.Point) geom.Point {
	if g.Disabled {
		return p
	}
	return geom.Pt(snapAxis(p.X, g.Origin.X, g.Step()), snapAxis(p.Y, g.Origin.Y, g.Step()))
}

func snapAxis(v, origin, size int) int {
	q := math.Round(float64(v-origin) / float64(size))
	return int(q)*size + origin
}

// BestSnapAnchor returns the connection point of an item not in skip that
// lies nearest to p within SnapRadius, or p aligned to the grid.
func (g *GridHelper) BestSnapAnchor(p geom.Point, skip []sch.Item) geom.Point {
	if g.SnapRadius > 0 && g.Screen != nil {
		if q, ok := g.nearestAnchor(p, skip); ok {
			return q
		}
	}
	return g.AlignGrid(p)
}

func (g *GridHelper) nearestAnchor(p geom.Point, skip []sch.Item) (geom.Point, bool) {
	ignore := make(map[sch.Item]struct{}, len(skip))
	for _, it := range skip {
		ignore[it] = struct{}{}
	}

	var best geom.Point
	bestDist := math.Inf(1)
	found := false
	for _, it := range g.Screen.Overlapping(geom.BoxAround(p).Inflate(g.SnapRadius)) {
		if _, ok := ignore[it]; ok || it.HasFlag(sch.IsMoving|sch.SelectedByDrag) {
			continue
		}
		for _, c := range it.ConnectionPoints() {
			d := c.Sub(p).Length()
			if d > float64(g.SnapRadius) {
				continue
			}
			if d < bestDist || (d == bestDist && c.Less(best)) {
				best, bestDist, found = c, d, true
			}
		}
	}
	return best, found
}
