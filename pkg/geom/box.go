package geom

// Box is an axis-aligned rectangle with inclusive bounds.
type Box struct {
	Min, Max Point
}

// BoxAround returns the smallest box holding every point.
func BoxAround(pts ...Point) Box {
	if len(pts) == 0 {
		return Box{}
	}
	b := Box{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b = b.Extend(p)
	}
	return b
}

// Extend grows b to hold p.
func (b Box) Extend(p Point) Box {
	b.Min.X = min(b.Min.X, p.X)
	b.Min.Y = min(b.Min.Y, p.Y)
	b.Max.X = max(b.Max.X, p.X)
	b.Max.Y = max(b.Max.Y, p.Y)
	return b
}

// Merge returns the union of b and o.
func (b Box) Merge(o Box) Box {
	return b.Extend(o.Min).Extend(o.Max)
}

// Inflate grows b by n on every side.
func (b Box) Inflate(n int) Box {
	b.Min = b.Min.Sub(Pt(n, n))
	b.Max = b.Max.Add(Pt(n, n))
	return b
}

// Intersects reports whether the boxes share at least one point.
func (b Box) Intersects(o Box) bool {
	return b.Min.X <= o.Max.X && o.Min.X <= b.Max.X &&
		b.Min.Y <= o.Max.Y && o.Min.Y <= b.Max.Y
}

// Contains reports whether p lies inside b or on its edge.
func (b Box) Contains(p Point) bool {
	return b.Min.X <= p.X && p.X <= b.Max.X && b.Min.Y <= p.Y && p.Y <= b.Max.Y
}

// Rect returns the box as float corners for spatial indexes.
func (b Box) Rect() (lo, hi [2]float64) {
	return [2]float64{float64(b.Min.X), float64(b.Min.Y)},
		[2]float64{float64(b.Max.X), float64(b.Max.Y)}
}
