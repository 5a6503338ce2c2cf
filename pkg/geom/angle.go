package geom

import "math"

// Angle is an orientation in degrees, normalized to [0, 360).
type Angle float64

const angleEpsilon = 1e-6

// AngleOf returns the orientation of v. Axis-aligned vectors map to exact
// multiples of 90 and the zero vector is horizontal.
func AngleOf(v Point) Angle {
	switch {
	case v.Y == 0 && v.X >= 0:
		return 0
	case v.Y == 0:
		return 180
	case v.X == 0 && v.Y > 0:
		return 90
	case v.X == 0:
		return 270
	}
	return Angle(math.Atan2(float64(v.Y), float64(v.X)) * 180 / math.Pi).Normalize()
}

// Normalize folds a into [0, 360).
func (a Angle) Normalize() Angle {
	v := math.Mod(float64(a), 360)
	if v < 0 {
		v += 360
	}
	if 360-v < angleEpsilon {
		v = 0
	}
	return Angle(v)
}

// Add returns a+o, normalized.
func (a Angle) Add(o Angle) Angle { return (a + o).Normalize() }

// IsParallelTo reports whether a and o describe the same line direction,
// ignoring sense.
func (a Angle) IsParallelTo(o Angle) bool {
	d := math.Mod(math.Abs(float64(a.Normalize()-o.Normalize())), 180)
	return d < angleEpsilon || 180-d < angleEpsilon
}

// IsHorizontal reports whether a is 0 or 180.
func (a Angle) IsHorizontal() bool { return a.IsParallelTo(0) }

// IsVertical reports whether a is 90 or 270.
func (a Angle) IsVertical() bool { return a.IsParallelTo(90) }
