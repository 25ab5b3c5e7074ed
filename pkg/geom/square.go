package geom

// A Square is an axis-aligned region: a centre and a side length. The
// region is half-open on every dimension: [center-length/2,
// center+length/2).
type Square struct {
	Center Point
	Length float64
}

// NewSquare builds a Square, copying center.
func NewSquare(center Point, length float64) Square {
	return Square{Center: center.Clone(), Length: length}
}

// Contains reports whether p lies within s, inclusive on the lower bound
// of every dimension and exclusive on the upper bound.
func (s Square) Contains(p Point) bool {
	bound := s.Length * 0.5
	for i := range s.Center {
		lo := s.Center[i] - bound
		hi := s.Center[i] + bound
		if p[i] < lo || p[i] >= hi {
			return false
		}
	}
	return true
}

// Quadrant returns the index, in [0, 2^D), of the sub-square of s that
// contains p, relative to s's centre (not s's own quadrant within its
// parent). Bit i of the result is 1 iff p[i] lies on the non-negative
// side of dimension i, within precision.
func (s Square) Quadrant(p Point, precision float64) int {
	quadrant := 0
	for i := range s.Center {
		if p[i] >= s.Center[i]-precision {
			quadrant |= 1 << uint(i)
		}
	}
	return quadrant
}

// ChildCenter returns the centre of the given quadrant of s. The
// quadrant's side length is always s.Length/2.
func (s Square) ChildCenter(quadrant int) Point {
	center := make(Point, len(s.Center))
	for i := range s.Center {
		bit := float64((quadrant>>uint(i))&1) - 0.5
		center[i] = s.Center[i] + bit*0.5*s.Length
	}
	return center
}

// ChildLength returns the side length of any child quadrant of s.
func (s Square) ChildLength() float64 {
	return s.Length / 2
}

// NumQuadrants returns 2^D for a square of this dimension.
func (s Square) NumQuadrants() int {
	return 1 << uint(len(s.Center))
}
