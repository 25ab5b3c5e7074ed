package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSquareContainsHalfOpen(t *testing.T) {
	s := NewSquare(NewPoint(0, 0), 2) // covers [-1,1) x [-1,1)

	assert.True(t, s.Contains(NewPoint(0, 0)))
	assert.True(t, s.Contains(NewPoint(-1, -1)), "lower face is inclusive")
	assert.False(t, s.Contains(NewPoint(1, 0)), "upper face on x is exclusive")
	assert.False(t, s.Contains(NewPoint(0, 1)), "upper face on y is exclusive")
	assert.False(t, s.Contains(NewPoint(-1.0001, 0)))
}

func TestSquareQuadrant2D(t *testing.T) {
	s := NewSquare(NewPoint(0, 0), 2)

	// Quadrant bit 0 is x >= center.x, bit 1 is y >= center.y.
	assert.Equal(t, 0, s.Quadrant(NewPoint(-0.5, -0.5), testPrecision))
	assert.Equal(t, 1, s.Quadrant(NewPoint(0.5, -0.5), testPrecision))
	assert.Equal(t, 2, s.Quadrant(NewPoint(-0.5, 0.5), testPrecision))
	assert.Equal(t, 3, s.Quadrant(NewPoint(0.5, 0.5), testPrecision))

	// Points on the centre itself land on the non-negative side of every
	// dimension.
	assert.Equal(t, 3, s.Quadrant(NewPoint(0, 0), testPrecision))
}

func TestSquareQuadrant3D(t *testing.T) {
	s := NewSquare(NewPoint(0, 0, 0), 2)
	assert.Equal(t, 8, s.NumQuadrants())
	assert.Equal(t, 0, s.Quadrant(NewPoint(-1, -1, -1), testPrecision))
	assert.Equal(t, 4, s.Quadrant(NewPoint(-1, -1, 0.5), testPrecision))
}

func TestSquareChildCenterRoundTrips(t *testing.T) {
	s := NewSquare(NewPoint(10, -4), 8)
	for q := 0; q < s.NumQuadrants(); q++ {
		child := NewSquare(s.ChildCenter(q), s.ChildLength())
		assert.Equal(t, s.Length/2, child.Length)
		// The parent's quadrant computation for the child's own centre
		// must agree with q: a child built for quadrant q contains its
		// own centre in quadrant q relative to the parent.
		assert.Equal(t, q, s.Quadrant(child.Center, testPrecision))
	}
}

func TestSquareChildrenPartitionParent(t *testing.T) {
	s := NewSquare(NewPoint(0, 0), 4)
	samples := []Point{
		NewPoint(-1.9, -1.9),
		NewPoint(1.9, -1.9),
		NewPoint(-1.9, 1.9),
		NewPoint(1.9, 1.9),
		NewPoint(0, 0),
	}
	for _, p := range samples {
		require := s.Contains(p)
		assert.True(t, require)
		q := s.Quadrant(p, testPrecision)
		child := NewSquare(s.ChildCenter(q), s.ChildLength())
		assert.True(t, child.Contains(p), "point %v not contained by its own computed quadrant %d", p, q)
	}
}
