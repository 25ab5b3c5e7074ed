package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testPrecision = 1e-9

func TestPointsEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want bool
	}{
		{"identical 2D", NewPoint(1, 2), NewPoint(1, 2), true},
		{"within precision", NewPoint(1, 2), NewPoint(1+1e-12, 2), true},
		{"outside precision", NewPoint(1, 2), NewPoint(1.1, 2), false},
		{"differs in one of many dims", NewPoint(1, 2, 3, 4), NewPoint(1, 2, 3.5, 4), false},
		{"1D equal", NewPoint(5), NewPoint(5), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PointsEqual(tt.a, tt.b, testPrecision))
		})
	}
}

func TestComparePoints(t *testing.T) {
	// Equal points compare to 0 regardless of dimension count.
	assert.Equal(t, 0, ComparePoints(NewPoint(1, 2, 3), NewPoint(1, 2, 3), testPrecision))
	assert.Equal(t, 0, ComparePoints(NewPoint(0), NewPoint(0), testPrecision))

	// Comparison scans from the last dimension down, so a difference in
	// the highest-index dimension dominates a difference in a lower one.
	a := NewPoint(100, 1)
	b := NewPoint(0, 2)
	assert.Equal(t, -1, ComparePoints(a, b, testPrecision))
	assert.Equal(t, 1, ComparePoints(b, a, testPrecision))

	// When the last dimension ties within precision, fall through to the
	// next one down.
	c := NewPoint(1, 5)
	d := NewPoint(2, 5)
	assert.Equal(t, -1, ComparePoints(c, d, testPrecision))
}

func TestComparePointsIsAntisymmetric(t *testing.T) {
	pts := []Point{
		NewPoint(0, 0),
		NewPoint(0.1, 0),
		NewPoint(0.2, 0),
		NewPoint(0.3, 0),
		NewPoint(-1, 5),
	}
	for _, a := range pts {
		for _, b := range pts {
			assert.Equal(t, -ComparePoints(a, b, testPrecision), ComparePoints(b, a, testPrecision))
		}
	}
}
