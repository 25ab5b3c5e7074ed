package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mutableStruct struct {
	Field int
}

// Allocating enough values to span several chunks must still yield
// distinct, independently-modifiable slots.
func Test_Arena_NewModifyGet(t *testing.T) {
	s := NewStore[mutableStruct]()

	refs := make([]Ref[mutableStruct], chunkSize*3)
	for i := range refs {
		r, v := s.Alloc()
		v.Field = i
		refs[i] = r
	}

	assert.Equal(t, len(refs), s.Len())

	for i, r := range refs {
		v := s.Get(r)
		assert.Equal(t, i, v.Field)
	}
}

// A freed slot is recycled by the next Alloc, and the recycled Ref gets a
// fresh generation so the old Ref can no longer be used.
func Test_Arena_FreeThenRealloc(t *testing.T) {
	s := NewStore[mutableStruct]()

	r1, v1 := s.Alloc()
	v1.Field = 1
	s.Free(r1)
	assert.Equal(t, 0, s.Len())

	r2, v2 := s.Alloc()
	v2.Field = 2
	assert.Equal(t, 1, s.Len())

	assert.Equal(t, r1.chunk, r2.chunk)
	assert.Equal(t, r1.offset, r2.offset)
	assert.NotEqual(t, r1.gen, r2.gen)

	assert.Panics(t, func() { s.Get(r1) })
}

func Test_Arena_DoubleFreePanics(t *testing.T) {
	s := NewStore[mutableStruct]()
	r, _ := s.Alloc()
	s.Free(r)
	assert.Panics(t, func() { s.Free(r) })
}

func Test_Arena_NilRefIsNil(t *testing.T) {
	var r Ref[mutableStruct]
	assert.True(t, r.IsNil())
	assert.Panics(t, func() { (&Store[mutableStruct]{}).Get(r) })
}

func Test_Arena_ManyFreesAndReallocs(t *testing.T) {
	s := NewStore[mutableStruct]()

	var live []Ref[mutableStruct]
	for i := 0; i < chunkSize+10; i++ {
		r, v := s.Alloc()
		v.Field = i
		live = append(live, r)
	}
	require.Equal(t, chunkSize+10, s.Len())

	// Free every other slot, then reallocate that many new values; the
	// arena must reuse the freed slots rather than growing further.
	var freed []Ref[mutableStruct]
	for i := 0; i < len(live); i += 2 {
		s.Free(live[i])
		freed = append(freed, live[i])
	}
	assert.Equal(t, len(live)-len(freed), s.Len())

	for range freed {
		r, v := s.Alloc()
		v.Field = -1
		_ = r
	}
	assert.Equal(t, len(live), s.Len())
	assert.Len(t, s.chunks, 2)
}
