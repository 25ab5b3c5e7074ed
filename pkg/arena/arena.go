// Package arena is a serial, free-list-backed object store. It is the
// single-threaded counterpart to the teacher's objectstore/store
// packages: nodes are allocated from growable chunks and referenced by a
// small value type (chunk, offset, generation) instead of a raw pointer,
// so the skip quadtree never holds a Go pointer across a level boundary.
//
// There is no locking anywhere in this package. The reference model
// (spec.md §5) is strictly single-threaded; a concurrent variant would
// need its own synchronization layered on top, not baked in here.
package arena

import "fmt"

const chunkSize = 1024

// Ref is a stable handle to a value stored in a Store. The zero Ref is
// nil and never refers to a live value.
type Ref[O any] struct {
	chunk  int32
	offset int32
	gen    uint32
}

// IsNil reports whether r is the zero Ref.
func (r Ref[O]) IsNil() bool {
	return r.chunk == 0 && r.offset == 0
}

// Equal reports whether r and other name the same slot and generation.
func (r Ref[O]) Equal(other Ref[O]) bool {
	return r == other
}

type slot[O any] struct {
	gen      uint32
	freed    bool
	nextFree Ref[O]
	value    O
}

// Store is a generation-checked free-list arena of O values. It owns
// every value it hands out; a Ref obtained from one Store must never be
// passed to another.
type Store[O any] struct {
	chunks   [][]slot[O]
	offset   int32 // next unused offset in the last chunk
	freeHead Ref[O]
	count    int // live (allocated, not freed) values
}

// NewStore returns an empty Store.
func NewStore[O any]() *Store[O] {
	return &Store[O]{
		chunks: [][]slot[O]{make([]slot[O], chunkSize)},
		offset: 0,
	}
}

// Len reports the number of currently-live (allocated and not yet freed)
// values in s.
func (s *Store[O]) Len() int {
	return s.count
}

// Alloc reserves a zero-valued O and returns its Ref and a pointer to it
// for immediate initialisation. Freed slots are reused before growing.
func (s *Store[O]) Alloc() (Ref[O], *O) {
	s.count++
	if !s.freeHead.IsNil() {
		return s.allocFromFree()
	}
	return s.allocFresh()
}

func (s *Store[O]) allocFresh() (Ref[O], *O) {
	if s.offset == chunkSize {
		s.chunks = append(s.chunks, make([]slot[O], chunkSize))
		s.offset = 0
	}
	chunk := int32(len(s.chunks))
	offset := s.offset
	s.offset++
	sl := s.slotAt(chunk, offset)
	ref := Ref[O]{chunk: chunk, offset: offset, gen: sl.gen}
	return ref, &sl.value
}

func (s *Store[O]) allocFromFree() (Ref[O], *O) {
	r := s.freeHead
	sl := s.slotAt(r.chunk, r.offset)
	next := sl.nextFree
	if next.Equal(r) {
		// The free list cycles back on itself when empty; see Free.
		next = Ref[O]{}
	}
	s.freeHead = next
	sl.freed = false
	sl.nextFree = Ref[O]{}
	sl.gen++
	var zero O
	sl.value = zero
	return Ref[O]{chunk: r.chunk, offset: r.offset, gen: sl.gen}, &sl.value
}

// Free releases the slot r refers to, making it eligible for reuse by a
// later Alloc. Freeing a nil, already-freed, or stale (generation
// mismatch) Ref panics: those are all invariant violations the skip
// quadtree's algorithms are required to rule out before calling Free.
func (s *Store[O]) Free(r Ref[O]) {
	if r.IsNil() {
		panic("arena: Free of nil Ref")
	}
	sl := s.slotAt(r.chunk, r.offset)
	if sl.freed {
		panic(fmt.Errorf("arena: double Free of %+v", r))
	}
	if sl.gen != r.gen {
		panic(fmt.Errorf("arena: Free with stale Ref (want gen %d, have %d)", sl.gen, r.gen))
	}
	s.count--
	sl.freed = true
	if s.freeHead.IsNil() {
		sl.nextFree = r
	} else {
		sl.nextFree = s.freeHead
	}
	s.freeHead = r
}

// Get returns a pointer to the live value r refers to. Get of a nil,
// freed, or stale Ref panics for the same reason Free does.
func (s *Store[O]) Get(r Ref[O]) *O {
	if r.IsNil() {
		panic("arena: Get of nil Ref")
	}
	sl := s.slotAt(r.chunk, r.offset)
	if sl.freed {
		panic(fmt.Errorf("arena: Get of freed Ref %+v", r))
	}
	if sl.gen != r.gen {
		panic(fmt.Errorf("arena: Get with stale Ref (want gen %d, have %d)", sl.gen, r.gen))
	}
	return &sl.value
}

func (s *Store[O]) slotAt(chunk, offset int32) *slot[O] {
	return &s.chunks[chunk-1][offset]
}
