package memory

// Ref is an opaque reference to a live allocation. The zero value is the nil
// reference, also returned for zero-sized allocations.
type Ref struct {
	pool   *Pool
	offset uint64
	size   uint64
	valid  bool
}

// NilRef is the null allocation reference.
var NilRef = Ref{}

// IsNil reports whether the reference does not point at an allocation.
func (r Ref) IsNil() bool {
	return !r.valid
}

// Offset returns the allocation address within the managed buffer.
func (r Ref) Offset() uint64 {
	return r.offset
}

// Size returns the granted length, which may exceed the requested size when
// the leftover was below the split threshold.
func (r Ref) Size() uint64 {
	return r.size
}

// Bytes returns a view of the allocated bytes. Callers must not retain the
// slice past Deallocate.
func (r Ref) Bytes() []byte {
	if r.IsNil() {
		return nil
	}
	return r.pool.buf[r.offset : r.offset+r.size]
}
