// Package ring implements the fixed-capacity ring buffer that reconciles the
// host's callback block size with a model's processing block size.
package ring

// Sample is a constraint for the numeric element types the buffer converts
// between. Source and target types are explicit generic parameters so the
// precision behavior of every conversion is part of the buffer's contract.
type Sample interface {
	~float32 | ~float64
}

// Buffer is a fixed-capacity FIFO ring buffer. Elements of type S are
// written, stored as type T, and read back as type T with element-wise
// numeric conversion on the way in.
//
// Capacity is always a power of two; wrap-around is a bitmask on the
// free-running cursors. Storage is zero-filled at construction so reads
// that outpace writes return silence rather than garbage.
//
// The buffer is single-threaded by contract: Put and Get are expected to
// run on the host's callback thread in matched cadence. Writing past
// unread data overwrites it (ring semantics) and increments the overrun
// counter.
type Buffer[S, T Sample] struct {
	data     []T
	mask     uint64
	wr       uint64
	rd       uint64
	overruns uint64
}

// New creates a buffer with at least the requested capacity, rounded up to
// the next power of two.
func New[S, T Sample](capacity int) *Buffer[S, T] {
	c := PowerCeil(capacity)
	return &Buffer[S, T]{
		data: make([]T, c),
		mask: uint64(c) - 1,
	}
}

// Cap returns the buffer capacity.
func (b *Buffer[S, T]) Cap() int {
	return len(b.data)
}

// Len returns the number of unread elements.
// Meaningful only while the caller keeps Put/Get in matched cadence.
func (b *Buffer[S, T]) Len() int {
	return int(b.wr - b.rd)
}

// Overruns returns how many elements have been overwritten before being read.
func (b *Buffer[S, T]) Overruns() uint64 {
	return b.overruns
}

// Put appends src to the buffer, converting each element to the stored type.
// Writes past unread data overwrite it.
func (b *Buffer[S, T]) Put(src []S) {
	for _, v := range src {
		b.data[b.wr&b.mask] = T(v)
		b.wr++
	}
	if over := int(b.wr-b.rd) - len(b.data); over > 0 {
		b.overruns += uint64(over)
		b.rd += uint64(over)
	}
}

// Get pops len(dst) elements from the front of the buffer in FIFO order,
// converting from the stored type. Reading past the write cursor yields
// the zero fill value (silence) for the uncovered tail without consuming
// those slots, so data written later is still read in order.
func (b *Buffer[S, T]) Get(dst []T) {
	n := min(len(dst), int(b.wr-b.rd))
	for i := 0; i < n; i++ {
		dst[i] = b.data[b.rd&b.mask]
		b.rd++
	}
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
}

// Reset zero-fills the storage and rewinds both cursors.
func (b *Buffer[S, T]) Reset() {
	clear(b.data)
	b.wr = 0
	b.rd = 0
	b.overruns = 0
}

// PowerCeil returns the least power of two greater than or equal to x.
// Values of one or less map to 1; exact powers of two are returned unchanged.
func PowerCeil(x int) int {
	if x <= 1 {
		return 1
	}
	c := 1
	for c < x {
		c <<= 1
	}
	return c
}
