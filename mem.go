package exif66

// Allocator supplies every buffer owned by a Data tree: entry values, the
// thumbnail, maker note entries and encoded output. Alloc and Realloc
// return nil when memory can't be provided; new memory is zeroed.
type Allocator interface {
	Alloc(size uint32) []byte
	Realloc(buf []byte, size uint32) []byte
	Free(buf []byte)
}

type heapAllocator struct{}

func (heapAllocator) Alloc(size uint32) []byte {
	return make([]byte, size)
}

func (heapAllocator) Realloc(buf []byte, size uint32) []byte {
	out := make([]byte, size)
	copy(out, buf)
	return out
}

func (heapAllocator) Free([]byte) {}

// Allocator used when none is given: the Go heap.
var DefaultAllocator Allocator = heapAllocator{}

// LimitAllocator allocates from the Go heap but fails once the bytes
// outstanding would exceed Limit. It isn't safe for concurrent use.
type LimitAllocator struct {
	Limit uint64
	inUse uint64
}

func NewLimitAllocator(limit uint64) *LimitAllocator {
	return &LimitAllocator{Limit: limit}
}

func (a *LimitAllocator) Alloc(size uint32) []byte {
	if a.inUse+uint64(size) > a.Limit {
		return nil
	}
	a.inUse += uint64(size)
	return make([]byte, size)
}

func (a *LimitAllocator) Realloc(buf []byte, size uint32) []byte {
	old := uint64(len(buf))
	if old > a.inUse {
		old = a.inUse
	}
	if a.inUse-old+uint64(size) > a.Limit {
		return nil
	}
	a.inUse = a.inUse - old + uint64(size)
	out := make([]byte, size)
	copy(out, buf)
	return out
}

func (a *LimitAllocator) Free(buf []byte) {
	n := uint64(len(buf))
	if n > a.inUse {
		n = a.inUse
	}
	a.inUse -= n
}

// Return the number of bytes allocated and not yet freed.
func (a *LimitAllocator) InUse() uint64 {
	return a.inUse
}
