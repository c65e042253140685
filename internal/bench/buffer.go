package bench

import "unsafe"

// AlignedBuf is a block-aligned io buffer. direct io requires the
// buffer address to be a multiple of the target's block size, which the
// go allocator does not guarantee, so the backing slice is oversized by
// align-1 bytes and the exposed slice starts at the first aligned byte.
type AlignedBuf struct {
	// backing region, kept alive so the aligned view stays valid
	raw []byte

	// aligned view of exactly the requested size
	data []byte
}

// NewAlignedBuf allocates a buffer of the given size whose starting
// address is a multiple of align. align must be a power of two.
func NewAlignedBuf(size, align int64) *AlignedBuf {
	// allocate enough slack to find an aligned byte in the region
	raw := make([]byte, size+align-1)

	// compute the distance from the base address to the next multiple
	// of align
	addr := uintptr(unsafe.Pointer(&raw[0]))
	off := int64((uintptr(align) - (addr & uintptr(align-1))) & uintptr(align-1))

	return &AlignedBuf{
		raw:  raw,
		data: raw[off : off+size],
	}
}

// Bytes returns the aligned working slice. the slice is stable for the
// buffer's lifetime and always exactly the requested size.
func (b *AlignedBuf) Bytes() []byte {
	return b.data
}
