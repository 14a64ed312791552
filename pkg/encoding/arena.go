package encoding

// Arena is a bump allocator scoped to one render call (or a small batch the
// caller groups, e.g. one UI refresh). Allocations are carved from chunks
// and released in bulk by Reset, never piecemeal; buffers returned by a
// render are valid exactly as long as the caller retains the arena.
type Arena struct {
	chunk []byte
	off   int
	full  [][]byte
}

const arenaChunkSize = 16 * 1024

// NewArena creates an empty arena. The first chunk is allocated lazily.
func NewArena() *Arena {
	return &Arena{}
}

// Alloc returns a zeroed n-byte buffer from the arena.
func (a *Arena) Alloc(n int) []byte {
	if n <= 0 {
		return []byte{}
	}
	if a.off+n > len(a.chunk) {
		size := arenaChunkSize
		if n > size {
			size = n
		}
		if a.chunk != nil {
			a.full = append(a.full, a.chunk)
		}
		a.chunk = make([]byte, size)
		a.off = 0
	}
	b := a.chunk[a.off : a.off+n : a.off+n]
	a.off += n
	clear(b)
	return b
}

// Reset releases everything allocated so far in one step. The most recent
// chunk is retained for reuse; buffers handed out before the Reset must not
// be used afterwards.
func (a *Arena) Reset() {
	a.full = nil
	a.off = 0
}
