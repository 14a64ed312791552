package encoding

import (
	"bytes"
	"fmt"

	"github.com/willibrandon/memview/pkg/debuginfo"
)

// ellipsis marks a truncated string preview.
var ellipsis = []byte("...")

// limits returns the call's limits with zero fields replaced by defaults.
func (p *Params) limits() Limits {
	l := p.Limits
	if l.MaxStringScan == 0 {
		l.MaxStringScan = DefaultMaxStringScan
	}
	if l.MaxSliceItems == 0 {
		l.MaxSliceItems = DefaultMaxSliceItems
	}
	if l.ScanChunk <= 0 {
		l.ScanChunk = DefaultScanChunk
	}
	return l
}

// declaredPointer resolves the declared type through typedefs and returns it
// if it is a pointer, nil otherwise.
func declaredPointer(p *Params) *debuginfo.DataType {
	t := p.Unit.Underlying(p.Type)
	if t != nil && t.Form == debuginfo.FormPointer {
		return t
	}
	return nil
}

// opaquePointer reports whether the declared type is a pointer carrying no
// pointee type information.
func opaquePointer(p *Params) bool {
	t := declaredPointer(p)
	return t != nil && t.Elem == debuginfo.NoType
}

// memberName resolves a member's interned name, "" when the hash is not in
// the cache.
func memberName(p *Params, m debuginfo.Member) string {
	if p.Strings == nil {
		return ""
	}
	s, _ := p.Strings.Lookup(m.NameHash)
	return s
}

// findMember locates a struct member by name-cache equality.
func findMember(p *Params, st *debuginfo.DataType, name string) (debuginfo.Member, bool) {
	if st == nil || st.Form != debuginfo.FormStruct {
		return debuginfo.Member{}, false
	}
	for _, m := range st.Members {
		if memberName(p, m) == name {
			return m, true
		}
	}
	return debuginfo.Member{}, false
}

// isSliceShape reports whether the base type is a struct with exactly the
// two named fields, in order: a pointer-like field and a length field.
func isSliceShape(p *Params, ptrName, lenName string) bool {
	st := p.Base
	if st == nil || st.Form != debuginfo.FormStruct || len(st.Members) != 2 {
		return false
	}
	return memberName(p, st.Members[0]) == ptrName && memberName(p, st.Members[1]) == lenName
}

// memberWidth is the byte width used to decode a member as an unsigned
// integer: its typedef-resolved size, clamped to 8 and defaulting to a full
// word when the size is unknown.
func memberWidth(p *Params, m debuginfo.Member) uint64 {
	t := p.Unit.Resolve(m.Type)
	if t == nil || t.Size == 0 || t.Size > 8 {
		return 8
	}
	return t.Size
}

// readUint decodes up to 8 little-endian bytes.
func readUint(b []byte) uint64 {
	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

// readMember locates a struct member by name and decodes it as a fixed-width
// unsigned integer from the already-materialized value bytes. No remote
// read: the value bytes were captured by the caller before rendering began.
func readMember(p *Params, st *debuginfo.DataType, name string) (uint64, error) {
	m, ok := findMember(p, st, name)
	if !ok {
		return 0, fmt.Errorf("%w: struct has no member %q", ErrReadData, name)
	}
	w := memberWidth(p, m)
	if m.Offset+w > uint64(len(p.Raw)) {
		return 0, fmt.Errorf("%w: member %q at offset %d outside %d value bytes",
			ErrReadData, name, m.Offset, len(p.Raw))
	}
	return readUint(p.Raw[m.Offset : m.Offset+w]), nil
}

// rawPointer decodes the leading pointer word of the value bytes. For plain
// pointers that is the pointer itself; for {pointer, length} structs the
// pointer field sits at offset 0.
func rawPointer(p *Params) (uint64, error) {
	if len(p.Raw) == 0 {
		return 0, fmt.Errorf("%w: no value bytes for pointer", ErrReadData)
	}
	w := len(p.Raw)
	if w > 8 {
		w = 8
	}
	return readUint(p.Raw[:w]), nil
}

// renderSlice2 renders any two-field {pointer, length} structure. It issues
// exactly one bulk remote read for the clamped preview window and slices the
// buffer into per-element views.
func renderSlice2(p *Params, ptrName, lenName string) (*SlicePreview, error) {
	st := p.Base
	addr, err := readMember(p, st, ptrName)
	if err != nil {
		return nil, err
	}
	count, err := readMember(p, st, lenName)
	if err != nil {
		return nil, err
	}

	pm, _ := findMember(p, st, ptrName)
	pt := p.Unit.Resolve(pm.Type)
	if pt == nil || pt.Form != debuginfo.FormPointer {
		return nil, fmt.Errorf("%w: slice field %q does not resolve to a pointer", ErrInvalidType, ptrName)
	}

	res := &SlicePreview{Addr: addr, Len: count}
	if pt.Elem == debuginfo.NoType {
		// Opaque element pointer: report address and count only.
		return res, nil
	}
	elem := p.Unit.ResolveConcrete(pt.Elem)
	if elem == nil || elem.Size == 0 {
		return res, nil
	}
	res.Elem = elem

	// The reported count comes from untrusted target memory; only the
	// clamped window is ever read.
	n := count
	if max := p.limits().MaxSliceItems; n > max {
		n = max
	}
	if n == 0 {
		res.Items = [][]byte{}
		return res, nil
	}

	buf := p.Arena.Alloc(int(n * elem.Size))
	if err := p.Mem.PeekData(p.Pid, p.LoadBias, addr, buf); err != nil {
		return nil, fmt.Errorf("%w: slice data at %#x: %v", ErrReadData, addr, err)
	}
	items := make([][]byte, n)
	for i := uint64(0); i < n; i++ {
		items[i] = buf[i*elem.Size : (i+1)*elem.Size]
	}
	res.Items = items
	return res, nil
}

// scanCString reads target memory from addr until a null byte, the scan cap,
// the known exact length, or the user display hint. known is the exact
// length when the debug info encodes one, 0 otherwise.
//
// Reads are chunked to keep the syscall count down; when a chunk fails it is
// retried byte-wise so a string ending just before an unmapped page still
// renders, exactly as a byte-at-a-time scan would.
func scanCString(p *Params, addr uint64, known uint64) (*StringPreview, error) {
	l := p.limits()
	limit := l.MaxStringScan
	exact := false
	if known > 0 && known <= limit {
		limit = known
		exact = true
	}
	if p.MaxDisplay > 0 && p.MaxDisplay < limit {
		limit = p.MaxDisplay
		exact = false
	}

	buf := p.Arena.Alloc(int(limit) + len(ellipsis))
	read := 0
	for read < int(limit) {
		n := l.ScanChunk
		if n > int(limit)-read {
			n = int(limit) - read
		}
		chunk := buf[read : read+n]
		if err := p.Mem.PeekData(p.Pid, p.LoadBias, addr+uint64(read), chunk); err != nil {
			if err := scanBytewise(p, addr, chunk, read); err != nil {
				return nil, err
			}
		}
		if i := bytes.IndexByte(chunk, 0); i >= 0 {
			end := read + i
			return &StringPreview{Addr: addr, Preview: buf[:end], Len: uint64(end), LenKnown: true}, nil
		}
		read += n
	}

	if exact {
		return &StringPreview{Addr: addr, Preview: buf[:limit], Len: limit, LenKnown: true}, nil
	}
	copy(buf[limit:], ellipsis)
	return &StringPreview{Addr: addr, Preview: buf[:int(limit)+len(ellipsis)], LenKnown: false}, nil
}

// scanBytewise refills chunk one byte at a time after a bulk read failed. A
// null byte cuts the refill short; the caller's IndexByte pass finds it. A
// failed single-byte read aborts the whole scan.
func scanBytewise(p *Params, addr uint64, chunk []byte, read int) error {
	for j := range chunk {
		one := chunk[j : j+1]
		at := addr + uint64(read+j)
		if err := p.Mem.PeekData(p.Pid, p.LoadBias, at, one); err != nil {
			return fmt.Errorf("%w: string data at %#x: %v", ErrReadData, at, err)
		}
		if one[0] == 0 {
			return nil
		}
	}
	return nil
}
