package encoding

// c3Encoding renders C3 values. C3 strings are the `char[]` slice struct
// {ptr, len}; slices share the same two-field shape.
type c3Encoding struct{}

// IsOpaquePointer implements Encoding.
func (c3Encoding) IsOpaquePointer(p *Params) bool {
	return opaquePointer(p)
}

// IsString implements Encoding. The exact length is read from the struct's
// len field, which lives in the initial value bytes.
func (c3Encoding) IsString(p *Params) (uint64, bool) {
	if p.BaseName != "char[]" || !isSliceShape(p, "ptr", "len") {
		return 0, false
	}
	n, err := readMember(p, p.Base, "len")
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsSlice implements Encoding.
func (c3Encoding) IsSlice(p *Params) bool {
	return isSliceShape(p, "ptr", "len")
}

// RenderString implements Encoding. The string is rendered through the
// generic slice renderer and its single-byte items are re-packed into one
// flat buffer.
func (c3Encoding) RenderString(p *Params, length uint64) (*StringPreview, error) {
	sl, err := renderSlice2(p, "ptr", "len")
	if err != nil {
		return nil, err
	}
	out := &StringPreview{Addr: sl.Addr}
	if len(sl.Items) == 0 {
		out.Preview = p.Arena.Alloc(0)
		out.LenKnown = sl.Len == 0
		return out, nil
	}

	n := len(sl.Items)
	cut := false
	if p.MaxDisplay > 0 && uint64(n) > p.MaxDisplay {
		n = int(p.MaxDisplay)
		cut = true
	}
	if cut || sl.Len > uint64(n) {
		buf := p.Arena.Alloc(n + len(ellipsis))
		for i := 0; i < n; i++ {
			buf[i] = sl.Items[i][0]
		}
		copy(buf[n:], ellipsis)
		out.Preview = buf
		return out, nil
	}

	buf := p.Arena.Alloc(n)
	for i := 0; i < n; i++ {
		buf[i] = sl.Items[i][0]
	}
	out.Preview = buf
	out.Len = uint64(n)
	out.LenKnown = true
	return out, nil
}

// RenderSlice implements Encoding.
func (c3Encoding) RenderSlice(p *Params) (*SlicePreview, error) {
	return renderSlice2(p, "ptr", "len")
}
