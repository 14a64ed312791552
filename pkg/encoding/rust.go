package encoding

// rustEncoding is a stub: Rust support is not implemented yet, so
// classification always answers no and callers fall through to the default
// rendering. TODO: recognize &str fat pointers once the loader emits member
// offsets for them.
type rustEncoding struct{}

// IsOpaquePointer implements Encoding.
func (rustEncoding) IsOpaquePointer(p *Params) bool {
	return opaquePointer(p)
}

// IsString implements Encoding.
func (rustEncoding) IsString(p *Params) (uint64, bool) {
	return 0, false
}

// IsSlice implements Encoding.
func (rustEncoding) IsSlice(p *Params) bool {
	return false
}

// RenderString implements Encoding.
func (rustEncoding) RenderString(p *Params, length uint64) (*StringPreview, error) {
	return nil, ErrNotSupported
}

// RenderSlice implements Encoding.
func (rustEncoding) RenderSlice(p *Params) (*SlicePreview, error) {
	return nil, ErrNotSupported
}
