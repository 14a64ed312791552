package encoding

// unknownEncoding is the catch-all for unrecognized source languages. It
// never classifies a value as a string or slice; its render operations
// return a typed error rather than being unreachable, so a caller that
// skips classification cannot trip undefined behavior.
type unknownEncoding struct{}

// IsOpaquePointer implements Encoding.
func (unknownEncoding) IsOpaquePointer(p *Params) bool {
	return opaquePointer(p)
}

// IsString implements Encoding.
func (unknownEncoding) IsString(p *Params) (uint64, bool) {
	return 0, false
}

// IsSlice implements Encoding.
func (unknownEncoding) IsSlice(p *Params) bool {
	return false
}

// RenderString implements Encoding.
func (unknownEncoding) RenderString(p *Params, length uint64) (*StringPreview, error) {
	return nil, ErrNotSupported
}

// RenderSlice implements Encoding.
func (unknownEncoding) RenderSlice(p *Params) (*SlicePreview, error) {
	return nil, ErrNotSupported
}
