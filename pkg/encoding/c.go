package encoding

// cEncoding renders C values. C strings are bare pointers to char with no
// length information; C slices do not exist.
type cEncoding struct{}

func isCharName(name string) bool {
	switch name {
	case "char", "signed char", "unsigned char":
		return true
	}
	return false
}

// IsOpaquePointer implements Encoding. void pointers carry no pointee type.
func (cEncoding) IsOpaquePointer(p *Params) bool {
	return opaquePointer(p)
}

// IsString implements Encoding. A pointer to a char type is a
// null-terminated string of unknown length.
func (cEncoding) IsString(p *Params) (uint64, bool) {
	if declaredPointer(p) == nil {
		return 0, false
	}
	if p.Base == nil || p.Base.Size != 1 || !isCharName(p.BaseName) {
		return 0, false
	}
	return 0, true
}

// IsSlice implements Encoding. C has no slice representation.
func (cEncoding) IsSlice(p *Params) bool {
	return false
}

// RenderString implements Encoding. The pointer value sits in the initial
// value bytes; the string bytes are scanned from target memory up to the
// terminator or the scan cap.
func (cEncoding) RenderString(p *Params, length uint64) (*StringPreview, error) {
	addr, err := rawPointer(p)
	if err != nil {
		return nil, err
	}
	return scanCString(p, addr, length)
}

// RenderSlice implements Encoding.
func (cEncoding) RenderSlice(p *Params) (*SlicePreview, error) {
	return nil, ErrNotSupported
}
