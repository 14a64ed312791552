package encoding

import "github.com/willibrandon/memview/pkg/debuginfo"

// odinEncoding renders Odin values. `cstring` is a null-terminated pointer;
// `string` is a {data, len} struct with an exact length; slices share the
// data/len shape.
type odinEncoding struct{}

// IsOpaquePointer implements Encoding. `rawptr` is Odin's untyped pointer.
func (odinEncoding) IsOpaquePointer(p *Params) bool {
	if p.TypeName == "rawptr" && declaredPointer(p) != nil {
		return true
	}
	return opaquePointer(p)
}

// IsString implements Encoding.
func (odinEncoding) IsString(p *Params) (uint64, bool) {
	if p.TypeName == "cstring" && declaredPointer(p) != nil {
		return 0, true
	}
	if p.BaseName == "string" && p.Base != nil && p.Base.Form == debuginfo.FormStruct {
		n, err := readMember(p, p.Base, "len")
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// IsSlice implements Encoding.
func (odinEncoding) IsSlice(p *Params) bool {
	return isSliceShape(p, "data", "len")
}

// RenderString implements Encoding. Both string shapes begin with a pointer
// word (the cstring itself, or the data field at offset 0), so rendering
// delegates to the shared byte scan with the known length as its bound.
func (odinEncoding) RenderString(p *Params, length uint64) (*StringPreview, error) {
	addr, err := rawPointer(p)
	if err != nil {
		return nil, err
	}
	return scanCString(p, addr, length)
}

// RenderSlice implements Encoding.
func (odinEncoding) RenderSlice(p *Params) (*SlicePreview, error) {
	return renderSlice2(p, "data", "len")
}
