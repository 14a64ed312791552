package encoding

import (
	"strconv"
	"strings"

	"github.com/willibrandon/memview/pkg/debuginfo"
)

// zigEncoding renders Zig values. Byte slices ([]u8) carry their length in
// the {ptr, len} struct; pointers to fixed-size u8 arrays encode the length
// in the type name itself.
type zigEncoding struct{}

// IsOpaquePointer implements Encoding. *anyopaque is Zig's untyped pointer.
func (zigEncoding) IsOpaquePointer(p *Params) bool {
	if declaredPointer(p) != nil && p.BaseName == "anyopaque" {
		return true
	}
	return opaquePointer(p)
}

func isByteSliceName(name string) bool {
	// Debug info emits both spellings for the same runtime shape.
	return name == "[]u8" || name == "[]const u8"
}

// parseArrayPtrLen extracts N from pointer-to-array type names such as
// "*[5]u8", "*const [5:0]u8". The sentinel in [N:0] is not counted.
func parseArrayPtrLen(name string) (uint64, bool) {
	s, ok := strings.CutPrefix(name, "*")
	if !ok {
		return 0, false
	}
	s = strings.TrimPrefix(s, "const ")
	s, ok = strings.CutPrefix(s, "[")
	if !ok {
		return 0, false
	}
	num, elem, ok := strings.Cut(s, "]")
	if !ok {
		return 0, false
	}
	if i := strings.IndexByte(num, ':'); i >= 0 {
		num = num[:i]
	}
	n, err := strconv.ParseUint(num, 10, 64)
	if err != nil {
		return 0, false
	}
	if elem != "u8" && elem != "const u8" {
		return 0, false
	}
	return n, true
}

// IsString implements Encoding.
func (zigEncoding) IsString(p *Params) (uint64, bool) {
	if isByteSliceName(p.BaseName) && p.Base != nil && p.Base.Form == debuginfo.FormStruct {
		n, err := readMember(p, p.Base, "len")
		if err != nil {
			return 0, false
		}
		return n, true
	}
	if n, ok := parseArrayPtrLen(p.TypeName); ok && declaredPointer(p) != nil {
		return n, ok
	}
	return 0, false
}

// IsSlice implements Encoding.
func (zigEncoding) IsSlice(p *Params) bool {
	return isSliceShape(p, "ptr", "len")
}

// RenderString implements Encoding. Slices and array pointers both start
// with a pointer word, so the shared byte scan applies with the known
// length as its bound and the same cap as C.
func (zigEncoding) RenderString(p *Params, length uint64) (*StringPreview, error) {
	addr, err := rawPointer(p)
	if err != nil {
		return nil, err
	}
	return scanCString(p, addr, length)
}

// RenderSlice implements Encoding.
func (zigEncoding) RenderSlice(p *Params) (*SlicePreview, error) {
	return renderSlice2(p, "ptr", "len")
}
