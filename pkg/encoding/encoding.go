package encoding

import (
	"errors"

	"github.com/willibrandon/memview/pkg/debuginfo"
	"github.com/willibrandon/memview/pkg/strcache"
	"github.com/willibrandon/memview/pkg/target"
)

var (
	// ErrReadData reports a failed remote memory read: address invalid,
	// process gone, permission denied.
	ErrReadData = errors.New("failed to read target memory")
	// ErrInvalidType reports a type graph that did not match the shape the
	// renderer expected, e.g. a slice pointer field of non-pointer type.
	ErrInvalidType = errors.New("unexpected type shape")
	// ErrNotSupported reports a render request for a language whose encoder
	// is not implemented. Classification for such languages always answers
	// no, so callers that classify first never see it.
	ErrNotSupported = errors.New("value rendering not supported for this language")
)

// Params carries everything one classify/render call needs. It is ephemeral:
// built by the caller per inspected variable (or per UI refresh batch) and
// discarded together with its arena.
type Params struct {
	// Arena is the scratch allocator for this call. Every byte buffer in a
	// render result is carved from it and lives exactly as long as it.
	Arena *Arena
	// Mem is the remote-memory adapter. Classification never touches it.
	Mem      target.Memory
	Pid      int
	LoadBias uint64
	// Unit owns the type graph and the source-language tag.
	Unit    *debuginfo.CompileUnit
	Strings *strcache.Cache
	// Type is the declared type descriptor of the inspected value and
	// TypeName its resolved display name.
	Type     *debuginfo.DataType
	TypeName string
	// Base is the pointer/typedef-unwrapped descriptor and BaseName its
	// display name: the pointee for pointers, the underlying type for
	// typedefs, Type itself otherwise.
	Base     *debuginfo.DataType
	BaseName string
	// Raw holds the value's initial bytes as read from registers, stack or
	// memory by the caller before this layer is invoked.
	Raw []byte
	// MaxDisplay optionally limits how many string bytes the user wants
	// shown. 0 means no limit beyond the scan cap.
	MaxDisplay uint64
	Limits     Limits
}

// StringPreview is the result of RenderString.
type StringPreview struct {
	// Addr is the remote address the string's bytes begin at.
	Addr uint64
	// Preview may be a strict prefix of the real string; a truncated
	// preview carries an ellipsis marker suffix.
	Preview []byte
	// Len is the full string length, valid only when LenKnown is set.
	// LenKnown is false when the string is null-terminated and the scan did
	// not reach the terminator within its cap.
	Len      uint64
	LenKnown bool
}

// SlicePreview is the result of RenderSlice.
type SlicePreview struct {
	// Addr is the remote address of the backing buffer.
	Addr uint64
	// Len is the total element count as reported by the target. It is
	// trusted as read; only the preview is clamped.
	Len uint64
	// Elem is the resolved element type, nil when the elements are of an
	// opaque pointer type. No per-item preview is produced then.
	Elem *debuginfo.DataType
	// Items holds up to Limits.MaxSliceItems per-element byte views into a
	// single arena buffer.
	Items [][]byte
}

// Encoding classifies and renders values for one source language. An
// encoder is selected once per compile unit and invoked per inspected value.
//
// IsOpaquePointer, IsString and IsSlice operate on statically known type
// shape and names only and never read target memory, so classification is
// safe even against a corrupted target. RenderString and RenderSlice read
// target memory and may fail.
type Encoding interface {
	// IsOpaquePointer reports whether the type is a pointer whose target
	// cannot be meaningfully previewed, e.g. an untyped raw pointer.
	IsOpaquePointer(p *Params) bool

	// IsString reports whether the value renders as a string. ok is false
	// for non-strings. length is 0 for a null-terminated string of unknown
	// length and positive when the debug info encodes an exact length.
	IsString(p *Params) (length uint64, ok bool)

	// IsSlice reports whether the type is the language's two-field
	// {pointer, length} structure.
	IsSlice(p *Params) bool

	// RenderString produces a bounded preview of a string value. length is
	// the value IsString returned.
	RenderString(p *Params, length uint64) (*StringPreview, error)

	// RenderSlice produces a bounded preview of a slice value.
	RenderSlice(p *Params) (*SlicePreview, error)
}

// For returns the encoder for a compile unit's source language. Exactly one
// encoder applies per unit; there is no per-type override.
func For(lang debuginfo.Language) Encoding {
	switch lang {
	case debuginfo.LangC:
		return cEncoding{}
	case debuginfo.LangC3:
		return c3Encoding{}
	case debuginfo.LangOdin:
		return odinEncoding{}
	case debuginfo.LangZig:
		return zigEncoding{}
	case debuginfo.LangRust:
		return rustEncoding{}
	default:
		return unknownEncoding{}
	}
}
