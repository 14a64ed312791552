package debuginfo

// TypeForm identifies the shape of a DataType node.
type TypeForm int

const (
	// FormPrimitive is a leaf type: integers, floats, chars, void-like types.
	FormPrimitive TypeForm = iota
	// FormPointer points at an optional pointee type.
	FormPointer
	// FormStruct is an ordered list of named members.
	FormStruct
	// FormTypedef aliases another type.
	FormTypedef
)

// String returns the string representation of the TypeForm
func (f TypeForm) String() string {
	switch f {
	case FormPrimitive:
		return "Primitive"
	case FormPointer:
		return "Pointer"
	case FormStruct:
		return "Struct"
	case FormTypedef:
		return "Typedef"
	default:
		return "Unknown"
	}
}

// TypeID indexes a DataType within its owning CompileUnit.
type TypeID int32

// NoType marks an absent type reference, e.g. the pointee of a raw pointer.
const NoType TypeID = -1

// Member is one named field of a struct type. Names are interned through the
// string cache; NameHash is the interned hash.
type Member struct {
	NameHash uint64
	Offset   uint64
	Type     TypeID
}

// DataType is one node in the debug-info type graph. Nodes are owned by their
// compile unit and immutable after program load; they reference each other by
// TypeID, never by copy.
type DataType struct {
	Form TypeForm
	// Size is the size of a value of this type in bytes.
	Size uint64
	// Elem is the pointee for FormPointer and the aliased type for
	// FormTypedef. NoType for everything else.
	Elem TypeID
	// Members is populated for FormStruct only, in declaration order.
	Members []Member
}

// Language tags a compile unit with its source language. It selects which
// value encoder applies to every variable in that unit.
type Language int

const (
	LangUnknown Language = iota
	LangC
	LangC3
	LangOdin
	LangZig
	LangRust
)

// String returns the string representation of the Language
func (l Language) String() string {
	switch l {
	case LangC:
		return "C"
	case LangC3:
		return "C3"
	case LangOdin:
		return "Odin"
	case LangZig:
		return "Zig"
	case LangRust:
		return "Rust"
	default:
		return "Unknown"
	}
}

// CompileUnit owns the full type array for one translation unit together with
// the source-language tag. Read-only once the loader has populated it.
type CompileUnit struct {
	Language Language
	Types    []DataType
}

// Type returns the node for id, or nil when id is NoType or out of range.
// The loader keeps all stored references in range; the bounds check guards
// against hand-built units in tests and corrupted input.
func (cu *CompileUnit) Type(id TypeID) *DataType {
	if cu == nil || id < 0 || int(id) >= len(cu.Types) {
		return nil
	}
	return &cu.Types[id]
}
