package debuginfo

// Underlying follows typedef links from t until it reaches a non-typedef
// form. Chains are bounded by the unit's type count so a corrupted cyclic
// graph terminates with nil instead of looping.
func (cu *CompileUnit) Underlying(t *DataType) *DataType {
	if cu == nil {
		return t
	}
	for hops := 0; t != nil && t.Form == FormTypedef; hops++ {
		if hops > len(cu.Types) {
			return nil
		}
		t = cu.Type(t.Elem)
	}
	return t
}

// Resolve follows typedef links from id until a non-typedef form.
func (cu *CompileUnit) Resolve(id TypeID) *DataType {
	return cu.Underlying(cu.Type(id))
}

// ResolveConcrete follows typedef and pointer links from id until it reaches
// a form that is neither, e.g. the element type behind a slice's data
// pointer. Returns nil when the chain dangles or cycles.
func (cu *CompileUnit) ResolveConcrete(id TypeID) *DataType {
	if cu == nil {
		return nil
	}
	t := cu.Type(id)
	for hops := 0; t != nil && (t.Form == FormTypedef || t.Form == FormPointer); hops++ {
		if hops > len(cu.Types) {
			return nil
		}
		t = cu.Type(t.Elem)
	}
	return t
}
