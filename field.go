// FILE: lixenwraith/params/field.go
package params

// Field describes how one schema entry is resolved from a parameter value.
// A Field is immutable once constructed and may be shared between schemas.
type Field struct {
	kind       string
	coerce     Coercer
	optional   bool
	def        any
	hasDefault bool
}

// FieldOption configures a Field at construction time.
type FieldOption func(*Field)

// Optional marks the field as not required. An absent optional field
// without a default resolves to an explicit nil.
func Optional() FieldOption {
	return func(f *Field) {
		f.optional = true
	}
}

// Default sets the value used when the parameter is absent.
// The value is stored as given; it is not passed through the coercer.
func Default(value any) FieldOption {
	return func(f *Field) {
		f.def = value
		f.hasDefault = true
	}
}

func newField(kind string, coerce Coercer, opts []FieldOption) *Field {
	f := &Field{kind: kind, coerce: coerce}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// String declares a field whose value is the raw parameter text.
func String(opts ...FieldOption) *Field {
	return newField("string", coerceString, opts)
}

// Int declares a field coerced with ParseInt.
func Int(opts ...FieldOption) *Field {
	return newField("int", coerceInt, opts)
}

// Bool declares a field coerced with ParseBool.
func Bool(opts ...FieldOption) *Field {
	return newField("bool", coerceBool, opts)
}

// Custom declares a field with a caller supplied coercer.
// A nil coercer behaves like String.
func Custom(coerce Coercer, opts ...FieldOption) *Field {
	if coerce == nil {
		coerce = coerceString
	}
	return newField("custom", coerce, opts)
}

// MaybeString is an optional String field.
func MaybeString(opts ...FieldOption) *Field {
	return String(append([]FieldOption{Optional()}, opts...)...)
}

// MaybeInt is an optional Int field.
func MaybeInt(opts ...FieldOption) *Field {
	return Int(append([]FieldOption{Optional()}, opts...)...)
}

// MaybeBool is an optional Bool field.
func MaybeBool(opts ...FieldOption) *Field {
	return Bool(append([]FieldOption{Optional()}, opts...)...)
}

// Kind reports the declared coercion kind: "string", "int", "bool" or "custom".
func (f *Field) Kind() string { return f.kind }

// IsOptional reports whether the field was declared optional.
func (f *Field) IsOptional() bool { return f.optional }

// DefaultValue returns the default and whether one was set.
func (f *Field) DefaultValue() (any, bool) { return f.def, f.hasDefault }

// Required reports whether an absent parameter makes the read fail.
func (f *Field) Required() bool { return !f.optional && !f.hasDefault }

// resolve yields the value for this field. ok is false only when the field
// is required and the parameter is absent.
func (f *Field) resolve(p *Parameter) (value any, ok bool) {
	switch {
	case p != nil:
		return f.coerce(p.Value), true
	case f.hasDefault:
		return f.def, true
	case f.optional:
		return nil, true
	default:
		return nil, false
	}
}
