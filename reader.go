// FILE: lixenwraith/params/reader.go
package params

// ReaderFunc reads a parameter list against a fixed schema and prefix.
type ReaderFunc func(params []Parameter) Result

// Read resolves schema against params under prefix.
// Every field is looked up once; parameters not named by the schema are
// ignored. The read fails only when required fields are absent, in which
// case all of them are reported together.
func Read(schema *Schema, prefix string, params []Parameter) Result {
	r := reader{
		set: indexParameters(params),
	}
	values := Values{}
	if schema != nil {
		r.readLevel(values, normalizePrefix(prefix), schema, nil)
	}

	if len(r.missing) > 0 {
		return Result{missing: &MissingFields{Fields: r.missing, Keys: r.missingKeys}}
	}
	return Result{values: values}
}

// NewReader binds schema and prefix into a ReaderFunc.
func NewReader(schema *Schema, prefix string) ReaderFunc {
	return func(params []Parameter) Result {
		return Read(schema, prefix, params)
	}
}

// reader holds the per-call state of one Read.
type reader struct {
	set         map[string]*Parameter
	missing     []string
	missingKeys []string
}

// readLevel populates target from one schema level, depth first in
// declaration order.
func (r *reader) readLevel(target Values, prefix string, schema *Schema, inherited Naming) {
	naming := schema.effectiveNaming(inherited)

	for _, e := range schema.entries {
		switch e.kind {
		case entryNested:
			child := Values{}
			target[e.id] = child
			r.readLevel(child, prefix+e.id+Separator, e.nested, naming)

		case entryField:
			key := prefix + naming.ToKey(e.id)
			value, ok := e.field.resolve(r.set[key])
			if !ok {
				r.missing = append(r.missing, e.id)
				r.missingKeys = append(r.missingKeys, key)
				continue
			}
			target[e.id] = value

		case entryLiteral:
			target[e.id] = e.literal
		}
	}
}
