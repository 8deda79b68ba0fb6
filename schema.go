// FILE: lixenwraith/params/schema.go
package params

import (
	"errors"
	"fmt"
	"strings"
)

// Separator joins key path segments in the parameter store.
const Separator = "/"

type entryKind int

const (
	entryField entryKind = iota
	entryNested
	entryLiteral
)

// entry is one ordered member of a Schema level.
type entry struct {
	id      string
	kind    entryKind
	field   *Field
	nested  *Schema
	literal any
}

// Schema is an immutable, ordered tree of field descriptors, nested schemas
// and literals. Build one with NewSchema.
type Schema struct {
	entries []entry
	naming  Naming // nil inherits the enclosing schema's convention
}

// SchemaBuilder collects schema entries in declaration order.
type SchemaBuilder struct {
	entries []entry
	naming  Naming
	errs    []error
}

// NewSchema creates an empty schema builder.
func NewSchema() *SchemaBuilder {
	return &SchemaBuilder{}
}

// Field registers a field descriptor under id.
func (b *SchemaBuilder) Field(id string, f *Field) *SchemaBuilder {
	if f == nil {
		b.errs = append(b.errs, fmt.Errorf("%w: field %q", ErrNilField, id))
		return b
	}
	b.entries = append(b.entries, entry{id: id, kind: entryField, field: f})
	return b
}

// Nested registers a sub-schema whose keys live under id.
func (b *SchemaBuilder) Nested(id string, s *Schema) *SchemaBuilder {
	if s == nil {
		b.errs = append(b.errs, fmt.Errorf("%w: nested schema %q", ErrNilField, id))
		return b
	}
	b.entries = append(b.entries, entry{id: id, kind: entryNested, nested: s})
	return b
}

// Literal registers a constant copied verbatim into every result.
func (b *SchemaBuilder) Literal(id string, value any) *SchemaBuilder {
	b.entries = append(b.entries, entry{id: id, kind: entryLiteral, literal: value})
	return b
}

// Naming sets the convention applied to this level's field identifiers.
func (b *SchemaBuilder) Naming(n Naming) *SchemaBuilder {
	b.naming = n
	return b
}

// Build validates identifiers and returns the immutable Schema.
func (b *SchemaBuilder) Build() (*Schema, error) {
	errs := append([]error(nil), b.errs...)

	naming := b.naming
	if naming == nil {
		naming = Identity
	}
	errs = append(errs, checkEntries(b.entries, naming)...)
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid schema: %w", errors.Join(errs...))
	}

	entries := make([]entry, len(b.entries))
	copy(entries, b.entries)
	return &Schema{entries: entries, naming: b.naming}, nil
}

// MustBuild is like Build but panics on error
func (b *SchemaBuilder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("schema build failed: %v", err))
	}
	return s
}

// checkEntries enforces unique identifiers and injective key segments.
// Nested schemas are checked under the naming they resolve to at read time.
func checkEntries(entries []entry, naming Naming) []error {
	var errs []error
	ids := make(map[string]bool, len(entries))
	segments := make(map[string]string, len(entries))

	for _, e := range entries {
		if e.id == "" {
			errs = append(errs, ErrEmptyIdentifier)
			continue
		}
		if ids[e.id] {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateField, e.id))
			continue
		}
		ids[e.id] = true

		var segment string
		switch e.kind {
		case entryField:
			segment = naming.ToKey(e.id)
		case entryNested:
			segment = e.id + Separator
			for _, err := range checkEntries(e.nested.entries, e.nested.effectiveNaming(naming)) {
				errs = append(errs, fmt.Errorf("nested %q: %w", e.id, err))
			}
		default:
			continue
		}
		if other, exists := segments[segment]; exists {
			errs = append(errs, fmt.Errorf("%w: %q and %q both map to %q", ErrKeyCollision, other, e.id, segment))
			continue
		}
		segments[segment] = e.id
	}
	return errs
}

// WithNaming returns a copy of the schema using n for its direct fields.
// Nested schemas without their own convention inherit n.
func (s *Schema) WithNaming(n Naming) (*Schema, error) {
	if s == nil {
		return nil, ErrNoSchema
	}
	if n == nil {
		n = Identity
	}
	if errs := checkEntries(s.entries, n); len(errs) > 0 {
		return nil, fmt.Errorf("invalid schema: %w", errors.Join(errs...))
	}
	return &Schema{entries: s.entries, naming: n}, nil
}

// Naming returns the convention set on this level, or nil when inherited.
func (s *Schema) Naming() Naming { return s.naming }

// Len returns the number of entries at this level.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Identifiers returns this level's identifiers in declaration order.
func (s *Schema) Identifiers() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, len(s.entries))
	for i, e := range s.entries {
		ids[i] = e.id
	}
	return ids
}

// Keys lists every fully qualified key the schema reads under prefix,
// in traversal order.
func (s *Schema) Keys(prefix string) []string {
	var keys []string
	s.walkKeys(normalizePrefix(prefix), Identity, func(key string, _ string, _ *Field) {
		keys = append(keys, key)
	})
	return keys
}

// walkKeys visits every field with its full key, local identifier and descriptor.
// A nil schema has no fields.
func (s *Schema) walkKeys(prefix string, inherited Naming, visit func(key, id string, f *Field)) {
	if s == nil {
		return
	}
	naming := s.effectiveNaming(inherited)
	for _, e := range s.entries {
		switch e.kind {
		case entryField:
			visit(prefix+naming.ToKey(e.id), e.id, e.field)
		case entryNested:
			e.nested.walkKeys(prefix+e.id+Separator, naming, visit)
		}
	}
}

func (s *Schema) effectiveNaming(inherited Naming) Naming {
	if s.naming != nil {
		return s.naming
	}
	if inherited != nil {
		return inherited
	}
	return Identity
}

// normalizePrefix ensures the prefix ends with the separator.
func normalizePrefix(prefix string) string {
	if !strings.HasSuffix(prefix, Separator) {
		return prefix + Separator
	}
	return prefix
}
