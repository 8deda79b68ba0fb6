// FILE: lixenwraith/params/binding.go
package params

import (
	"fmt"
)

// StoreOption configures a StoreBuilder.
type StoreOption func(*StoreBuilder)

// WithNaming sets the convention for the store's top-level fields.
func WithNaming(n Naming) StoreOption {
	return func(b *StoreBuilder) {
		b.naming = n
	}
}

// StoreBuilder declares a schema bound to a fixed key prefix, field by field.
type StoreBuilder struct {
	prefix string
	naming Naming
	schema *SchemaBuilder
}

// BoundStore is a finalized schema with its prefix and naming convention.
type BoundStore struct {
	prefix string
	schema *Schema
}

// Store starts a bound schema declaration rooted at prefix.
// An empty prefix reads from the store root.
func Store(prefix string, opts ...StoreOption) *StoreBuilder {
	if prefix == "" {
		prefix = Separator
	}
	b := &StoreBuilder{
		prefix: normalizePrefix(prefix),
		schema: NewSchema(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Param registers a field with its coercer, optional flag and default.
func (b *StoreBuilder) Param(id string, f *Field) *StoreBuilder {
	b.schema.Field(id, f)
	return b
}

// Nested registers a sub-schema under id.
func (b *StoreBuilder) Nested(id string, s *Schema) *StoreBuilder {
	b.schema.Nested(id, s)
	return b
}

// Literal registers a constant value.
func (b *StoreBuilder) Literal(id string, value any) *StoreBuilder {
	b.schema.Literal(id, value)
	return b
}

// Build finalizes the declaration.
func (b *StoreBuilder) Build() (*BoundStore, error) {
	b.schema.Naming(b.naming)
	s, err := b.schema.Build()
	if err != nil {
		return nil, fmt.Errorf("store %s: %w", b.prefix, err)
	}
	return &BoundStore{prefix: b.prefix, schema: s}, nil
}

// MustBuild is like Build but panics on error
func (b *StoreBuilder) MustBuild() *BoundStore {
	s, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("store build failed: %v", err))
	}
	return s
}

// Bind attaches an existing schema to prefix.
func Bind(prefix string, schema *Schema) *BoundStore {
	if prefix == "" {
		prefix = Separator
	}
	return &BoundStore{prefix: normalizePrefix(prefix), schema: schema}
}

// Prefix returns the normalized key prefix, always ending in Separator.
func (s *BoundStore) Prefix() string { return s.prefix }

// Schema returns the bound schema.
func (s *BoundStore) Schema() *Schema { return s.schema }

// Read is equivalent to Read(s.Schema(), s.Prefix(), params).
func (s *BoundStore) Read(params []Parameter) Result {
	return Read(s.schema, s.prefix, params)
}

// Reader returns the store as a ReaderFunc.
func (s *BoundStore) Reader() ReaderFunc {
	return s.Read
}

// Keys lists every key the store reads.
func (s *BoundStore) Keys() []string {
	return s.schema.Keys(s.prefix)
}
