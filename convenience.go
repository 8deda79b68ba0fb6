// File: lixenwraith/params/convenience.go
package params

import (
	"context"
	"fmt"
)

// Quick fetches prefix from f, reads it against schema and decodes the
// result into target with a single call.
func Quick(ctx context.Context, schema *Schema, prefix string, f Fetcher, target any) error {
	loader, err := NewLoader().
		WithFetcher(f).
		WithSchema(schema).
		WithPrefix(prefix).
		Build()
	if err != nil {
		return err
	}
	return loader.LoadInto(ctx, target)
}

// MustQuick is like Quick but panics on error
func MustQuick(ctx context.Context, schema *Schema, prefix string, f Fetcher, target any) {
	if err := Quick(ctx, schema, prefix, f, target); err != nil {
		panic(fmt.Sprintf("parameter load failed: %v", err))
	}
}

// ReadInto reads params against schema and decodes into target.
func ReadInto(schema *Schema, prefix string, params []Parameter, target any) error {
	return Read(schema, prefix, params).Decode(target)
}

// FieldInfo describes one field as it appears in the store.
type FieldInfo struct {
	Key        string
	Identifier string
	Kind       string
	Optional   bool
	Default    any
	HasDefault bool
}

// Required reports whether the field must be present in the store.
func (fi FieldInfo) Required() bool { return !fi.Optional && !fi.HasDefault }

// Describe lists every field of schema under prefix in traversal order.
func Describe(schema *Schema, prefix string) []FieldInfo {
	var infos []FieldInfo
	schema.walkKeys(normalizePrefix(prefix), Identity, func(key, id string, f *Field) {
		def, hasDef := f.DefaultValue()
		infos = append(infos, FieldInfo{
			Key:        key,
			Identifier: id,
			Kind:       f.Kind(),
			Optional:   f.IsOptional(),
			Default:    def,
			HasDefault: hasDef,
		})
	})
	return infos
}

// Unused returns the parameters that no field of schema reads.
func Unused(schema *Schema, prefix string, params []Parameter) []Parameter {
	known := make(map[string]bool)
	for _, key := range schema.Keys(prefix) {
		known[key] = true
	}
	var unused []Parameter
	for _, p := range params {
		if !known[p.Name] {
			unused = append(unused, p)
		}
	}
	return unused
}
