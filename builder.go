// File: lixenwraith/params/builder.go
package params

import (
	"context"
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// LoaderBuilder provides a fluent interface for building loaders
type LoaderBuilder struct {
	fetcher Fetcher
	schema  *Schema
	store   *BoundStore
	prefix  string
	naming  Naming
	logger  *zap.Logger
}

// Loader fetches a prefix and reads it against a bound schema.
type Loader struct {
	fetcher Fetcher
	store   *BoundStore
	logger  *zap.Logger
}

// NewLoader creates a new loader builder
func NewLoader() *LoaderBuilder {
	return &LoaderBuilder{prefix: Separator}
}

// WithFetcher sets the parameter source
func (b *LoaderBuilder) WithFetcher(f Fetcher) *LoaderBuilder {
	b.fetcher = f
	return b
}

// WithSchema sets the schema read under the prefix
func (b *LoaderBuilder) WithSchema(s *Schema) *LoaderBuilder {
	b.schema = s
	return b
}

// WithPrefix sets the key prefix
func (b *LoaderBuilder) WithPrefix(prefix string) *LoaderBuilder {
	b.prefix = prefix
	return b
}

// WithNaming overrides the schema's top-level naming convention
func (b *LoaderBuilder) WithNaming(n Naming) *LoaderBuilder {
	b.naming = n
	return b
}

// WithStore sets schema and prefix from a bound store, replacing
// WithSchema and WithPrefix
func (b *LoaderBuilder) WithStore(s *BoundStore) *LoaderBuilder {
	b.store = s
	return b
}

// WithLogger sets the logger for fetch and read diagnostics
func (b *LoaderBuilder) WithLogger(l *zap.Logger) *LoaderBuilder {
	b.logger = l
	return b
}

// Build creates the Loader with all specified options
func (b *LoaderBuilder) Build() (*Loader, error) {
	if b.fetcher == nil {
		return nil, ErrNoFetcher
	}

	store := b.store
	if store == nil {
		if b.schema == nil {
			return nil, ErrNoSchema
		}
		store = Bind(b.prefix, b.schema)
	}

	if b.naming != nil {
		s, err := store.schema.WithNaming(b.naming)
		if err != nil {
			return nil, err
		}
		store = Bind(store.prefix, s)
	}

	logger := b.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Loader{fetcher: b.fetcher, store: store, logger: logger}, nil
}

// MustBuild is like Build but panics on error
func (b *LoaderBuilder) MustBuild() *Loader {
	l, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("loader build failed: %v", err))
	}
	return l
}

// Store returns the bound schema and prefix the loader reads.
func (l *Loader) Store() *BoundStore { return l.store }

// Load fetches the prefix and reads it. The returned error reports fetch
// failures only; missing fields are carried by the Result. On a fetch
// failure the Result is the zero Result, whose Err is ErrNoResult.
func (l *Loader) Load(ctx context.Context) (Result, error) {
	params, err := l.fetcher.Fetch(ctx, l.store.prefix)
	if err != nil {
		l.logger.Error("parameter fetch failed", zap.String("prefix", l.store.prefix), zap.Error(err))
		return Result{}, fmt.Errorf("fetch %s: %w", l.store.prefix, err)
	}

	result := l.store.Read(params)
	if result.IsMissingFields() {
		l.logger.Warn("required parameters missing",
			zap.String("prefix", l.store.prefix),
			zap.Strings("fields", result.missing.Fields),
			zap.Strings("keys", result.missing.Keys))
	} else {
		l.logger.Debug("parameters loaded", zap.String("prefix", l.store.prefix), zap.Int("fetched", len(params)))
	}
	return result, nil
}

// LoadInto fetches, reads and decodes into target. A read with missing
// fields returns its *MissingFields.
func (l *Loader) LoadInto(ctx context.Context, target any) error {
	result, err := l.Load(ctx)
	if err != nil {
		return err
	}
	return result.Decode(target)
}

// LoadType loads the store registered for T from f and decodes it into a T.
func LoadType[T any](ctx context.Context, r *Registry, f Fetcher, opts ...func(*LoaderBuilder)) (T, error) {
	var target T

	store, ok := Lookup[T](r)
	if !ok {
		return target, fmt.Errorf("%w: %s", ErrNotRegistered, reflect.TypeOf((*T)(nil)).Elem())
	}

	b := NewLoader().WithFetcher(f).WithStore(store)
	for _, opt := range opts {
		opt(b)
	}
	loader, err := b.Build()
	if err != nil {
		return target, err
	}

	err = loader.LoadInto(ctx, &target)
	return target, err
}
