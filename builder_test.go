// FILE: lixenwraith/params/builder_test.go
package params

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoaderBuilder(t *testing.T) {
	s := NewSchema().Field("customerEmail", String()).Field("age", Int(Default(27))).MustBuild()
	fetcher := StaticFetcher{
		P("/svc/customerEmail", "a@b.c"),
		P("/svc/customer-email", "kebab@b.c"),
		P("/elsewhere/customerEmail", "nope"),
	}

	t.Run("RequiresFetcherAndSchema", func(t *testing.T) {
		_, err := NewLoader().WithSchema(s).Build()
		assert.ErrorIs(t, err, ErrNoFetcher)

		_, err = NewLoader().WithFetcher(fetcher).Build()
		assert.ErrorIs(t, err, ErrNoSchema)

		assert.Panics(t, func() { NewLoader().MustBuild() })
	})

	t.Run("DefaultPrefixIsRoot", func(t *testing.T) {
		loader := NewLoader().WithFetcher(fetcher).WithSchema(s).MustBuild()
		assert.Equal(t, "/", loader.Store().Prefix())
	})

	t.Run("Load", func(t *testing.T) {
		loader := NewLoader().WithFetcher(fetcher).WithSchema(s).WithPrefix("/svc").MustBuild()
		result, err := loader.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Values{"customerEmail": "a@b.c", "age": 27}, result.Values())
	})

	t.Run("NamingOverride", func(t *testing.T) {
		loader := NewLoader().WithFetcher(fetcher).WithSchema(s).WithPrefix("/svc").WithNaming(Kebab).MustBuild()
		result, err := loader.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "kebab@b.c", result.Values()["customerEmail"])

		// The schema passed in is not modified
		assert.Nil(t, s.Naming())
	})

	t.Run("WithStore", func(t *testing.T) {
		store := Store("/svc", WithNaming(Kebab)).Param("customerEmail", String()).MustBuild()
		loader := NewLoader().WithFetcher(fetcher).WithStore(store).WithPrefix("/ignored").MustBuild()
		assert.Same(t, store, loader.Store())

		var target struct{ CustomerEmail string }
		require.NoError(t, loader.LoadInto(context.Background(), &target))
		assert.Equal(t, "kebab@b.c", target.CustomerEmail)
	})

	t.Run("FetchError", func(t *testing.T) {
		boom := errors.New("boom")
		core, logs := observer.New(zapcore.ErrorLevel)
		loader := NewLoader().
			WithFetcher(FetcherFunc(func(context.Context, string) ([]Parameter, error) { return nil, boom })).
			WithSchema(s).
			WithLogger(zap.New(core)).
			MustBuild()

		result, err := loader.Load(context.Background())
		assert.ErrorIs(t, err, boom)
		assert.False(t, IsMissingFields(err))
		assert.False(t, result.IsSuccess())
		assert.False(t, result.IsMissingFields())
		assert.ErrorIs(t, result.Err(), ErrNoResult)

		var target struct{ CustomerEmail string }
		assert.ErrorIs(t, result.Decode(&target), ErrNoResult)
		assert.Equal(t, 1, logs.FilterMessage("parameter fetch failed").Len())
	})

	t.Run("MissingFieldsLogged", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		loader := NewLoader().WithFetcher(StaticFetcher{}).WithSchema(s).WithPrefix("/svc").WithLogger(zap.New(core)).MustBuild()

		result, err := loader.Load(context.Background())
		require.NoError(t, err)
		assert.True(t, result.IsMissingFields())

		entries := logs.FilterMessage("required parameters missing").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "/svc/", entries[0].ContextMap()["prefix"])

		var target struct{ CustomerEmail string }
		err = loader.LoadInto(context.Background(), &target)
		assert.True(t, IsMissingFields(err))
	})
}

func TestLoadType(t *testing.T) {
	type Service struct {
		Name    string `param:"name"`
		Workers int    `param:"workers"`
	}

	r := NewRegistry()
	MustRegister[Service](r, Store("/svc").Param("name", String()).Param("workers", Int(Default(4))).MustBuild())

	t.Run("Registered", func(t *testing.T) {
		svc, err := LoadType[Service](context.Background(), r, StaticFetcher{P("/svc/name", "api")})
		require.NoError(t, err)
		assert.Equal(t, Service{Name: "api", Workers: 4}, svc)
	})

	t.Run("BuilderOptions", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		_, err := LoadType[Service](context.Background(), r, StaticFetcher{P("/svc/name", "api")}, func(b *LoaderBuilder) {
			b.WithLogger(zap.New(core))
		})
		require.NoError(t, err)
		assert.Equal(t, 1, logs.FilterMessage("parameters loaded").Len())
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := LoadType[Service](context.Background(), r, StaticFetcher{})
		var mf *MissingFields
		require.ErrorAs(t, err, &mf)
		assert.Equal(t, []string{"/svc/name"}, mf.Keys)
	})

	t.Run("NotRegistered", func(t *testing.T) {
		_, err := LoadType[struct{ X int }](context.Background(), r, StaticFetcher{})
		assert.ErrorIs(t, err, ErrNotRegistered)
	})
}
