// FILE: lixenwraith/params/binding_test.go
package params

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentConfig struct {
	CustomerEmail string `param:"customerEmail"`
	Retries       int    `param:"retries"`
	Stripe        struct {
		BlockListID string `param:"blockListId"`
	} `param:"stripe"`
}

type auditConfig struct {
	Enabled bool `param:"enabled"`
}

func paymentStore(t *testing.T) *BoundStore {
	t.Helper()
	store, err := Store("/payments", WithNaming(Kebab)).
		Param("customerEmail", String()).
		Param("retries", Int(Default(2))).
		Nested("stripe", NewSchema().Naming(Identity).Field("blockListId", String()).MustBuild()).
		Build()
	require.NoError(t, err)
	return store
}

func TestStoreBuilder(t *testing.T) {
	t.Run("EquivalentToPlainSchema", func(t *testing.T) {
		store := paymentStore(t)
		plain := NewSchema().
			Naming(Kebab).
			Field("customerEmail", String()).
			Field("retries", Int(Default(2))).
			Nested("stripe", NewSchema().Naming(Identity).Field("blockListId", String()).MustBuild()).
			MustBuild()

		params := []Parameter{
			P("/payments/customer-email", "pay@example.com"),
			P("/payments/stripe/blockListId", "foo"),
		}
		assert.Equal(t, Read(plain, "/payments/", params), store.Read(params))
		assert.Equal(t, store.Read(params), store.Reader()(params))
		assert.Equal(t, plain.Keys("/payments"), store.Keys())
	})

	t.Run("PrefixNormalized", func(t *testing.T) {
		assert.Equal(t, "/payments/", paymentStore(t).Prefix())
		assert.Equal(t, "/", Store("").MustBuild().Prefix())
		assert.Equal(t, "/", Bind("", NewSchema().MustBuild()).Prefix())
		assert.Equal(t, "/a/", Bind("/a/", NewSchema().MustBuild()).Prefix())
	})

	t.Run("NamingApplied", func(t *testing.T) {
		assert.Equal(t, Kebab, paymentStore(t).Schema().Naming())
	})

	t.Run("Literal", func(t *testing.T) {
		store := Store("/x").Literal("kind", "static").MustBuild()
		values, err := store.Read(nil).Unwrap()
		require.NoError(t, err)
		assert.Equal(t, "static", values["kind"])
	})

	t.Run("InvalidDeclaration", func(t *testing.T) {
		_, err := Store("/dup").Param("a", String()).Param("a", Int()).Build()
		assert.ErrorIs(t, err, ErrDuplicateField)
		assert.Contains(t, err.Error(), "/dup/")

		assert.Panics(t, func() {
			Store("/dup").Param("a", nil).MustBuild()
		})
	})
}

func TestRegistry(t *testing.T) {
	t.Run("RegisterAndLookup", func(t *testing.T) {
		r := NewRegistry()
		store := paymentStore(t)
		require.NoError(t, Register[paymentConfig](r, store))

		got, ok := Lookup[paymentConfig](r)
		require.True(t, ok)
		assert.Same(t, store, got)

		_, ok = Lookup[auditConfig](r)
		assert.False(t, ok)
	})

	t.Run("DuplicateRegistration", func(t *testing.T) {
		r := NewRegistry()
		MustRegister[paymentConfig](r, paymentStore(t))
		err := Register[paymentConfig](r, paymentStore(t))
		assert.ErrorIs(t, err, ErrAlreadyRegistered)
		assert.Panics(t, func() { MustRegister[paymentConfig](r, paymentStore(t)) })
	})

	t.Run("NilStore", func(t *testing.T) {
		assert.ErrorIs(t, Register[auditConfig](NewRegistry(), nil), ErrNilField)
	})

	t.Run("PointerTypeDistinct", func(t *testing.T) {
		r := NewRegistry()
		MustRegister[paymentConfig](r, paymentStore(t))
		_, ok := Lookup[*paymentConfig](r)
		assert.False(t, ok)
	})

	t.Run("ReaderFor", func(t *testing.T) {
		r := NewRegistry()
		MustRegister[paymentConfig](r, paymentStore(t))

		read, err := ReaderFor[paymentConfig](r)
		require.NoError(t, err)

		var cfg paymentConfig
		err = read([]Parameter{
			P("/payments/customer-email", "pay@example.com"),
			P("/payments/stripe/blockListId", "foo"),
		}).Decode(&cfg)
		require.NoError(t, err)
		assert.Equal(t, "pay@example.com", cfg.CustomerEmail)
		assert.Equal(t, 2, cfg.Retries)
		assert.Equal(t, "foo", cfg.Stripe.BlockListID)

		_, err = ReaderFor[auditConfig](r)
		assert.ErrorIs(t, err, ErrNotRegistered)
	})

	t.Run("Prefixes", func(t *testing.T) {
		r := NewRegistry()
		MustRegister[paymentConfig](r, paymentStore(t))
		MustRegister[auditConfig](r, Store("/audit").Param("enabled", Bool()).MustBuild())
		MustRegister[struct{}](r, Store("/audit").MustBuild())
		assert.Equal(t, []string{"/audit/", "/payments/"}, r.Prefixes())
	})

	t.Run("Concurrent", func(t *testing.T) {
		r := NewRegistry()
		store := paymentStore(t)

		var wg sync.WaitGroup
		errs := make(chan error, 10)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- Register[paymentConfig](r, store)
				Lookup[paymentConfig](r)
			}()
		}
		wg.Wait()
		close(errs)

		succeeded := 0
		for err := range errs {
			if err == nil {
				succeeded++
			}
		}
		assert.Equal(t, 1, succeeded)
	})
}
