// FILE: lixenwraith/params/schemafile_test.go
package params

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSchema(t *testing.T) {
	t.Run("TOML", func(t *testing.T) {
		data := `
naming = "kebab"

[fields]
customerEmail = "string"

[fields.sessionTimeToLive]
type = "int"
default = 27

[fields.debug]
type = "bool"
optional = true

[nested.stripe]
naming = "identity"

[nested.stripe.fields]
blockListId = "string"

[literals]
source = "ssm"
`
		s, err := ParseSchema([]byte(data), FormatTOML)
		require.NoError(t, err)
		assert.Equal(t, Kebab, s.Naming())
		assert.Equal(t, []string{"customerEmail", "debug", "sessionTimeToLive", "stripe", "source"}, s.Identifiers())
		assert.Equal(t, []string{
			"/app/customer-email",
			"/app/debug",
			"/app/session-time-to-live",
			"/app/stripe/blockListId",
		}, s.Keys("/app"))

		values, err := Read(s, "/app", []Parameter{
			P("/app/customer-email", "a@b.c"),
			P("/app/stripe/blockListId", "foo"),
		}).Unwrap()
		require.NoError(t, err)
		assert.Equal(t, Values{
			"customerEmail":     "a@b.c",
			"debug":             nil,
			"sessionTimeToLive": int64(27),
			"stripe":            Values{"blockListId": "foo"},
			"source":            "ssm",
		}, values)
	})

	t.Run("YAML", func(t *testing.T) {
		data := `
naming: snake
fields:
  customerEmail: string
  retries:
    type: integer
    default: 3
`
		s, err := ParseSchema([]byte(data), FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, []string{"/customer_email", "/retries"}, s.Keys("/"))

		values, err := Read(s, "/", []Parameter{P("/customer_email", "x")}).Unwrap()
		require.NoError(t, err)
		assert.Equal(t, 3, values["retries"])
	})

	t.Run("JSON", func(t *testing.T) {
		data := `{"fields": {"enabled": {"type": "boolean"}, "name": ""}}`
		s, err := ParseSchema([]byte(data), FormatJSON)
		require.NoError(t, err)

		infos := Describe(s, "/")
		require.Len(t, infos, 2)
		assert.Equal(t, "bool", infos[0].Kind)
		assert.Equal(t, "string", infos[1].Kind)
	})

	t.Run("Errors", func(t *testing.T) {
		_, err := ParseSchema([]byte(`{"fields": {"a": "float"}}`), FormatJSON)
		assert.ErrorIs(t, err, ErrUnknownType)
		assert.Contains(t, err.Error(), `field "a"`)

		_, err = ParseSchema([]byte(`{"naming": "pascal"}`), FormatJSON)
		assert.ErrorIs(t, err, ErrUnknownNaming)

		_, err = ParseSchema([]byte(`{"nested": {"sub": {"fields": {"a": "uuid"}}}}`), FormatJSON)
		assert.ErrorIs(t, err, ErrUnknownType)
		assert.Contains(t, err.Error(), `nested "sub"`)

		_, err = ParseSchema([]byte(`{"naming": "kebab", "fields": {"aB": "string", "a-b": "string"}}`), FormatJSON)
		assert.ErrorIs(t, err, ErrKeyCollision)

		_, err = ParseSchema([]byte(`{"fields": 3}`), FormatJSON)
		assert.Error(t, err)

		_, err = ParseSchema([]byte(`x`), Format("ini"))
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})
}

func TestLoadSchemaFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fields:\n  name: string\n"), 0644))
	s, err := LoadSchemaFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, s.Identifiers())

	noExt := filepath.Join(dir, "schema")
	require.NoError(t, os.WriteFile(noExt, []byte(`{"fields": {"port": "int"}}`), 0644))
	s, err = LoadSchemaFile(noExt)
	require.NoError(t, err)
	assert.Equal(t, []string{"/port"}, s.Keys("/"))

	_, err = LoadSchemaFile(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read schema file")
}
