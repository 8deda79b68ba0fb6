// FILE: lixenwraith/params/schemafile.go
package params

import (
	"bytes"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// schemaDecl is the file form of a Schema:
//
//	naming = "kebab"
//
//	[fields]
//	customerEmail = "string"
//
//	[fields.sessionTimeToLive]
//	type = "int"
//	default = 27
//
//	[nested.stripe.fields]
//	blockListId = "string"
type schemaDecl struct {
	Naming   string                `mapstructure:"naming"`
	Fields   map[string]fieldDecl  `mapstructure:"fields"`
	Nested   map[string]schemaDecl `mapstructure:"nested"`
	Literals map[string]any        `mapstructure:"literals"`
}

type fieldDecl struct {
	Type     string `mapstructure:"type"`
	Optional bool   `mapstructure:"optional"`
	Default  any    `mapstructure:"default"`
}

// LoadSchemaFile builds a Schema from a TOML, YAML or JSON declaration.
func LoadSchemaFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file '%s': %w", path, err)
	}
	format := detectFileFormat(path)
	if format == FormatAuto {
		format = detectFormatFromContent(data)
	}
	s, err := ParseSchema(data, format)
	if err != nil {
		return nil, fmt.Errorf("schema file '%s': %w", path, err)
	}
	return s, nil
}

// ParseSchema decodes a schema declaration. Map order is not preserved by
// the file formats, so entries are declared in identifier order.
func ParseSchema(data []byte, format Format) (*Schema, error) {
	raw := make(map[string]any)
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case FormatJSON:
		if err := json.NewDecoder(bytes.NewReader(data)).Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, ErrUnknownFormat
	}

	var decl schemaDecl
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &decl,
		DecodeHook: fieldShorthandHookFunc(),
	})
	if err != nil {
		return nil, fmt.Errorf("decoder creation failed: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid schema declaration: %w", err)
	}

	return decl.build()
}

// fieldShorthandHookFunc expands `id = "type"` into a full field declaration.
func fieldShorthandHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(fieldDecl{}) || f.Kind() != reflect.String {
			return data, nil
		}
		return map[string]any{"type": data}, nil
	}
}

func (d schemaDecl) build() (*Schema, error) {
	b := NewSchema()
	if d.Naming != "" {
		n, err := NamingByName(d.Naming)
		if err != nil {
			return nil, err
		}
		b.Naming(n)
	}

	for _, id := range sortedKeys(d.Fields) {
		f, err := d.Fields[id].field()
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", id, err)
		}
		b.Field(id, f)
	}
	for _, id := range sortedKeys(d.Nested) {
		nested, err := d.Nested[id].build()
		if err != nil {
			return nil, fmt.Errorf("nested %q: %w", id, err)
		}
		b.Nested(id, nested)
	}
	for _, id := range sortedKeys(d.Literals) {
		b.Literal(id, d.Literals[id])
	}

	return b.Build()
}

func (d fieldDecl) field() (*Field, error) {
	var opts []FieldOption
	if d.Optional {
		opts = append(opts, Optional())
	}
	if d.Default != nil {
		opts = append(opts, Default(d.Default))
	}

	switch strings.ToLower(d.Type) {
	case "", "string", "str":
		return String(opts...), nil
	case "int", "integer", "number":
		return Int(opts...), nil
	case "bool", "boolean":
		return Bool(opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, d.Type)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
