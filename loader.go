// FILE: lixenwraith/params/loader.go
package params

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format names a parameter file encoding.
type Format string

const (
	FormatAuto Format = ""
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// listKeys are the top-level keys holding a parameter list rather than a
// nested table of values.
var listKeys = map[string]bool{"parameter": true, "parameters": true}

// FileFetcher reads parameters from a TOML, YAML or JSON file. The file is
// read on every Fetch so edits are picked up by a watcher.
//
// Two layouts are accepted and may be mixed. A list of parameter records:
//
//	[[parameter]]
//	name = "/payments/stripe/blockListId"
//	value = "foo"
//
// or nested tables flattened into store keys:
//
//	[payments.stripe]
//	blockListId = "foo"
type FileFetcher struct {
	Path   string
	Format Format
}

// NewFileFetcher creates a fetcher with format detection.
func NewFileFetcher(path string) *FileFetcher {
	return &FileFetcher{Path: path}
}

// Fetch reads the file and returns the parameters under prefix.
func (f *FileFetcher) Fetch(ctx context.Context, prefix string) ([]Parameter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameter file '%s': %w", f.Path, err)
	}

	params, err := ParseParameters(data, f.resolveFormat(data))
	if err != nil {
		return nil, fmt.Errorf("parameter file '%s': %w", f.Path, err)
	}
	return FilterPrefix(params, prefix), nil
}

func (f *FileFetcher) resolveFormat(data []byte) Format {
	if f.Format != FormatAuto {
		return f.Format
	}
	if format := detectFileFormat(f.Path); format != FormatAuto {
		return format
	}
	return detectFormatFromContent(data)
}

// ParseParameters decodes a parameter document. List entries come first,
// followed by flattened table values in key order.
func ParseParameters(data []byte, format Format) ([]Parameter, error) {
	doc := make(map[string]any)
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number text
		if err := decoder.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, ErrUnknownFormat
	}

	var params []Parameter
	tables := make(map[string]any)
	for key, value := range doc {
		if !listKeys[strings.ToLower(key)] {
			tables[key] = value
			continue
		}
		list, err := decodeParameterList(value)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		params = append(params, list...)
	}

	flat := flattenMap(tables, "")
	names := make([]string, 0, len(flat))
	for name := range flat {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		params = append(params, Parameter{Name: name, Value: flat[name], Type: "String"})
	}
	return params, nil
}

// decodeParameterList converts a list of records into Parameters. Record
// keys match loosely so SSM responses (Name, Value) load as-is.
func decodeParameterList(value any) ([]Parameter, error) {
	items, ok := value.([]any)
	if !ok {
		// TOML arrays of tables decode as []map[string]any
		if tables, isTables := value.([]map[string]any); isTables {
			items = make([]any, len(tables))
			for i, t := range tables {
				items[i] = t
			}
		} else {
			return nil, fmt.Errorf("parameter list must be an array, got %T", value)
		}
	}

	params := make([]Parameter, 0, len(items))
	for i, item := range items {
		var p Parameter
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &p,
			TagName:          "json",
			WeaklyTypedInput: true,
			MatchName:        matchRecordKey,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				stringValueHookFunc(),
				mapstructure.StringToTimeHookFunc(time.RFC3339),
			),
		})
		if err != nil {
			return nil, fmt.Errorf("decoder creation failed: %w", err)
		}
		if err := decoder.Decode(item); err != nil {
			return nil, fmt.Errorf("parameter %d: %w", i, err)
		}
		if p.Name == "" {
			return nil, fmt.Errorf("parameter %d: name is empty", i)
		}
		params = append(params, p)
	}
	return params, nil
}

// matchRecordKey matches record keys ignoring case and underscores, so
// "LastModified" and "last_modified" are the same field.
func matchRecordKey(mapKey, fieldName string) bool {
	strip := strings.NewReplacer("_", "", "-", "")
	return strings.EqualFold(strip.Replace(mapKey), strip.Replace(fieldName))
}

// stringValueHookFunc renders scalar values into string fields with the
// same text flattened tables produce.
func stringValueHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t.Kind() != reflect.String || data == nil {
			return data, nil
		}
		switch data.(type) {
		case string, map[string]any, []any:
			return data, nil
		}
		return stringifyValue(data), nil
	}
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return FormatTOML
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// detectFormatFromContent attempts to detect format by parsing
func detectFormatFromContent(data []byte) Format {
	// Try JSON first (strict format)
	var jsonTest map[string]any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return FormatJSON
	}

	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return FormatTOML
	}

	var yamlTest map[string]any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return FormatYAML
	}

	return FormatAuto
}

// EnvTransformFunc converts a store key to an environment variable name.
type EnvTransformFunc func(key string) string

// EnvOptions configures EnvFetcher.
type EnvOptions struct {
	// Prefix is prepended to variable names
	// Example: "MYAPP_" maps "/payments/stripe/blockListId" to "MYAPP_PAYMENTS_STRIPE_BLOCKLISTID"
	Prefix string

	// Transform customizes key to variable mapping; nil uses the default
	Transform EnvTransformFunc

	// Keys lists the store keys to look up, usually Schema.Keys(prefix)
	Keys []string

	// Lookup replaces os.LookupEnv, mainly for tests
	Lookup func(string) (string, bool)
}

// EnvFetcher resolves a known set of store keys from environment variables.
type EnvFetcher struct {
	opts EnvOptions
}

// NewEnvFetcher creates an environment fetcher for opts.Keys.
func NewEnvFetcher(opts EnvOptions) *EnvFetcher {
	if opts.Transform == nil {
		opts.Transform = defaultEnvTransform(opts.Prefix)
	}
	if opts.Lookup == nil {
		opts.Lookup = os.LookupEnv
	}
	return &EnvFetcher{opts: opts}
}

// Fetch returns a parameter for each key under prefix whose variable is set.
func (e *EnvFetcher) Fetch(ctx context.Context, prefix string) ([]Parameter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var params []Parameter
	for _, key := range e.opts.Keys {
		name := e.opts.Transform(key)
		if name == "" {
			continue
		}
		if value, exists := e.opts.Lookup(name); exists {
			params = append(params, Parameter{Name: key, Value: value, Type: "String"})
		}
	}
	return FilterPrefix(params, prefix), nil
}

// EnvName returns the variable name a key maps to.
func (e *EnvFetcher) EnvName(key string) string {
	return e.opts.Transform(key)
}

// defaultEnvTransform creates the default environment variable transformer
func defaultEnvTransform(prefix string) EnvTransformFunc {
	return func(key string) string {
		env := strings.Trim(key, Separator)
		env = strings.NewReplacer(Separator, "_", "-", "_", ".", "_").Replace(env)
		env = strings.ToUpper(env)
		if prefix != "" {
			env = prefix + env
		}
		return env
	}
}

// errFetchCanceled distinguishes context cancellation in watch loops.
func errFetchCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
