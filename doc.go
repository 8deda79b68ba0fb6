// File: lixenwraith/params/doc.go

// Package params maps a flat list of key/value parameters, as returned by a
// hierarchical parameter store such as AWS SSM Parameter Store, into a typed
// and possibly nested configuration value.
//
// Features:
//   - Declarative schemas built from field descriptors, nested schemas and literals
//   - Lenient primitive coercion for strings, integers and booleans
//   - Optional fields and default values
//   - Naming conventions translating identifiers to store keys (identity, kebab-case, snake_case)
//   - Aggregated reporting of every missing required field in a single pass
//   - Typed decoding of results into structs via mapstructure
//   - Fetchers for SSM, TOML/YAML/JSON parameter files and environment variables
//   - Polling watcher for parameter changes
//
// Quick Start:
//
//	schema := params.NewSchema().
//	    Field("email", params.String()).
//	    Field("age", params.Int(params.Default(27))).
//	    Nested("stripe", params.NewSchema().
//	        Field("blockListId", params.String()).
//	        MustBuild()).
//	    MustBuild()
//
//	result := params.Read(schema, "/payments", parameters)
//	if result.IsMissingFields() {
//	    log.Fatalf("missing: %v", result.MissingFields().Fields)
//	}
//
//	email, _ := result.Values().String("email")
//
// Reading is pure: a Schema is immutable once built, and every call to Read
// allocates its own parameter index and result tree, so reads may run
// concurrently without coordination.
//
// Key Layout:
// A field identifier is appended to the prefix after translation by the
// schema's Naming. Nested schema identifiers are appended verbatim and
// followed by the path separator:
//
//	prefix "/payments", nested "stripe", field "blockListId"
//	    -> "/payments/stripe/blockListId"
package params
