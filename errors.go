// FILE: lixenwraith/params/errors.go
package params

import "errors"

var (
	// ErrDuplicateField is returned when a schema level declares an identifier twice.
	ErrDuplicateField = errors.New("duplicate field identifier")
	// ErrKeyCollision is returned when two sibling identifiers resolve to the same key.
	ErrKeyCollision = errors.New("field keys collide")
	// ErrEmptyIdentifier is returned for a field or nested schema without a name.
	ErrEmptyIdentifier = errors.New("field identifier cannot be empty")
	// ErrNilField is returned when a nil descriptor or nested schema is registered.
	ErrNilField = errors.New("field descriptor cannot be nil")

	// ErrUnknownNaming is returned by NamingByName for an unrecognized convention name.
	ErrUnknownNaming = errors.New("unknown naming convention")
	// ErrUnknownFormat is returned when a parameter or schema file format cannot be determined.
	ErrUnknownFormat = errors.New("unable to determine parameter file format")
	// ErrUnknownType is returned for a schema file field type other than string, int or bool.
	ErrUnknownType = errors.New("unknown field type")

	// ErrNoFetcher is returned by LoaderBuilder.Build without a fetcher.
	ErrNoFetcher = errors.New("loader requires a fetcher")
	// ErrNoSchema is returned by LoaderBuilder.Build without a schema or store.
	ErrNoSchema = errors.New("loader requires a schema")
	// ErrNotRegistered is returned when a type has no store in a Registry.
	ErrNotRegistered = errors.New("type not registered")
	// ErrNoResult is returned by the zero Result, which holds no read.
	ErrNoResult = errors.New("no parameters were read")
	// ErrAlreadyRegistered is returned when a type is registered twice.
	ErrAlreadyRegistered = errors.New("type already registered")
)
