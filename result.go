// FILE: lixenwraith/params/result.go
package params

import (
	"errors"
	"fmt"
	"strings"
)

// MissingFields lists every required field that had neither a parameter
// nor a default. Fields holds schema-local identifiers in traversal order;
// Keys holds the matching fully qualified store keys.
type MissingFields struct {
	Fields []string
	Keys   []string
}

func (m *MissingFields) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(m.Fields, ", "))
}

// IsMissingFields reports whether err is or wraps a *MissingFields.
func IsMissingFields(err error) bool {
	var mf *MissingFields
	return errors.As(err, &mf)
}

// Result is the outcome of a Read: either a populated Values tree or a
// MissingFields failure. Exactly one of IsSuccess and IsMissingFields holds
// for a Result returned by Read. The zero Result means nothing was read,
// as when Loader.Load fails to fetch, and holds neither.
type Result struct {
	values  Values
	missing *MissingFields
}

// IsMissingFields reports whether the read failed.
func (r Result) IsMissingFields() bool { return r.missing != nil }

// IsSuccess reports whether the read produced a value.
func (r Result) IsSuccess() bool { return r.missing == nil && r.values != nil }

// Values returns the result tree, or nil for a failed read.
func (r Result) Values() Values { return r.values }

// MissingFields returns the failure, or nil for a successful read.
func (r Result) MissingFields() *MissingFields { return r.missing }

// Err returns the failure as an error, ErrNoResult for the zero Result,
// or nil.
func (r Result) Err() error {
	switch {
	case r.missing != nil:
		return r.missing
	case r.values == nil:
		return ErrNoResult
	}
	return nil
}

// Unwrap returns the values and the failure as a conventional Go pair.
func (r Result) Unwrap() (Values, error) {
	return r.values, r.Err()
}

// Decode copies a successful result into target, a non-nil pointer to a
// struct or map. A failed read returns its *MissingFields.
func (r Result) Decode(target any) error {
	if err := r.Err(); err != nil {
		return err
	}
	return r.values.Decode(target)
}
