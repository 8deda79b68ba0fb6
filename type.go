// File: lixenwraith/params/type.go
package params

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Values is the result tree of a successful read. Nested schemas appear as
// nested Values; absent optional fields are present with a nil value.
type Values map[string]any

// Lookup returns the value at a path of identifiers and whether the path
// exists. A path may also be given as one slash separated string.
func (v Values) Lookup(path ...string) (any, bool) {
	if len(path) == 1 && strings.Contains(path[0], Separator) {
		path = strings.Split(strings.Trim(path[0], Separator), Separator)
	}
	if len(path) == 0 {
		return v, true
	}

	current := v
	for i, segment := range path {
		val, exists := current[segment]
		if !exists {
			return nil, false
		}
		if i == len(path)-1 {
			return val, true
		}
		next, ok := val.(Values)
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}

// Get returns the value at path, or nil.
func (v Values) Get(path ...string) any {
	val, _ := v.Lookup(path...)
	return val
}

// Sub returns the nested tree at path.
func (v Values) Sub(path ...string) (Values, error) {
	val, found := v.Lookup(path...)
	if !found {
		return nil, fmt.Errorf("path not found: %s", strings.Join(path, Separator))
	}
	sub, ok := val.(Values)
	if !ok {
		return nil, fmt.Errorf("path %s refers to %T, not a nested schema", strings.Join(path, Separator), val)
	}
	return sub, nil
}

// String retrieves a string value using the path.
// Attempts conversion from common types if the stored value isn't already a string.
func (v Values) String(path ...string) (string, error) {
	val, found := v.Lookup(path...)
	if !found {
		return "", fmt.Errorf("path not found: %s", strings.Join(path, Separator))
	}
	if val == nil {
		return "", nil
	}

	switch s := val.(type) {
	case string:
		return s, nil
	case fmt.Stringer:
		return s.String(), nil
	case int, int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(val).Int(), 10), nil
	case bool:
		return strconv.FormatBool(s), nil
	default:
		return "", fmt.Errorf("cannot convert type %T to string for path %s", val, strings.Join(path, Separator))
	}
}

// Int retrieves an int64 value using the path.
// Strings are read with ParseInt, so malformed text yields NaN rather than an error.
func (v Values) Int(path ...string) (int64, error) {
	val, found := v.Lookup(path...)
	if !found {
		return 0, fmt.Errorf("path not found: %s", strings.Join(path, Separator))
	}
	if val == nil {
		return 0, fmt.Errorf("value for path %s is nil, cannot convert to int64", strings.Join(path, Separator))
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return int64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return int64(rv.Float()), nil
	case reflect.String:
		return ParseInt(rv.String()), nil
	}

	return 0, fmt.Errorf("cannot convert type %T to int64 for path %s", val, strings.Join(path, Separator))
}

// Bool retrieves a boolean value using the path.
// Strings are read with ParseBool.
func (v Values) Bool(path ...string) (bool, error) {
	val, found := v.Lookup(path...)
	if !found {
		return false, fmt.Errorf("path not found: %s", strings.Join(path, Separator))
	}
	if val == nil {
		return false, nil
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		return ParseBool(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0, nil
	}

	return false, fmt.Errorf("cannot convert type %T to bool for path %s", val, strings.Join(path, Separator))
}

// Flatten returns the leaves of the tree keyed by their full store key
// under prefix. Keys use identifiers, not naming-translated segments.
func (v Values) Flatten(prefix string) map[string]any {
	flat := make(map[string]any)
	v.flattenInto(normalizePrefix(prefix), flat)
	return flat
}

func (v Values) flattenInto(prefix string, flat map[string]any) {
	for key, val := range v {
		if sub, ok := val.(Values); ok {
			sub.flattenInto(prefix+key+Separator, flat)
			continue
		}
		flat[prefix+key] = val
	}
}
