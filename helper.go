// File: lixenwraith/params/helper.go
package params

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// flattenMap converts a nested map to a flat map of store keys to raw
// string values. Keys already starting with the separator are taken as
// absolute names.
func flattenMap(nested map[string]any, prefix string) map[string]string {
	flat := make(map[string]string)

	for key, value := range nested {
		path := prefix + Separator + key
		if strings.HasPrefix(key, Separator) {
			path = strings.TrimSuffix(prefix, Separator) + key
		}

		if nestedMap, isMap := value.(map[string]any); isMap {
			for subPath, subValue := range flattenMap(nestedMap, path) {
				flat[subPath] = subValue
			}
			continue
		}
		flat[path] = stringifyValue(value)
	}

	return flat
}

// stringifyValue renders a decoded file value the way a parameter store
// would hold it. Lists become comma separated, like SSM StringList.
func stringifyValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case time.Time:
		return v.Format(time.RFC3339)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = stringifyValue(item)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}
