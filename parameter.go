// FILE: lixenwraith/params/parameter.go
package params

import (
	"sort"
	"strings"
	"time"
)

// Parameter is one key/value pair supplied by a parameter store.
// Only Name and Value are read; the remaining metadata is carried through.
type Parameter struct {
	Name         string    `toml:"name" yaml:"name" json:"name"`
	Value        string    `toml:"value" yaml:"value" json:"value"`
	Type         string    `toml:"type,omitempty" yaml:"type,omitempty" json:"type,omitempty"`
	Version      int64     `toml:"version,omitempty" yaml:"version,omitempty" json:"version,omitempty"`
	ARN          string    `toml:"arn,omitempty" yaml:"arn,omitempty" json:"arn,omitempty"`
	LastModified time.Time `toml:"last_modified,omitempty" yaml:"last_modified,omitempty" json:"last_modified,omitempty"`
}

// P is shorthand for a Parameter carrying only a name and value.
func P(name, value string) Parameter {
	return Parameter{Name: name, Value: value}
}

// indexParameters builds the lookup table for one read. Later entries win.
func indexParameters(params []Parameter) map[string]*Parameter {
	set := make(map[string]*Parameter, len(params))
	for i := range params {
		set[params[i].Name] = &params[i]
	}
	return set
}

// FilterPrefix returns the parameters whose names start with prefix.
func FilterPrefix(params []Parameter, prefix string) []Parameter {
	if prefix == "" || prefix == Separator {
		return params
	}
	trimmed := strings.TrimSuffix(prefix, Separator)
	out := make([]Parameter, 0, len(params))
	for _, p := range params {
		if p.Name == trimmed || strings.HasPrefix(p.Name, trimmed+Separator) {
			out = append(out, p)
		}
	}
	return out
}

// SortParameters orders parameters by name, for stable output.
func SortParameters(params []Parameter) {
	sort.SliceStable(params, func(i, j int) bool {
		return params[i].Name < params[j].Name
	})
}
