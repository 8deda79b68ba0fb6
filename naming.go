// FILE: lixenwraith/params/naming.go
package params

import (
	"fmt"
	"strings"
)

// Naming translates between a schema field identifier and the key segment
// used in the parameter store.
type Naming interface {
	ToKey(identifier string) string
	FromKey(segment string) string
}

// NamingFunc pairs two transform functions into a Naming.
type NamingFunc struct {
	To   func(string) string
	From func(string) string
}

func (n NamingFunc) ToKey(identifier string) string { return n.To(identifier) }
func (n NamingFunc) FromKey(segment string) string  { return n.From(segment) }

type identityNaming struct{}

func (identityNaming) ToKey(identifier string) string { return identifier }
func (identityNaming) FromKey(segment string) string  { return segment }

// separatorNaming implements camelCase <-> separated-lowercase conversion.
type separatorNaming struct {
	sep byte
}

func (n separatorNaming) ToKey(identifier string) string {
	var sb strings.Builder
	sb.Grow(len(identifier) + 4)
	for i := 0; i < len(identifier); i++ {
		c := identifier[i]
		if c >= 'A' && c <= 'Z' {
			sb.WriteByte(n.sep)
			sb.WriteByte(c + ('a' - 'A'))
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func (n separatorNaming) FromKey(segment string) string {
	var sb strings.Builder
	sb.Grow(len(segment))
	for i := 0; i < len(segment); i++ {
		c := segment[i]
		if c == n.sep && i+1 < len(segment) && isASCIILetter(segment[i+1]) {
			next := segment[i+1]
			if next >= 'a' && next <= 'z' {
				next -= 'a' - 'A'
			}
			sb.WriteByte(next)
			i++
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

var (
	// Identity uses field identifiers as key segments unchanged.
	Identity Naming = identityNaming{}
	// Kebab maps camelCase identifiers to kebab-case keys.
	Kebab Naming = separatorNaming{sep: '-'}
	// Snake maps camelCase identifiers to snake_case keys.
	Snake Naming = separatorNaming{sep: '_'}
)

// NamingByName resolves a convention from its configuration name.
// The empty string resolves to Identity.
func NamingByName(name string) (Naming, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "identity", "none":
		return Identity, nil
	case "kebab", "kebab-case":
		return Kebab, nil
	case "snake", "snake_case":
		return Snake, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNaming, name)
	}
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
