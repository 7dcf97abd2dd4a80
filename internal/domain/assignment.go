package domain

import (
	"fmt"
	"maps"
	"sort"
	"strings"
)

// Assignment maps variable names to a single value each. It is used both
// for hypotheses and for givens (evidence).
type Assignment map[string]string

// Clone returns a shallow copy. A nil assignment clones to an empty one.
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	maps.Copy(out, a)
	return out
}

// Keys returns the assigned variables in sorted order.
func (a Assignment) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Restrict returns a new assignment holding only the listed variables.
// Variables missing from a are skipped.
func (a Assignment) Restrict(vars []string) Assignment {
	out := make(Assignment, len(vars))
	for _, v := range vars {
		if val, ok := a[v]; ok {
			out[v] = val
		}
	}
	return out
}

// Equal reports whether both assignments hold the same entries.
func (a Assignment) Equal(b Assignment) bool {
	return maps.Equal(a, b)
}

func (a Assignment) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range a.Keys() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%s", k, a[k])
	}
	sb.WriteByte('}')
	return sb.String()
}

// Merge returns a new assignment containing every entry of left and right.
// On a shared variable the right operand wins.
func Merge(left, right Assignment) Assignment {
	out := left.Clone()
	maps.Copy(out, right)
	return out
}

// Consistent reports whether h and g agree on every variable they share.
// Both merge directions must produce the same mapping.
func Consistent(h, g Assignment) bool {
	return Merge(h, g).Equal(Merge(g, h))
}

// ParseAssignment parses "A=T,B=F" into an Assignment. An empty string
// yields nil so callers can tell "no givens" apart from empty givens.
func ParseAssignment(s string) (Assignment, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	out := Assignment{}
	for _, part := range strings.Split(s, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		name, value = strings.TrimSpace(name), strings.TrimSpace(value)
		if !ok || name == "" || value == "" {
			return nil, fmt.Errorf("invalid assignment %q: want VAR=VALUE", part)
		}
		if _, dup := out[name]; dup {
			return nil, fmt.Errorf("variable %q assigned twice", name)
		}
		out[name] = value
	}
	return out, nil
}
