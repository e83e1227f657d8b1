package query

import (
	"fmt"
	"io"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
)

// MatchTier records which resolution step found a column
type MatchTier int

const (
	// Unresolved means no column matched the key
	Unresolved MatchTier = iota

	// MatchExact means the key equals a column name (case-insensitive)
	MatchExact

	// MatchAlias means the key is an alias for a column present in the schema
	MatchAlias

	// MatchFuzzy means the key is a substring of a column name
	MatchFuzzy
)

// String returns the tier name
func (m MatchTier) String() string {
	switch m {
	case Unresolved:
		return "unresolved"
	case MatchExact:
		return "exact"
	case MatchAlias:
		return "alias"
	case MatchFuzzy:
		return "fuzzy"
	default:
		return fmt.Sprintf("MatchTier(%d)", int(m))
	}
}

// MarshalText encodes the tier by name
func (m MatchTier) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// AliasMap maps a friendly column key to the real column name.
// Keys are compared case-insensitively.
type AliasMap map[string]string

// DefaultAliases returns the aliases for the catalog's unit-suffixed columns
func DefaultAliases() AliasMap {
	return AliasMap{
		"Dicke":   "Dicke_mm",
		"Breite":  "Breite_mm",
		"Hoehe":   "Hoehe_mm",
		"Laenge":  "Laenge_mm",
		"Gewicht": "Gewicht_kg",
	}
}

// Lookup returns the alias target for key.
//
// An exact key wins over a case-insensitive one; among case-insensitive
// candidates the lexically smallest key is used so lookups are deterministic.
func (a AliasMap) Lookup(key string) (string, bool) {
	if target, ok := a[key]; ok {
		return target, true
	}

	candidates := make([]string, 0, 1)
	for k := range a {
		if strings.EqualFold(k, key) {
			candidates = append(candidates, k)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	sort.Strings(candidates)
	return a[candidates[0]], true
}

// Merge returns a new map holding a's entries overridden by other's
func (a AliasMap) Merge(other AliasMap) AliasMap {
	out := make(AliasMap, len(a)+len(other))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range other {
		// drop a differently-cased duplicate so the override wins
		for existing := range out {
			if existing != k && strings.EqualFold(existing, k) {
				delete(out, existing)
			}
		}
		out[k] = v
	}
	return out
}

// LoadAliases reads an alias map from a JSON object of key to column name
func LoadAliases(r io.Reader) (AliasMap, error) {
	var aliases AliasMap
	if err := json.NewDecoder(r).Decode(&aliases); err != nil {
		return nil, fmt.Errorf("failed to decode alias map: %w", err)
	}
	for k, v := range aliases {
		if strings.TrimSpace(k) == "" || strings.TrimSpace(v) == "" {
			return nil, fmt.Errorf("invalid alias %q -> %q: key and column must be non-empty", k, v)
		}
	}
	return aliases, nil
}

// Resolve maps a user-typed key to a column name from columns.
// It returns false when no column matches.
func Resolve(key string, columns []string, aliases AliasMap) (string, bool) {
	name, tier := ResolveColumn(key, columns, aliases)
	return name, tier != Unresolved
}

// ResolveColumn maps a key to a column name and reports which step matched:
// exact name, alias whose target is in columns, then the first column (in
// schema order) containing key. Column names are returned as spelled in
// columns.
func ResolveColumn(key string, columns []string, aliases AliasMap) (string, MatchTier) {
	if name, ok := resolveExact(key, columns); ok {
		return name, MatchExact
	}
	if name, ok := resolveAlias(key, columns, aliases); ok {
		return name, MatchAlias
	}
	if name, ok := resolveFuzzy(key, columns); ok {
		return name, MatchFuzzy
	}
	return "", Unresolved
}

func resolveExact(key string, columns []string) (string, bool) {
	for _, col := range columns {
		if strings.EqualFold(col, key) {
			return col, true
		}
	}
	return "", false
}

func resolveAlias(key string, columns []string, aliases AliasMap) (string, bool) {
	target, ok := aliases.Lookup(key)
	if !ok {
		return "", false
	}
	return resolveExact(target, columns)
}

func resolveFuzzy(key string, columns []string) (string, bool) {
	needle := strings.ToLower(key)
	for _, col := range columns {
		if strings.Contains(strings.ToLower(col), needle) {
			return col, true
		}
	}
	return "", false
}
