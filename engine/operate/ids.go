package operate

import (
	"fmt"
	"strings"

	"go.jetify.com/typeid/v2"
)

// entryPrefix is used when a data type has no letters to form a prefix from.
const entryPrefix = "entry"

// NewEntryID returns a fresh type-prefixed id, e.g. "flyline_01h455vb4pex5vsknk084sn02q".
//
// Parameters:
//   - dataType: the data type the id is for
//
// Returns:
//   - string: the id
func NewEntryID(dataType string) string {
	return typeid.MustGenerate(prefixFor(dataType)).String()
}

// EntryIDType reports the prefix of an id made by NewEntryID.
//
// Parameters:
//   - id: the id to parse
//
// Returns:
//   - string: the prefix
//   - error: error if id is not a type id
func EntryIDType(id string) (string, error) {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("invalid entry id %q: %w", id, err)
	}
	return parsed.Prefix(), nil
}

// prefixFor lowercases dataType and keeps only letters, joining runs of anything else with a
// single underscore, to satisfy the type id prefix rules.
func prefixFor(dataType string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(dataType) {
		if r >= 'a' && r <= 'z' {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	p := b.String()
	if p == "" {
		return entryPrefix
	}
	if len(p) > 63 {
		p = strings.TrimRight(p[:63], "_")
	}
	return p
}
