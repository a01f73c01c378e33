package daemon

import (
	"encoding/json"
	"fmt"
	"github.com/icinga/icinga-restquery/pkg/filter"
	"io"
)

// Query parses a single decoded query string with the filter set of the given resource and writes the
// resulting predicates as JSON to w.
func Query(w io.Writer, sets map[string]*filter.FilterSet, resource, query string) error {
	fs, ok := sets[resource]
	if !ok {
		return fmt.Errorf("unknown resource %q", resource)
	}

	predicates, err := fs.Parse(query)
	if err != nil {
		return fmt.Errorf("cannot parse query for resource %q: %w", resource, err)
	}

	if predicates == nil {
		predicates = []filter.Predicate{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(predicates)
}
