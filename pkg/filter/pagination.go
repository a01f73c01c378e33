package filter

import (
	"github.com/icinga/icinga-restquery/pkg/operator"
)

// Field names of the pagination set.
const (
	LimitField  = "limit"
	OffsetField = "offset"
)

// NewPaginationSet creates a FilterSet for the "limit" and "offset" query parameters.
// Both only accept non-null whole numbers compared with the equality operator.
func NewPaginationSet(opts ...SetOption) *FilterSet {
	return MustNewSet(Fields{
		LimitField:  WholeNumber(NotNull(), WithOperators(operator.Equal)),
		OffsetField: WholeNumber(NotNull(), WithOperators(operator.Equal)),
	}, opts...)
}
