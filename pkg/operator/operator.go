package operator

// Operator is a comparison operator code as it appears in a query string, e.g. the "gte" in "age=gte:60".
type Operator string

// List of all the recognized operator codes.
const (
	Equal              Operator = "eq"
	NotEqual           Operator = "ne"
	In                 Operator = "in"
	NotIn              Operator = "nin"
	GreaterThan        Operator = "gt"
	GreaterThanOrEqual Operator = "gte"
	LessThan           Operator = "lt"
	LessThanOrEqual    Operator = "lte"
)

var all = []Operator{Equal, NotEqual, In, NotIn, GreaterThan, GreaterThanOrEqual, LessThan, LessThanOrEqual}

// Natural operator sets of the different value types.
var (
	// Equality is legal for every value type.
	Equality = []Operator{Equal, NotEqual}
	// Membership adds set membership tests, used by string values.
	Membership = []Operator{Equal, NotEqual, In, NotIn}
	// Ordering adds the four ordering comparators, used by numeric values.
	Ordering = []Operator{Equal, NotEqual, GreaterThan, GreaterThanOrEqual, LessThan, LessThanOrEqual}
)

// All returns every recognized operator in declaration order.
func All() []Operator {
	return append([]Operator(nil), all...)
}

// Parse looks up the given code in the operator table.
// Returns false if the code isn't a recognized operator. The lookup is case-sensitive.
func Parse(code string) (Operator, bool) {
	op := Operator(code)
	return op, op.Valid()
}

// Valid reports whether op is one of the recognized operators.
func (op Operator) Valid() bool {
	switch op {
	case Equal, NotEqual, In, NotIn, GreaterThan, GreaterThanOrEqual, LessThan, LessThanOrEqual:
		return true
	default:
		return false
	}
}

func (op Operator) String() string {
	return string(op)
}
