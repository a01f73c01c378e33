package filter

import (
	"fmt"
	"github.com/icinga/icinga-restquery/pkg/operator"
	"golang.org/x/exp/slices"
	"strings"
)

// Filter describes a single filterable field: the type its values are coerced into, the operators that may be
// applied to it and whether null values are permitted.
//
// A Filter is immutable once created and can safely be shared by multiple goroutines.
type Filter struct {
	kind       Kind
	coercer    coercer
	operators  []operator.Operator
	allowNull  bool
	nullTokens []string
}

type options struct {
	operators  []operator.Operator
	allowNull  bool
	nullTokens []string
	truthy     []string
	falsy      []string
	element    *Filter
}

// Option configures a Filter created by New.
type Option func(*options)

// WithOperators restricts the operators allowed for the filter.
// When no operators are given, the natural operator set of the filter kind is used.
func WithOperators(ops ...operator.Operator) Option {
	return func(o *options) {
		o.operators = ops
	}
}

// WithAllowNull sets whether the null tokens are accepted as a value. Null values are allowed by default.
func WithAllowNull(allow bool) Option {
	return func(o *options) {
		o.allowNull = allow
	}
}

// NotNull is a shorthand for WithAllowNull(false).
func NotNull() Option {
	return WithAllowNull(false)
}

// WithNullTokens replaces DefaultNullTokens. Tokens are matched case-insensitively.
func WithNullTokens(tokens ...string) Option {
	return func(o *options) {
		if len(tokens) > 0 {
			o.nullTokens = tokens
		}
	}
}

// WithBooleanTokens replaces DefaultTruthyTokens and DefaultFalsyTokens of a boolean filter.
// An empty set keeps the respective default. Tokens are matched case-insensitively.
func WithBooleanTokens(truthy, falsy []string) Option {
	return func(o *options) {
		if len(truthy) > 0 {
			o.truthy = truthy
		}
		if len(falsy) > 0 {
			o.falsy = falsy
		}
	}
}

// WithElement sets the filter used for every element of a delimited set. Defaults to String().
func WithElement(element *Filter) Option {
	return func(o *options) {
		o.element = element
	}
}

// New creates a Filter of the given kind.
//
// Returns an error if the kind is unknown or any of the configured operators isn't recognized.
func New(kind Kind, opts ...Option) (*Filter, error) {
	o := &options{
		allowNull:  true,
		nullTokens: DefaultNullTokens,
		truthy:     DefaultTruthyTokens,
		falsy:      DefaultFalsyTokens,
	}
	for _, opt := range opts {
		opt(o)
	}

	f := &Filter{kind: kind, allowNull: o.allowNull, nullTokens: toLower(o.nullTokens)}

	var natural []operator.Operator
	switch kind {
	case KindBoolean:
		f.coercer = &booleanCoercer{truthy: toLower(o.truthy), falsy: toLower(o.falsy)}
		natural = operator.Equality
	case KindInteger:
		f.coercer = integerCoercer{}
		natural = operator.Ordering
	case KindWholeNumber:
		f.coercer = wholeNumberCoercer{}
		natural = operator.Ordering
	case KindFloat:
		f.coercer = floatCoercer{}
		natural = operator.Ordering
	case KindString:
		f.coercer = stringCoercer{}
		natural = operator.Membership
	case KindDelimitedSet:
		element := o.element
		if element == nil {
			element = String()
		}

		f.coercer = &delimitedSetCoercer{element: element}
		natural = operator.Equality
	default:
		return nil, fmt.Errorf("invalid filter kind provided: %d", int(kind))
	}

	ops := o.operators
	if len(ops) == 0 {
		ops = natural
	}

	for _, op := range ops {
		if !op.Valid() {
			return nil, fmt.Errorf("%w provided: %q", ErrInvalidOperator, op)
		}

		if !slices.Contains(f.operators, op) {
			f.operators = append(f.operators, op)
		}
	}

	return f, nil
}

// MustNew is like New but panics on error. It is meant for package level filter declarations.
func MustNew(kind Kind, opts ...Option) *Filter {
	f, err := New(kind, opts...)
	if err != nil {
		panic(err)
	}

	return f
}

// Boolean creates a filter for true/false values.
func Boolean(opts ...Option) *Filter { return MustNew(KindBoolean, opts...) }

// Integer creates a filter for signed 64-bit integer values.
func Integer(opts ...Option) *Filter { return MustNew(KindInteger, opts...) }

// WholeNumber creates a filter for non-negative integer values.
func WholeNumber(opts ...Option) *Filter { return MustNew(KindWholeNumber, opts...) }

// Float creates a filter for 64-bit floating point values.
func Float(opts ...Option) *Filter { return MustNew(KindFloat, opts...) }

// String creates a filter passing the trimmed raw value through.
func String(opts ...Option) *Filter { return MustNew(KindString, opts...) }

// DelimitedSet creates a filter for comma separated values, each of them parsed by the given element filter.
// A nil element defaults to String().
func DelimitedSet(element *Filter, opts ...Option) *Filter {
	return MustNew(KindDelimitedSet, append(opts, WithElement(element))...)
}

// Parse converts the given raw token into a typed value.
//
// The token is trimmed first. Null tokens yield nil, or a one-element slice containing nil for delimited
// sets, unless null values aren't allowed. Otherwise, the result is a bool, int64, float64, string or []any
// depending on the filter kind.
func (f *Filter) Parse(raw string) (any, error) {
	token := strings.TrimSpace(raw)
	if slices.Contains(f.nullTokens, strings.ToLower(token)) {
		if !f.allowNull {
			return nil, fmt.Errorf("%w: %q", ErrNullNotAllowed, token)
		}

		if f.kind == KindDelimitedSet {
			return []any{nil}, nil
		}

		return nil, nil
	}

	return f.coercer.coerce(token)
}

// Kind returns the value type of this filter.
func (f *Filter) Kind() Kind {
	return f.kind
}

// Operators returns a copy of the operators allowed for this filter.
func (f *Filter) Operators() []operator.Operator {
	return slices.Clone(f.operators)
}

// Allows reports whether op may be applied to this filter.
func (f *Filter) Allows(op operator.Operator) bool {
	return slices.Contains(f.operators, op)
}

// AllowNull reports whether null tokens are accepted by this filter.
func (f *Filter) AllowNull() bool {
	return f.allowNull
}

func toLower(tokens []string) []string {
	lowered := make([]string, 0, len(tokens))
	for _, token := range tokens {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(token)))
	}

	return lowered
}
