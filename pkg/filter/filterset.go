package filter

import (
	"errors"
	"fmt"
	"github.com/icinga/icinga-restquery/pkg/operator"
	"github.com/icinga/icingadb/pkg/logging"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"strconv"
	"strings"
)

// Fields maps query string field names to their filter.
type Fields map[string]*Filter

// Predicate is a single validated condition parsed from a query string.
//
// Value is nil, a bool, int64, float64, string or []any depending on the kind of the field's filter.
type Predicate struct {
	Field    string            `json:"field"`
	Operator operator.Operator `json:"operator"`
	Value    any               `json:"value"`
}

// String renders the predicate in its query string form "field=operator:value".
func (p Predicate) String() string {
	return p.Field + "=" + p.Operator.String() + ":" + formatValue(p.Value)
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return v
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, formatValue(item))
		}

		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}

// FilterSet is a named collection of filters, typically one per resource, that parses query strings into
// predicates.
//
// In strict mode, Parse fails on the first disallowed operator or malformed value. In passive mode, such
// segments are silently dropped and Parse never fails. Segments referring to undeclared fields are ignored
// in both modes, so that a query string can carry parameters meant for other consumers.
//
// A FilterSet is immutable once created and can safely be used by multiple goroutines.
type FilterSet struct {
	fields Fields
	strict bool
	logger *logging.Logger
}

// SetOption configures a FilterSet created by NewSet.
type SetOption func(*FilterSet)

// Strict enables the strict error policy.
func Strict() SetOption {
	return WithStrict(true)
}

// WithStrict sets the error policy, passive being the default.
func WithStrict(strict bool) SetOption {
	return func(fs *FilterSet) {
		fs.strict = strict
	}
}

// WithLogger sets the logger used to report dropped query string segments at debug level.
func WithLogger(logger *logging.Logger) SetOption {
	return func(fs *FilterSet) {
		if logger != nil {
			fs.logger = logger
		}
	}
}

// NewSet creates a FilterSet from the given field declarations.
func NewSet(fields Fields, opts ...SetOption) (*FilterSet, error) {
	fs := &FilterSet{fields: make(Fields, len(fields)), logger: logging.NewLogger(zap.NewNop().Sugar(), 0)}
	for name, f := range fields {
		if name == "" {
			return nil, errors.New("field name must not be empty")
		}
		if f == nil {
			return nil, fmt.Errorf("field %q has no filter", name)
		}

		fs.fields[name] = f
	}

	for _, opt := range opts {
		opt(fs)
	}

	return fs, nil
}

// MustNewSet is like NewSet but panics on error.
func MustNewSet(fields Fields, opts ...SetOption) *FilterSet {
	fs, err := NewSet(fields, opts...)
	if err != nil {
		panic(err)
	}

	return fs
}

// Parse parses an already percent-decoded query string into predicates.
//
// The predicates are returned in the order of their segments in the query string. Each segment has the form
// "field=operator:value", "field=operator" (empty value) or "field=value" (equality).
func (fs *FilterSet) Parse(query string) ([]Predicate, error) {
	var predicates []Predicate
	for _, segment := range strings.Split(query, "&") {
		if segment == "" {
			continue
		}

		field, expr, _ := strings.Cut(segment, "=")
		op, raw := splitExpr(expr)

		f, ok := fs.fields[field]
		if !ok {
			fs.logger.Debugw("Ignoring undeclared filter field", zap.String("field", field))
			continue
		}

		if !f.Allows(op) {
			err := fmt.Errorf("field %q: %w %q", field, ErrInvalidOperator, op)
			if fs.strict {
				return nil, err
			}

			fs.logger.Debugw("Dropping filter segment", zap.String("segment", segment), zap.Error(err))
			continue
		}

		value, err := f.Parse(raw)
		if err != nil {
			err = fmt.Errorf("field %q: %w", field, err)
			if fs.strict {
				return nil, err
			}

			fs.logger.Debugw("Dropping filter segment", zap.String("segment", segment), zap.Error(err))
			continue
		}

		predicates = append(predicates, Predicate{Field: field, Operator: op, Value: value})
	}

	return predicates, nil
}

// splitExpr splits the right-hand side of a segment into its operator and raw value.
//
// A bare operator code takes precedence over a raw value of the same text, thus "name=gt" compares
// against the empty string rather than "gt".
func splitExpr(expr string) (operator.Operator, string) {
	if code, raw, found := strings.Cut(expr, ":"); found {
		return operator.Operator(code), raw
	}

	if op, ok := operator.Parse(expr); ok {
		return op, ""
	}

	return operator.Equal, expr
}

// Fields returns the sorted names of all declared fields.
func (fs *FilterSet) Fields() []string {
	names := maps.Keys(fs.fields)
	slices.Sort(names)

	return names
}

// Filter returns the filter declared for the given field name, nil if there is none.
func (fs *FilterSet) Filter(name string) *Filter {
	return fs.fields[name]
}

// IsStrict reports whether this set uses the strict error policy.
func (fs *FilterSet) IsStrict() bool {
	return fs.strict
}
