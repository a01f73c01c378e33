package filter

import (
	"fmt"
	"golang.org/x/exp/slices"
	"strconv"
	"strings"
)

// Kind identifies the value type a Filter coerces its raw query string tokens into.
type Kind int

// List of the supported filter kinds.
const (
	KindBoolean Kind = iota
	KindInteger
	KindWholeNumber
	KindFloat
	KindString
	KindDelimitedSet
)

var kindNames = map[Kind]string{
	KindBoolean:      "boolean",
	KindInteger:      "integer",
	KindWholeNumber:  "whole-number",
	KindFloat:        "float",
	KindString:       "string",
	KindDelimitedSet: "delimited-set",
}

// ParseKind looks up a Kind by its name as returned by Kind.String.
func ParseKind(name string) (Kind, error) {
	for kind, kindName := range kindNames {
		if kindName == name {
			return kind, nil
		}
	}

	return 0, fmt.Errorf("invalid filter kind provided: %q", name)
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Default token sets, all lower case.
var (
	DefaultNullTokens   = []string{"null", "none"}
	DefaultTruthyTokens = []string{"true", "1", "yes"}
	DefaultFalsyTokens  = []string{"false", "0", "no"}
)

// coercer converts a single trimmed token, which is known not to be a null token, into a typed value.
//
// The set of implementations is closed, every Kind maps to exactly one of the types below.
type coercer interface {
	coerce(token string) (any, error)
}

type booleanCoercer struct {
	truthy []string
	falsy  []string
}

func (c *booleanCoercer) coerce(token string) (any, error) {
	token = strings.ToLower(token)
	if slices.Contains(c.truthy, token) {
		return true, nil
	}
	if slices.Contains(c.falsy, token) {
		return false, nil
	}

	return nil, fmt.Errorf("%w %q", ErrInvalidBoolean, token)
}

type integerCoercer struct{}

func (integerCoercer) coerce(token string) (any, error) {
	i, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrInvalidInteger, token)
	}

	return i, nil
}

type wholeNumberCoercer struct{}

func (wholeNumberCoercer) coerce(token string) (any, error) {
	i, err := strconv.ParseInt(token, 10, 64)
	if err != nil || i < 0 {
		return nil, fmt.Errorf("%w %q", ErrInvalidWholeNumber, token)
	}

	return i, nil
}

type floatCoercer struct{}

func (floatCoercer) coerce(token string) (any, error) {
	// ParseFloat also accepts hexadecimal floats, which aren't decimal literals.
	if unsigned := strings.TrimLeft(token, "+-"); strings.HasPrefix(strings.ToLower(unsigned), "0x") {
		return nil, fmt.Errorf("%w %q", ErrInvalidFloat, token)
	}

	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrInvalidFloat, token)
	}

	return f, nil
}

type stringCoercer struct{}

func (stringCoercer) coerce(token string) (any, error) {
	return token, nil
}

type delimitedSetCoercer struct {
	element *Filter
}

func (c *delimitedSetCoercer) coerce(token string) (any, error) {
	segments := strings.Split(token, ",")
	values := make([]any, 0, len(segments))
	for _, segment := range segments {
		v, err := c.element.Parse(segment)
		if err != nil {
			return nil, err
		}

		values = append(values, v)
	}

	return values, nil
}

// Assert interface compliance.
var (
	_ coercer = (*booleanCoercer)(nil)
	_ coercer = integerCoercer{}
	_ coercer = wholeNumberCoercer{}
	_ coercer = floatCoercer{}
	_ coercer = stringCoercer{}
	_ coercer = (*delimitedSetCoercer)(nil)
)
