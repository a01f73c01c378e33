package config

import (
	"errors"
	"fmt"
	"github.com/creasty/defaults"
	"github.com/goccy/go-yaml"
	"github.com/icinga/icinga-restquery/pkg/filter"
	"github.com/icinga/icinga-restquery/pkg/operator"
	"github.com/icinga/icingadb/pkg/logging"
)

// Resource declares the filterable fields of a single REST resource.
type Resource struct {
	// Strict overrides ConfigFile.Strict for this resource if set.
	Strict *bool `yaml:"strict"`
	// Pagination adds the limit and offset fields of filter.NewPaginationSet.
	Pagination bool              `yaml:"pagination"`
	Fields     map[string]*Field `yaml:"fields"`
}

// Validate checks every field declaration of this resource.
func (r *Resource) Validate() error {
	if !r.Pagination && len(r.Fields) == 0 {
		return errors.New("neither fields nor pagination declared")
	}

	for name, field := range r.Fields {
		if name == "" {
			return errors.New("field name must not be empty")
		}
		if r.Pagination && (name == filter.LimitField || name == filter.OffsetField) {
			return fmt.Errorf("field %q collides with the pagination fields", name)
		}

		if _, err := field.Filter(); err != nil {
			return fmt.Errorf("field %q is invalid: %w", name, err)
		}
	}

	return nil
}

// FilterSet builds the filter set declared by this resource.
func (r *Resource) FilterSet(strict bool, logger *logging.Logger) (*filter.FilterSet, error) {
	if r.Strict != nil {
		strict = *r.Strict
	}

	fields := make(filter.Fields, len(r.Fields)+2)
	if r.Pagination {
		pagination := filter.NewPaginationSet()
		for _, name := range pagination.Fields() {
			fields[name] = pagination.Filter(name)
		}
	}

	for name, field := range r.Fields {
		f, err := field.Filter()
		if err != nil {
			return nil, fmt.Errorf("field %q is invalid: %w", name, err)
		}

		fields[name] = f
	}

	return filter.NewSet(fields, filter.WithStrict(strict), filter.WithLogger(logger))
}

// Field declares the filter of a single field.
type Field struct {
	Type       string   `yaml:"type" default:"string"`
	Operators  []string `yaml:"operators"`
	AllowNull  bool     `yaml:"allow-null" default:"true"`
	NullTokens []string `yaml:"null-tokens"`
	// Truthy and Falsy replace the boolean tokens, only used by the boolean type.
	Truthy []string `yaml:"truthy"`
	Falsy  []string `yaml:"falsy"`
	// Element is the type of every element of the delimited-set type.
	Element string `yaml:"element" default:"string"`
}

// UnmarshalYAML implements the yaml.BytesUnmarshaler interface.
//
// Fields are only known while decoding their resource's map, so the defaults are applied here.
func (f *Field) UnmarshalYAML(data []byte) error {
	if err := defaults.Set(f); err != nil {
		return err
	}

	type plain Field
	return yaml.Unmarshal(data, (*plain)(f))
}

// Filter builds the filter declared by this field. A nil Field declares a nullable string.
func (f *Field) Filter() (*filter.Filter, error) {
	if f == nil {
		f = new(Field)
		if err := defaults.Set(f); err != nil {
			return nil, err
		}
	}

	kind, err := filter.ParseKind(f.Type)
	if err != nil {
		return nil, err
	}

	ops := make([]operator.Operator, 0, len(f.Operators))
	for _, code := range f.Operators {
		op, ok := operator.Parse(code)
		if !ok {
			return nil, fmt.Errorf("%w provided: %q", filter.ErrInvalidOperator, code)
		}

		ops = append(ops, op)
	}

	opts := []filter.Option{
		filter.WithOperators(ops...),
		filter.WithAllowNull(f.AllowNull),
		filter.WithNullTokens(f.NullTokens...),
		filter.WithBooleanTokens(f.Truthy, f.Falsy),
	}

	if kind == filter.KindDelimitedSet {
		elementKind, err := filter.ParseKind(f.Element)
		if err != nil {
			return nil, fmt.Errorf("invalid element: %w", err)
		}
		if elementKind == filter.KindDelimitedSet {
			return nil, errors.New("delimited sets can't be nested")
		}

		element, err := filter.New(elementKind, filter.WithNullTokens(f.NullTokens...))
		if err != nil {
			return nil, err
		}

		opts = append(opts, filter.WithElement(element))
	}

	return filter.New(kind, opts...)
}

// BuildSets builds the filter sets of all declared resources, keyed by resource name.
func (c *ConfigFile) BuildSets(logger *logging.Logger) (map[string]*filter.FilterSet, error) {
	sets := make(map[string]*filter.FilterSet, len(c.Resources))
	for name, resource := range c.Resources {
		fs, err := resource.FilterSet(c.Strict, logger)
		if err != nil {
			return nil, fmt.Errorf("resource %q is invalid: %w", name, err)
		}

		sets[name] = fs
	}

	return sets, nil
}

// Assert interface compliance.
var (
	_ yaml.BytesUnmarshaler = (*Field)(nil)
)
