// Package filter turns REST API query strings into typed filter predicates.
//
// A resource declares its filterable fields once:
//
//	var people = filter.MustNewSet(filter.Fields{
//	    "name":     filter.String(filter.NotNull()),
//	    "age":      filter.Integer(),
//	    "weight":   filter.Float(),
//	    "divorced": filter.Boolean(),
//	    "tags":     filter.DelimitedSet(nil),
//	}, filter.Strict())
//
// and parses every request's decoded query string with it:
//
//	predicates, err := people.Parse("name=Ron Swanson&age=gte:60&age=lte:69")
//
// Segments use the form field=operator:value, where the operator defaults to "eq". Applying the predicates,
// e.g. by translating them into SQL, is up to the caller.
package filter
