package expr

import (
	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/ext"

	"github.com/macropower/urllang/pkg/urlparts"
)

type lib struct{}

func (lib) CompileOptions() []cel.EnvOption {
	return []cel.EnvOption{
		ext.Strings(),
		ext.Lists(),

		// `hostLabels` splits a host on dots.
		// Example: hostLabels(host).size() >= 3.
		cel.Function("hostLabels",
			cel.Overload("host_labels", []*cel.Type{cel.StringType}, cel.ListType(cel.StringType),
				cel.UnaryBinding(func(host ref.Val) ref.Val {
					hostValue, ok := host.(types.String).Value().(string)
					if !ok {
						return types.NewErr("hostLabels: invalid string value")
					}

					u := &urlparts.URL{Host: hostValue}

					return types.NewStringList(types.DefaultTypeAdapter, u.HostLabels())
				}),
			),
		),

		// `pathSegments` returns the non-empty segments of a path.
		// Example: pathSegments(path)[0] == "docs".
		cel.Function("pathSegments",
			cel.Overload("path_segments", []*cel.Type{cel.StringType}, cel.ListType(cel.StringType),
				cel.UnaryBinding(func(path ref.Val) ref.Val {
					pathValue, ok := path.(types.String).Value().(string)
					if !ok {
						return types.NewErr("pathSegments: invalid string value")
					}

					u := &urlparts.URL{Path: pathValue}

					return types.NewStringList(types.DefaultTypeAdapter, nonNil(u.PathSegments()))
				}),
			),
		),

		// `queryValues` returns the decoded values of a query parameter.
		// Example: queryValues(query, "lang").size() > 0.
		cel.Function("queryValues",
			cel.Overload("query_values", []*cel.Type{cel.StringType, cel.StringType}, cel.ListType(cel.StringType),
				cel.BinaryBinding(func(query, key ref.Val) ref.Val {
					queryValue, ok := query.(types.String).Value().(string)
					if !ok {
						return types.NewErr("queryValues: invalid query value")
					}

					keyValue, ok := key.(types.String).Value().(string)
					if !ok {
						return types.NewErr("queryValues: invalid key value")
					}

					u := &urlparts.URL{RawQuery: queryValue}

					return types.NewStringList(types.DefaultTypeAdapter, nonNil(u.QueryValues(keyValue)))
				}),
			),
		),
	}
}

func (lib) ProgramOptions() []cel.ProgramOption {
	return []cel.ProgramOption{}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}
