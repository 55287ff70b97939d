package yaml

import (
	"encoding/json"
	"fmt"
	"path"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SchemaGenerator generates a JSON schema for a Go value, using the doc
// comments of the given packages as descriptions.
type SchemaGenerator struct {
	reflector *jsonschema.Reflector
	value     any
	module    string
	packages  []string
}

// NewSchemaGenerator creates a [SchemaGenerator] for v. Each package is an
// import path inside module; comments are read relative to the current
// working directory, which must be the module root.
func NewSchemaGenerator(v any, module string, packages ...string) *SchemaGenerator {
	return &SchemaGenerator{
		reflector: &jsonschema.Reflector{
			ExpandedStruct: true,
			Namer:          qualifiedName,
		},
		value:    v,
		module:   module,
		packages: packages,
	}
}

// Generate returns the indented JSON schema.
func (g *SchemaGenerator) Generate() ([]byte, error) {
	for _, pkg := range g.packages {
		dir := strings.TrimPrefix(strings.TrimPrefix(pkg, g.module), "/")
		if dir == "" {
			dir = "."
		}

		err := g.reflector.AddGoComments(g.module, dir)
		if err != nil {
			return nil, fmt.Errorf("add comments from %s: %w", pkg, err)
		}
	}

	js := g.reflector.Reflect(g.value)

	data, err := json.MarshalIndent(js, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return append(data, '\n'), nil
}

// qualifiedName prefixes type names with their package name, so that
// e.g. mapping.Config and matcher.Config get distinct definitions.
func qualifiedName(t reflect.Type) string {
	pkg := path.Base(t.PkgPath())
	if pkg == "." || pkg == "" {
		return t.Name()
	}

	return cases.Title(language.English).String(pkg) + t.Name()
}
