// Command schemagen writes the JSON schema of the urllang configuration file.
// It must be run from inside the module, as descriptions are read from the
// doc comments of the configuration types.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/macropower/urllang/api"
	"github.com/macropower/urllang/api/v1beta1/configs"
	"github.com/macropower/urllang/pkg/yaml"
)

const module = "github.com/macropower/urllang"

var outFile = flag.String("o", "configs.v1beta1.json", "Output file for the generated schema")

func main() {
	flag.Parse()

	out, err := filepath.Abs(*outFile)
	if err != nil {
		log.Fatalf("resolve output path: %v", err)
	}

	err = chdirModuleRoot()
	if err != nil {
		log.Fatalf("find module root: %v", err)
	}

	gen := yaml.NewSchemaGenerator(configs.New(), module,
		module+"/api/v1beta1",
		module+"/api/v1beta1/configs",
		module+"/pkg/mapping",
		module+"/pkg/matcher",
		module+"/pkg/profile",
	)

	jsData, err := gen.Generate()
	if err != nil {
		log.Fatalf("generate JSON schema: %v", err)
	}

	err = os.WriteFile(out, jsData, 0o600)
	if err != nil {
		log.Fatalf("write schema file: %v", err)
	}
}

func chdirModuleRoot() error {
	cwd, err := os.Getwd()
	if err != nil {
		return err //nolint:wrapcheck // Reported by the caller.
	}

	goMod, err := api.FindConfigFile(cwd, []string{"go.mod"})
	if err != nil {
		return err //nolint:wrapcheck // Reported by the caller.
	}
	if goMod == "" {
		return os.ErrNotExist
	}

	return os.Chdir(filepath.Dir(goMod)) //nolint:wrapcheck // Reported by the caller.
}
