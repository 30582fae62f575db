package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// schemaFile is the YAML document shape for collection definitions.
type schemaFile struct {
	Collections []*Collection `yaml:"collections"`
}

// LoadFile reads collection definitions from a YAML file and validates
// them. Values of the form ${VAR} or ${VAR:-default} are substituted
// from the environment before parsing.
func LoadFile(path string) ([]*Collection, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	data = expandEnvVars(data)

	var doc schemaFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema file %s: %w", path, err)
	}
	if len(doc.Collections) == 0 {
		return nil, fmt.Errorf("schema file %s defines no collections", path)
	}

	for _, c := range doc.Collections {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("schema file %s: %w", path, err)
		}
	}
	return doc.Collections, nil
}

// LoadRegistry loads collection definitions from one or more YAML
// files and builds a Registry from all of them.
func LoadRegistry(paths ...string) (*Registry, error) {
	var all []*Collection
	for _, p := range paths {
		cols, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		all = append(all, cols...)
	}
	return NewRegistry(all...)
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment
// variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
