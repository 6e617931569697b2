// Package curriculum holds the static rubric and learning-path tables.
// They ship as embedded YAML, are validated against embedded JSON schemas,
// and are decoded once per process.
package curriculum

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml data/*.schema.json
var files embed.FS

// RubricFile is the decoded form of rubric.yaml.
type RubricFile struct {
	Categories []CategoryDef `yaml:"categories"`
	Bands      []BandDef     `yaml:"bands"`
}

type CategoryDef struct {
	Key      string         `yaml:"key"`
	Title    string         `yaml:"title"`
	Criteria []CriterionDef `yaml:"criteria"`
}

type CriterionDef struct {
	Key    string `yaml:"key"`
	Label  string `yaml:"label"`
	Points int    `yaml:"points"`
}

type BandDef struct {
	Key      string `yaml:"key"`
	Name     string `yaml:"name"`
	Min      int    `yaml:"min"`
	Max      int    `yaml:"max"`
	Guidance string `yaml:"guidance"`
}

// PathsFile is the decoded form of paths.yaml.
type PathsFile struct {
	Levels []LevelDef `yaml:"levels"`
}

type LevelDef struct {
	Level   string      `yaml:"level"`
	Title   string      `yaml:"title"`
	Goal    string      `yaml:"goal"`
	Modules []ModuleDef `yaml:"modules"`
}

type ModuleDef struct {
	ID    string    `yaml:"id"`
	Title string    `yaml:"title"`
	Tasks []TaskDef `yaml:"tasks"`
}

type TaskDef struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
}

// Rubric decodes the embedded rubric.
func Rubric() (RubricFile, error) {
	var out RubricFile
	err := decode("data/rubric.yaml", "data/rubric.schema.json", &out)
	return out, err
}

// Paths decodes the embedded learning paths.
func Paths() (PathsFile, error) {
	var out PathsFile
	err := decode("data/paths.yaml", "data/paths.schema.json", &out)
	return out, err
}

func decode(docPath, schemaPath string, out any) error {
	doc, err := files.ReadFile(docPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", docPath, err)
	}
	schema, err := files.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", schemaPath, err)
	}
	return DecodeYAML(doc, schema, out)
}

// DecodeYAML validates a YAML document against a JSON schema and decodes
// it into out.
func DecodeYAML(doc, schema []byte, out any) error {
	var tree any
	if err := yaml.Unmarshal(doc, &tree); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}

	// The validator wants JSON values, so round-trip the YAML tree.
	asJSON, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("convert yaml to json: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(asJSON))
	if err != nil {
		return fmt.Errorf("parse converted json: %w", err)
	}

	compiled, err := compileSchema(schema)
	if err != nil {
		return err
	}
	if err := compiled.Validate(inst); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	if err := yaml.Unmarshal(doc, out); err != nil {
		return fmt.Errorf("decode yaml: %w", err)
	}
	return nil
}

func compileSchema(raw []byte) (*jsonschema.Schema, error) {
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	const url = "schema://curriculum.json"
	if err := c.AddResource(url, parsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
}
