package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// schemaYAML mirrors the layout of a declarative schema document.
type schemaYAML struct {
	Kind   string      `yaml:"kind"`
	Fields []fieldYAML `yaml:"fields"`
}

type fieldYAML struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Required bool   `yaml:"required"`
	Default  any    `yaml:"default"`
}

// DefinitionsFromYAML decodes one YAML schema document into its kind
// name and field definitions. Literal defaults become constant
// producers. Validators cannot be declared in YAML; attach them to the
// returned definitions before Register.
func DefinitionsFromYAML(data []byte) (string, []FieldDefinition, error) {
	var sy schemaYAML
	if err := yaml.Unmarshal(data, &sy); err != nil {
		return "", nil, fmt.Errorf("cannot decode schema document: %w", err)
	}
	if sy.Kind == "" {
		return "", nil, fmt.Errorf("schema document has no kind")
	}
	if len(sy.Fields) == 0 {
		return "", nil, fmt.Errorf("schema %q has no fields", sy.Kind)
	}

	res := make([]FieldDefinition, 0, len(sy.Fields))
	for _, f := range sy.Fields {
		if f.Name == "" {
			return "", nil,
				fmt.Errorf("schema %q has a field without a name", sy.Kind)
		}
		typ, err := TypeFromString(f.Type)
		if err != nil {
			return "", nil,
				fmt.Errorf("schema %q, field %q: %w", sy.Kind, f.Name, err)
		}
		fd := FieldDefinition{
			Name:     f.Name,
			Type:     typ,
			Required: f.Required,
		}
		if f.Default != nil {
			dv := f.Default
			fd.Default = func() any { return dv }
		}
		res = append(res, fd)
	}
	return sy.Kind, res, nil
}
