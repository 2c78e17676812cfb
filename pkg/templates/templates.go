// Package templates provides embedded YAML schema templates.
package templates

import _ "embed"

// SchemasYAML contains a starter schema document in the format accepted
// by schema.DefinitionsFromYAML.
//
//go:embed schemas.yaml
var SchemasYAML string
