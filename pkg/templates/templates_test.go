package templates_test

import (
	"testing"

	"github.com/gnames/gnmodel/pkg/schema"
	"github.com/gnames/gnmodel/pkg/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemasYAML(t *testing.T) {
	kind, fields, err := schema.DefinitionsFromYAML(
		[]byte(templates.SchemasYAML),
	)
	require.NoError(t, err)
	assert.Equal(t, "notes", kind)
	require.NotEmpty(t, fields)

	// The starter template registers cleanly.
	reg := schema.NewRegistry()
	err = reg.Register(kind, fields)
	require.NoError(t, err)
}
