package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack(t *testing.T) {
	assert.Equal(t, StackNode, ParseStack("  Node "))
	assert.True(t, StackPython.HasTemplates())
	assert.False(t, StackMixed.HasTemplates())
	assert.True(t, StackMixed.IsValid())
	assert.False(t, Stack("rust").IsValid())
	assert.Equal(t, StackStatic, StackMixed.TemplateStack())
	assert.Equal(t, StackStatic, Stack("").TemplateStack())
	assert.Equal(t, StackNode, StackNode.TemplateStack())
}

func TestCommands(t *testing.T) {
	var c Commands
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Set("test", "  npm test "))
	assert.True(t, c.Set("single_test", "npm test -- -t name"))
	assert.False(t, c.Set("deploy", "x"))

	assert.Equal(t, "npm test", c.Test)
	assert.Equal(t, "npm test", c.Get("test"))
	assert.Equal(t, "", c.Get("deploy"))
	assert.Equal(t, map[string]string{"test": "npm test", "single_test": "npm test -- -t name"}, c.Map())
	assert.False(t, c.IsEmpty())
}

func TestEvidenceNormalized(t *testing.T) {
	e := Evidence{Make: []string{"Makefile"}}.Normalized()
	assert.NotNil(t, e.Python)
	assert.Empty(t, e.Python)
	assert.Equal(t, []string{"Makefile"}, e.Make)
	assert.Len(t, e.Groups(), 4)
}
