package types

import "strings"

// Stack is the primary toolchain of a repository.
type Stack string

// Known stacks. Only Python, Node and Static have their own templates.
const (
	StackPython Stack = "python"
	StackNode   Stack = "node"
	StackStatic Stack = "static"
	StackMixed  Stack = "mixed"
)

// String returns the string representation of a stack.
func (s Stack) String() string {
	return string(s)
}

// Stacks returns every stack that has dedicated templates.
func Stacks() []Stack {
	return []Stack{StackPython, StackNode, StackStatic}
}

// HasTemplates reports whether s selects its own template set.
func (s Stack) HasTemplates() bool {
	switch s {
	case StackPython, StackNode, StackStatic:
		return true
	}
	return false
}

// IsValid reports whether s is a known stack, including mixed.
func (s Stack) IsValid() bool {
	return s.HasTemplates() || s == StackMixed
}

// TemplateStack returns the template set used to render s: unknown and mixed
// repositories render with the static templates.
func (s Stack) TemplateStack() Stack {
	if s.HasTemplates() {
		return s
	}
	return StackStatic
}

// ParseStack lower-cases and trims a user supplied stack name.
func ParseStack(s string) Stack {
	return Stack(strings.ToLower(strings.TrimSpace(s)))
}
