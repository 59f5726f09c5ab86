package config

import "github.com/zclconf/go-cty/cty"

// Model is the unified, format-agnostic representation of a tasks directory:
// the optional allow-list definition plus every declared task.
type Model struct {
	Allow *AllowDefinition
	Tasks []*TaskDefinition
}

// AllowDefinition is the format-agnostic representation of an 'allowlist'
// block.
type AllowDefinition struct {
	Tasks        []string
	RegisterPre  bool
	RegisterPost bool
}

// TaskDefinition is the format-agnostic representation of a 'task' block:
// a named task and the handler bindings of its three phases.
type TaskDefinition struct {
	Name        string
	Description string
	Pre         []*HandlerBinding
	Main        []*HandlerBinding
	Post        []*HandlerBinding
}

// HandlerBinding names a registered handler kind and carries its declared
// arguments, already evaluated to concrete values.
type HandlerBinding struct {
	Kind string
	Args map[string]cty.Value
}

// TaskNames returns the declared task names in declaration order.
func (m *Model) TaskNames() []string {
	names := make([]string, len(m.Tasks))
	for i, t := range m.Tasks {
		names[i] = t.Name
	}
	return names
}
