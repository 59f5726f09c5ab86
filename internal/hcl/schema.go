package hcl

import "github.com/hashicorp/hcl/v2"

// rootSchema defines the top-level structure of a manifest file: at most one
// 'allowlist' block plus any number of 'task' blocks.
type rootSchema struct {
	Allow *allowBlock  `hcl:"allowlist,block"`
	Tasks []*taskBlock `hcl:"task,block"`
}

// allowBlock represents an 'allowlist' block for decoding purposes.
type allowBlock struct {
	Tasks        []string `hcl:"tasks"`
	RegisterPre  bool     `hcl:"register_pre,optional"`
	RegisterPost bool     `hcl:"register_post,optional"`
}

// taskBlock represents a single 'task' block.
type taskBlock struct {
	Name        string      `hcl:"name,label"`
	Description string      `hcl:"description,optional"`
	Pre         *phaseBlock `hcl:"pre,block"`
	Main        *phaseBlock `hcl:"main,block"`
	Post        *phaseBlock `hcl:"post,block"`
}

// phaseBlock groups the handler bindings of one phase.
type phaseBlock struct {
	Handlers []*handlerBlock `hcl:"handler,block"`
}

// handlerBlock names a handler kind; its remaining attributes are the
// handler's arguments.
type handlerBlock struct {
	Kind string   `hcl:"kind,label"`
	Body hcl.Body `hcl:",remain"`
}
