package library

import "github.com/hashicorp/hcl/v2"

// --- Library document schemas ---

// targetSchema represents a `target` block declaring a generation backend
// identifier. The targets library consists of these.
type targetSchema struct {
	Name string `hcl:"name,label"`
}

// inputSchema represents an `input` block within a nodedef.
type inputSchema struct {
	Name        string         `hcl:"name,label"`
	Type        string         `hcl:"type"`
	Default     hcl.Expression `hcl:"default,optional"`
	Editable    *bool          `hcl:"editable,optional"`
	Description string         `hcl:"description,optional"`
}

// outputSchema represents an `output` block within a nodedef.
type outputSchema struct {
	Name        string `hcl:"name,label"`
	Type        string `hcl:"type"`
	Description string `hcl:"description,optional"`
}

// implementationSchema represents an `implementation` block mapping a
// nodedef to an entry point and source file for one target.
type implementationSchema struct {
	Target     string `hcl:"target,label"`
	EntryPoint string `hcl:"entry_point"`
	Source     string `hcl:"source"`
}

// nodeDefSchema represents a `nodedef` catalog entry.
type nodeDefSchema struct {
	Name            string                  `hcl:"name,label"`
	Node            string                  `hcl:"node"`
	Description     string                  `hcl:"description,optional"`
	Inputs          []*inputSchema          `hcl:"input,block"`
	Outputs         []*outputSchema         `hcl:"output,block"`
	Implementations []*implementationSchema `hcl:"implementation,block"`
}

// fileRoot is used to decode all recognized top-level blocks from any
// library file.
type fileRoot struct {
	Targets  []*targetSchema  `hcl:"target,block"`
	NodeDefs []*nodeDefSchema `hcl:"nodedef,block"`
	Remain   hcl.Body         `hcl:",remain"`
}
