// Package library loads node-definition catalogs from HCL documents and
// manages the transient node instances the batch driver wraps around them.
package library

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/oslnodes/internal/graph"
)

// InputDef describes one input port of a node definition.
type InputDef struct {
	Name        string
	Type        string
	Description string

	// Default is the definition's default value, or cty.NilVal when the
	// input has none.
	Default cty.Value

	// Editable reports whether the authoring layer exposes the input as a
	// user-tweakable knob. Defaults to true.
	Editable bool
}

// OutputDef describes one output port of a node definition.
type OutputDef struct {
	Name        string
	Type        string
	Description string
}

// Implementation maps a node definition to an entry-point function and a
// source file for one target. Source is an absolute path, resolved against
// the library root at load time.
type Implementation struct {
	Target     string
	EntryPoint string
	Source     string
}

// NodeDef is one catalog entry: the node interface plus its per-target
// implementations.
type NodeDef struct {
	Name        string
	Node        string
	Description string
	Inputs      []*InputDef
	Outputs     []*OutputDef

	implementations map[string]*Implementation
}

// Implementation returns the implementation for the given target, or nil
// when the definition does not support it.
func (d *NodeDef) Implementation(target string) *Implementation {
	return d.implementations[target]
}

// AddImplementation registers (or replaces) the implementation for its
// target.
func (d *NodeDef) AddImplementation(impl *Implementation) {
	if d.implementations == nil {
		d.implementations = make(map[string]*Implementation)
	}
	d.implementations[impl.Target] = impl
}

// Document is a loaded library catalog. It is created once by the caller;
// the batch driver mutates it only transiently, adding and removing one
// node instance per iteration.
type Document struct {
	targets   []string
	defs      []*NodeDef
	defIndex  map[string]*NodeDef
	instances map[string]*graph.Graph
}

// NewDocument creates an empty library document.
func NewDocument() *Document {
	return &Document{
		defIndex:  make(map[string]*NodeDef),
		instances: make(map[string]*graph.Graph),
	}
}

// Targets returns the declared target identifiers in load order.
func (doc *Document) Targets() []string {
	return doc.targets
}

// HasTarget reports whether the named target was declared by any loaded
// library.
func (doc *Document) HasTarget(name string) bool {
	for _, t := range doc.targets {
		if t == name {
			return true
		}
	}
	return false
}

// NodeDefs returns the catalog entries in load order.
func (doc *Document) NodeDefs() []*NodeDef {
	return doc.defs
}

// NodeDef returns the named catalog entry, or nil.
func (doc *Document) NodeDef(name string) *NodeDef {
	return doc.defIndex[name]
}

func (doc *Document) addTarget(name string) {
	if !doc.HasTarget(name) {
		doc.targets = append(doc.targets, name)
	}
}

// AddNodeDef registers a catalog entry. A definition with a known name
// replaces the previous entry but keeps its position in catalog order.
func (doc *Document) AddNodeDef(def *NodeDef) {
	if _, ok := doc.defIndex[def.Name]; !ok {
		doc.defs = append(doc.defs, def)
	} else {
		for i, d := range doc.defs {
			if d.Name == def.Name {
				doc.defs[i] = def
				break
			}
		}
	}
	doc.defIndex[def.Name] = def
}

// AddNodeInstance wraps the definition in a temporary single-node network
// registered under the given instance name. The instance's inputs all carry
// their definition defaults, and the graph interface republishes the
// definition's ports.
func (doc *Document) AddNodeInstance(def *NodeDef, name string) (*graph.Graph, error) {
	if _, ok := doc.instances[name]; ok {
		return nil, fmt.Errorf("library: node instance %q already exists", name)
	}
	if len(def.Outputs) == 0 {
		return nil, fmt.Errorf("library: node definition %q declares no outputs", def.Name)
	}

	node := &graph.Node{
		Name:    name,
		DefName: def.Name,
		Output: graph.Output{
			Name: def.Outputs[0].Name,
			Type: def.Outputs[0].Type,
		},
	}
	g := &graph.Graph{Name: name, Nodes: []*graph.Node{node}}

	for _, in := range def.Inputs {
		node.Inputs = append(node.Inputs, &graph.Input{
			Name:    in.Name,
			Type:    in.Type,
			Value:   in.Default,
			Default: true,
		})
		g.InputSockets = append(g.InputSockets, &graph.Socket{
			Name:     in.Name,
			Type:     in.Type,
			Editable: in.Editable,
		})
	}
	for _, out := range def.Outputs {
		g.OutputSockets = append(g.OutputSockets, &graph.Socket{
			Name: out.Name,
			Type: out.Type,
		})
	}

	doc.instances[name] = g
	return g, nil
}

// RemoveNodeInstance drops a transient instance from the document. Removing
// an unknown instance is a no-op.
func (doc *Document) RemoveNodeInstance(name string) {
	delete(doc.instances, name)
}

// InstanceCount returns the number of live transient instances.
func (doc *Document) InstanceCount() int {
	return len(doc.instances)
}
