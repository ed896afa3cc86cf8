// Package shader holds the in-memory result of a generation run: the staged
// source text, the published variable blocks, and free-form metadata
// attributes consumed by the compile step.
package shader

import (
	"fmt"
	"strings"

	"github.com/vk/oslnodes/internal/graph"
)

// PixelStage is the only stage the OSL generators populate.
const PixelStage = "pixel"

// AttrIncludePaths names the attribute carrying the comma-joined set of
// implementation source directories required to compile the network.
const AttrIncludePaths = "include_paths"

// Shader is one generation result. It is created per generation call,
// written out, and discarded; no concurrent writers are contemplated.
type Shader struct {
	Name string

	stages     map[string]*Stage
	stageOrder []string
	attributes map[string]string
}

// New creates an empty shader with the given name.
func New(name string) *Shader {
	return &Shader{
		Name:       name,
		stages:     make(map[string]*Stage),
		attributes: make(map[string]string),
	}
}

// CreateStage adds a new named stage and returns it. Creating the same stage
// twice is a programmer error.
func (s *Shader) CreateStage(name string) *Stage {
	if _, ok := s.stages[name]; ok {
		panic(fmt.Sprintf("shader: stage %q already exists", name))
	}
	st := &Stage{Name: name, blocks: make(map[string]*VariableBlock)}
	s.stages[name] = st
	s.stageOrder = append(s.stageOrder, name)
	return st
}

// Stage returns the named stage, or nil if it was never created.
func (s *Shader) Stage(name string) *Stage {
	return s.stages[name]
}

// SetAttribute records a metadata attribute on the shader.
func (s *Shader) SetAttribute(name, value string) {
	s.attributes[name] = value
}

// Attribute returns a metadata attribute, or "" when unset.
func (s *Shader) Attribute(name string) string {
	return s.attributes[name]
}

// SourceCode returns the concatenated source text of all stages in creation
// order.
func (s *Shader) SourceCode() string {
	var b strings.Builder
	for _, name := range s.stageOrder {
		b.WriteString(s.stages[name].Source())
	}
	return b.String()
}

// Stage is one named portion of the generated output with its own source
// text and variable blocks.
type Stage struct {
	Name string

	lines  []string
	blocks map[string]*VariableBlock
}

// EmitLine appends one line of source text to the stage.
func (st *Stage) EmitLine(line string) {
	st.lines = append(st.lines, line)
}

// Source returns the stage's source text, one emitted line per row.
func (st *Stage) Source() string {
	if len(st.lines) == 0 {
		return ""
	}
	return strings.Join(st.lines, "\n") + "\n"
}

// Lines returns the emitted lines in order.
func (st *Stage) Lines() []string {
	return st.lines
}

// CreateBlock adds a named variable block to the stage and returns it.
func (st *Stage) CreateBlock(name string) *VariableBlock {
	if _, ok := st.blocks[name]; ok {
		panic(fmt.Sprintf("shader: block %q already exists", name))
	}
	b := &VariableBlock{Name: name}
	st.blocks[name] = b
	return b
}

// Block returns the named variable block, or nil if it was never created.
func (st *Stage) Block(name string) *VariableBlock {
	return st.blocks[name]
}

// VariableBlock is a named grouping of interface sockets published on a
// stage (uniforms, inputs, or outputs).
type VariableBlock struct {
	Name    string
	Sockets []*graph.Socket
}

// Add appends a socket to the block.
func (b *VariableBlock) Add(s *graph.Socket) {
	b.Sockets = append(b.Sockets, s)
}
