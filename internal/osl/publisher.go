package osl

import (
	"github.com/vk/oslnodes/internal/graph"
	"github.com/vk/oslnodes/internal/shader"
)

// Identifiers for the OSL variable blocks.
const (
	UniformsBlock = "u"
	InputsBlock   = "i"
	OutputsBlock  = "o"
)

// Publisher constructs a shader's published surface from the graph's
// interface sockets.
type Publisher struct{}

// Publish creates the pixel stage with its variable blocks and populates
// them. The uniform block receives a graph input socket only when it is
// both read by at least one internal node and marked editable by the
// authoring policy; unused or locked knobs are deliberately omitted. The
// output block receives every graph output socket regardless of connection
// state.
func (Publisher) Publish(g *graph.Graph, sh *shader.Shader) *shader.Stage {
	stage := sh.CreateStage(shader.PixelStage)
	uniforms := stage.CreateBlock(UniformsBlock)
	stage.CreateBlock(InputsBlock)
	outputs := stage.CreateBlock(OutputsBlock)

	for _, socket := range g.InputSockets {
		if socket.Connected && socket.Editable {
			uniforms.Add(socket)
		}
	}
	for _, socket := range g.OutputSockets {
		outputs.Add(socket)
	}

	return stage
}
