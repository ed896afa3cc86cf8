// Package osl emits OSL shader-network descriptions from node graphs. The
// output is the line-oriented param/shader/connect format consumed by the
// external oslc toolchain.
package osl

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vk/oslnodes/internal/ctxlog"
	"github.com/vk/oslnodes/internal/graph"
	"github.com/vk/oslnodes/internal/library"
	"github.com/vk/oslnodes/internal/shader"
)

// ErrMissingImplementation is returned when a node's definition provides no
// implementation for the generator's target. A single broken node
// invalidates the whole network.
var ErrMissingImplementation = errors.New("no implementation for target")

// closureInputExceptions lists closure-typed inputs that upstream default
// detection fails to prune.
// FIXME: remove once upstream isDefault covers these.
var closureInputExceptions = map[string]struct{}{
	"backsurfaceshader":  {},
	"displacementshader": {},
}

// Generator walks one shader network and emits parameter, instance and
// connection statements. It appends only to the shader under construction;
// the graph is a borrowed, read-only view.
type Generator struct {
	variant   Variant
	publisher Publisher
}

// NewGenerator creates a generator for the given variant.
func NewGenerator(v Variant) *Generator {
	return &Generator{variant: v}
}

// Variant returns the generator's configuration.
func (gen *Generator) Variant() Variant {
	return gen.variant
}

// Generate emits the network description for g. All parameter and instance
// statements are written in graph order; connection statements are deferred
// and flushed after the last declaration, in discovery order. The returned
// shader carries the deduplicated implementation source directories in its
// include-paths attribute.
//
// A node whose definition lacks an implementation for the active target
// fails the whole network: no shader is returned.
func (gen *Generator) Generate(ctx context.Context, name string, g *graph.Graph, doc *library.Document) (*shader.Shader, error) {
	logger := ctxlog.FromContext(ctx)

	sh := shader.New(name)
	stage := gen.publisher.Publish(g, sh)

	includeDirs := make(map[string]struct{})
	var connections []string
	var lastNode *graph.Node

	for _, node := range g.Nodes {
		for _, input := range node.Inputs {
			if input.Default {
				continue
			}

			if input.Connection.IsInternal() {
				from := input.Connection
				connections = append(connections, fmt.Sprintf("connect %s.%s %s.%s ;",
					from.Node.Name, SanitizeName(from.Output), node.Name, input.Name))
				continue
			}

			// Unconnected, or fed straight from the graph boundary: the
			// literal parameter path.
			if _, skip := closureInputExceptions[input.Name]; skip {
				continue
			}
			value, ok := ValueString(input.Type, input.Value)
			if !ok {
				continue
			}
			stage.EmitLine(fmt.Sprintf("param %s %s %s ;",
				TypeName(input.Type), SanitizeName(input.Name), value))
		}

		impl := gen.implementationFor(doc, node)
		if impl == nil {
			logger.Debug("Node definition has no implementation for target.",
				"node", node.Name, "definition", node.DefName, "target", gen.variant.Target)
			return nil, fmt.Errorf("node %q (definition %q): %w",
				node.Name, node.DefName, ErrMissingImplementation)
		}

		includeDirs[filepath.Dir(impl.Source)] = struct{}{}
		stage.EmitLine(fmt.Sprintf("shader %s %s ;", impl.EntryPoint, node.Name))
		lastNode = node
	}

	for _, line := range connections {
		stage.EmitLine(line)
	}

	if gen.variant.EmitSink && lastNode != nil {
		stage.EmitLine(fmt.Sprintf("shader %s %s ;",
			gen.variant.SinkEntryPoint, gen.variant.SinkInstance))
		stage.EmitLine(fmt.Sprintf("connect %s.%s %s.%s ;",
			lastNode.Name, SanitizeName(lastNode.Output.Name),
			gen.variant.SinkInstance, gen.variant.SinkInput))
	}

	sh.SetAttribute(shader.AttrIncludePaths, joinIncludeDirs(includeDirs))
	return sh, nil
}

func (gen *Generator) implementationFor(doc *library.Document, node *graph.Node) *library.Implementation {
	def := doc.NodeDef(node.DefName)
	if def == nil {
		return nil
	}
	return def.Implementation(gen.variant.Target)
}

// joinIncludeDirs flattens the directory set into a sorted, comma-joined
// string so that the attribute is identical for any node visit order.
func joinIncludeDirs(dirs map[string]struct{}) string {
	cleaned := make([]string, 0, len(dirs))
	for dir := range dirs {
		cleaned = append(cleaned, filepath.Clean(dir))
	}
	sort.Strings(cleaned)
	return strings.Join(cleaned, ",")
}
