// Package graph defines the read-only view of a shader network that the
// generators consume. The structures are owned by whoever assembled the
// network (normally the library document); nothing in this module mutates
// them after construction.
package graph

import "github.com/zclconf/go-cty/cty"

// Graph is an ordered shader network. Node order is significant and assumed
// topologically valid: a node's connections only reference earlier nodes or
// the graph's own interface sockets.
type Graph struct {
	Name string

	// Nodes in declaration order.
	Nodes []*Node

	// InputSockets and OutputSockets form the graph's published interface.
	InputSockets  []*Socket
	OutputSockets []*Socket
}

// Node is a single shader node instance inside a graph.
type Node struct {
	// Name is unique within the owning graph.
	Name string

	// DefName references the node definition this instance was created from.
	DefName string

	// Inputs in declaration order.
	Inputs []*Input

	// Output is the node's primary output.
	Output Output
}

// Input is one input port of a node. Exactly one of three states holds:
// default (never emitted), literal-value-only (emitted as a parameter), or
// connected (emitted as a deferred connection).
type Input struct {
	Name string
	Type string

	// Value is the literal value, or cty.NilVal when none is set.
	Value cty.Value

	// Connection is nil for unconnected inputs.
	Connection *Connection

	// Default marks inputs still carrying their definition default.
	Default bool
}

// Output is one output port of a node.
type Output struct {
	Name string
	Type string
}

// Connection references the source of a connected input. A nil Node means
// the connection originates at the graph boundary rather than at an
// internal node.
type Connection struct {
	Node   *Node
	Output string
}

// Socket is a graph-level interface port.
type Socket struct {
	Name string
	Type string

	// Editable reports whether the authoring layer allows users to tweak
	// this socket.
	Editable bool

	// Connected reports whether at least one internal node reads the socket.
	Connected bool
}

// IsInternal reports whether the connection comes from an internal node, as
// opposed to the graph boundary.
func (c *Connection) IsInternal() bool {
	return c != nil && c.Node != nil
}
