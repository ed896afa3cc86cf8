package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectionIsInternal(t *testing.T) {
	var unconnected *Connection
	assert.False(t, unconnected.IsInternal(), "no connection at all")

	boundary := &Connection{Node: nil, Output: "in"}
	assert.False(t, boundary.IsInternal(), "graph-boundary connections are not internal")

	internal := &Connection{Node: &Node{Name: "A"}, Output: "out"}
	assert.True(t, internal.IsInternal())
}
