package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func mixDef() *NodeDef {
	return &NodeDef{
		Name: "ND_mix_color3",
		Node: "mix",
		Inputs: []*InputDef{
			{Name: "fg", Type: "color3", Editable: true, Default: cty.NumberFloatVal(1)},
			{Name: "mix", Type: "float", Editable: false},
		},
		Outputs: []*OutputDef{
			{Name: "out", Type: "color3"},
		},
	}
}

func TestAddNodeInstance(t *testing.T) {
	doc := NewDocument()
	def := mixDef()

	g, err := doc.AddNodeInstance(def, "mix_color3")
	require.NoError(t, err)
	require.Equal(t, 1, doc.InstanceCount())

	require.Len(t, g.Nodes, 1)
	node := g.Nodes[0]
	assert.Equal(t, "mix_color3", node.Name)
	assert.Equal(t, "ND_mix_color3", node.DefName)
	assert.Equal(t, "out", node.Output.Name)

	require.Len(t, node.Inputs, 2)
	for _, in := range node.Inputs {
		assert.True(t, in.Default, "instance inputs carry their definition defaults")
		assert.Nil(t, in.Connection)
	}
	assert.True(t, node.Inputs[0].Value.RawEquals(cty.NumberFloatVal(1)))

	require.Len(t, g.InputSockets, 2)
	assert.True(t, g.InputSockets[0].Editable)
	assert.False(t, g.InputSockets[1].Editable)
	require.Len(t, g.OutputSockets, 1)
}

func TestAddNodeInstance_NameCollision(t *testing.T) {
	doc := NewDocument()
	def := mixDef()

	_, err := doc.AddNodeInstance(def, "mix_color3")
	require.NoError(t, err)

	_, err = doc.AddNodeInstance(def, "mix_color3")
	require.Error(t, err, "duplicate instance names collide")
}

func TestRemoveNodeInstance(t *testing.T) {
	doc := NewDocument()
	def := mixDef()

	_, err := doc.AddNodeInstance(def, "mix_color3")
	require.NoError(t, err)

	doc.RemoveNodeInstance("mix_color3")
	assert.Equal(t, 0, doc.InstanceCount())

	// Add/remove cycles never collide, which is what keeps batch
	// iterations independent.
	_, err = doc.AddNodeInstance(def, "mix_color3")
	require.NoError(t, err)
	doc.RemoveNodeInstance("mix_color3")

	// Removing an unknown instance is a no-op.
	doc.RemoveNodeInstance("never_added")
}

func TestAddNodeInstance_NoOutputs(t *testing.T) {
	doc := NewDocument()
	def := &NodeDef{Name: "ND_broken", Node: "broken"}

	_, err := doc.AddNodeInstance(def, "broken")
	require.Error(t, err)
	assert.Equal(t, 0, doc.InstanceCount())
}
