package osl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"in", "in"},
		{"base_color", "base_color"},
		{"mix:weight", "mix_weight"},
		{"uv coord", "uv_coord"},
		{"2sided", "_2sided"},
		{"", "_"},
		{"Käse", "K_se"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SanitizeName(tc.in), "SanitizeName(%q)", tc.in)
	}
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "color", TypeName("color3"))
	assert.Equal(t, "vector", TypeName("vector3"))
	assert.Equal(t, "int", TypeName("integer"))
	assert.Equal(t, "string", TypeName("filename"))
	assert.Equal(t, "closure color", TypeName("surfaceshader"))
	assert.Equal(t, "custom", TypeName("custom"), "unknown types pass through")
}

func TestValueString(t *testing.T) {
	t.Run("fixed float notation", func(t *testing.T) {
		got, ok := ValueString("float", cty.NumberFloatVal(1))
		require.True(t, ok)
		assert.Equal(t, "1.000000", got)

		got, ok = ValueString("float", cty.NumberFloatVal(0.5))
		require.True(t, ok)
		assert.Equal(t, "0.500000", got)
	})

	t.Run("integer", func(t *testing.T) {
		got, ok := ValueString("integer", cty.NumberIntVal(7))
		require.True(t, ok)
		assert.Equal(t, "7", got)
	})

	t.Run("boolean", func(t *testing.T) {
		got, ok := ValueString("boolean", cty.True)
		require.True(t, ok)
		assert.Equal(t, "1", got)
	})

	t.Run("string quoted", func(t *testing.T) {
		got, ok := ValueString("string", cty.StringVal("uv0"))
		require.True(t, ok)
		assert.Equal(t, `"uv0"`, got)
	})

	t.Run("aggregate constructor", func(t *testing.T) {
		val := cty.TupleVal([]cty.Value{
			cty.NumberFloatVal(0.1), cty.NumberFloatVal(0.2), cty.NumberFloatVal(0.3),
		})
		got, ok := ValueString("vector3", val)
		require.True(t, ok)
		assert.Equal(t, "vector(0.100000, 0.200000, 0.300000)", got)
	})

	t.Run("no-op sentinel suppressed", func(t *testing.T) {
		_, ok := ValueString("string", cty.StringVal("None"))
		assert.False(t, ok)
	})

	t.Run("absent value suppressed", func(t *testing.T) {
		_, ok := ValueString("float", cty.NilVal)
		assert.False(t, ok)

		_, ok = ValueString("float", cty.NullVal(cty.Number))
		assert.False(t, ok)
	})

	t.Run("closure aggregates have no constructor", func(t *testing.T) {
		val := cty.TupleVal([]cty.Value{cty.NumberIntVal(0)})
		_, ok := ValueString("surfaceshader", val)
		assert.False(t, ok)
	})
}

func TestVariantPublicName(t *testing.T) {
	assert.Equal(t, "mix_color3", Default.PublicName("ND_mix_color3"))
	assert.Equal(t, "mix_color3", Default.PublicName("mix_color3"), "unprefixed names pass through")
	assert.Equal(t, "ND_", Default.PublicName("ND_"), "a bare prefix is not stripped")
}
