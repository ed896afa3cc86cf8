package osl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// typeNames maps catalog type names to their OSL spellings. Unknown types
// pass through unchanged.
var typeNames = map[string]string{
	"float":              "float",
	"integer":            "int",
	"boolean":            "int",
	"color3":             "color",
	"color4":             "color4",
	"vector2":            "vector2",
	"vector3":            "vector",
	"vector4":            "vector4",
	"matrix33":           "matrix",
	"matrix44":           "matrix",
	"string":             "string",
	"filename":           "string",
	"surfaceshader":      "closure color",
	"displacementshader": "closure color",
	"volumeshader":       "closure color",
	"lightshader":        "closure color",
}

// TypeName returns the OSL type name for a catalog type.
func TypeName(defType string) string {
	if name, ok := typeNames[defType]; ok {
		return name
	}
	return defType
}

// noOpValue is the sentinel upstream uses for unset geometric defaults.
// FIXME: drop once upstream stops handing these through as literals.
const noOpValue = "None"

// SanitizeName rewrites a port name into a valid OSL identifier: every
// character outside [A-Za-z0-9_] becomes an underscore, and a leading digit
// gets an underscore prefix.
func SanitizeName(name string) string {
	if name == "" {
		return "_"
	}
	var b strings.Builder
	b.Grow(len(name) + 1)
	for i, r := range name {
		valid := r == '_' ||
			(r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9')
		if !valid {
			b.WriteByte('_')
			continue
		}
		if i == 0 && r >= '0' && r <= '9' {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ValueString renders a literal value as an OSL initializer for the given
// catalog type. The second return is false when the value is absent or the
// recognized no-op sentinel and no parameter should be emitted.
func ValueString(defType string, v cty.Value) (string, bool) {
	if v.IsNull() {
		return "", false
	}

	switch {
	case v.Type().Equals(cty.String):
		s := v.AsString()
		if s == noOpValue {
			return "", false
		}
		return strconv.Quote(s), true

	case v.Type().Equals(cty.Bool):
		if v.True() {
			return "1", true
		}
		return "0", true

	case v.Type().Equals(cty.Number):
		return numberString(defType, v), true

	case v.Type().IsTupleType() || v.Type().IsListType():
		parts := make([]string, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			parts = append(parts, numberString("float", ev))
		}
		ctor := TypeName(defType)
		if space := strings.IndexByte(ctor, ' '); space >= 0 {
			// Closure types have no constructor syntax; there is nothing
			// meaningful to emit for them.
			return "", false
		}
		return ctor + "(" + strings.Join(parts, ", ") + ")", true
	}

	return "", false
}

// numberString renders a cty number with fixed floating-point notation so
// that output is byte-identical across runs and targets.
func numberString(defType string, v cty.Value) string {
	bf := v.AsBigFloat()
	if defType == "integer" || defType == "boolean" {
		i, _ := bf.Int64()
		return strconv.FormatInt(i, 10)
	}
	f, _ := bf.Float64()
	return fixedFloat(f)
}

func fixedFloat(f float64) string {
	return fmt.Sprintf("%.6f", f)
}
