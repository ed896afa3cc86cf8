package osl

import "strings"

// Variant parameterizes the generator. The observed generator flavors share
// one algorithm and differ only in naming convention and whether a test
// sink is appended to the network.
type Variant struct {
	// Target selects which per-target implementation a node definition
	// must provide.
	Target string

	// DefinitionPrefix is the namespace prefix stripped from definition
	// names when deriving public names.
	DefinitionPrefix string

	// EmitSink appends a synthetic sink instance wired to the last node's
	// primary output, guaranteeing an observable terminal value. Test
	// support only; never part of normal generation.
	EmitSink       bool
	SinkEntryPoint string
	SinkInstance   string
	SinkInput      string
}

// Default is the production generator configuration.
var Default = Variant{
	Target:           "genosl",
	DefinitionPrefix: "ND_",
}

// Testing is the render-test configuration: identical to Default but with
// the terminal sink enabled.
var Testing = Variant{
	Target:           "genosl",
	DefinitionPrefix: "ND_",
	EmitSink:         true,
	SinkEntryPoint:   "test_sink",
	SinkInstance:     "out_sink",
	SinkInput:        "in",
}

// PublicName derives the public name of a definition by stripping the
// variant's namespace prefix when present.
func (v Variant) PublicName(defName string) string {
	if v.DefinitionPrefix != "" && len(defName) > len(v.DefinitionPrefix) {
		if strings.HasPrefix(defName, v.DefinitionPrefix) {
			return defName[len(v.DefinitionPrefix):]
		}
	}
	return defName
}
