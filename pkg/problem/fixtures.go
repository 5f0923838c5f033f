package problem

import (
	_ "embed"
)

//go:embed fixtures/demo.yaml
var demoYAML []byte

// Demo returns the built-in demo problems: block worlds of three and five
// blocks under several heuristics and step costs, and a 3x3 taquin solved
// with Hamming and Manhattan.
func Demo() []Definition {
	defs, err := Parse(demoYAML, ".yaml")
	if err != nil {
		panic("problem: invalid embedded demo fixtures: " + err.Error())
	}
	return defs
}
