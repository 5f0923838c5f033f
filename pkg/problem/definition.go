// Package problem loads search problems from YAML or JSON files and solves
// them without the caller knowing the concrete state type.
//
// A problem names a kind (taquin, blocks), a heuristic known to that kind, an
// optional step cost and kind-specific params:
//
//	problems:
//	  - name: machine-3
//	    kind: blocks
//	    heuristic: heuristic1
//	    step_cost: 1
//	    params:
//	      max_stacks: 3
//	      start: {arm: "", stacks: [[C, A], [B]]}
//	      goal:  {stacks: [[A, B, C]]}
package problem

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownKind is returned when no kind is registered under a name.
	ErrUnknownKind = errors.New("unknown problem kind")
	// ErrUnknownHeuristic is returned when a kind has no heuristic under a name.
	ErrUnknownHeuristic = errors.New("unknown heuristic")
	// ErrInvalidDefinition is returned for malformed problem definitions.
	ErrInvalidDefinition = errors.New("invalid problem definition")
	// ErrExpansionLimit is returned when a search hits Config.MaxExpansions.
	ErrExpansionLimit = errors.New("expansion limit reached")
)

// DefaultStepCost is used when a definition omits step_cost.
const DefaultStepCost = 1.0

// Definition describes one problem to solve.
type Definition struct {
	Name      string         `yaml:"name" json:"name"`
	Kind      string         `yaml:"kind" json:"kind"`
	Heuristic string         `yaml:"heuristic,omitempty" json:"heuristic,omitempty"`
	StepCost  *float64       `yaml:"step_cost,omitempty" json:"step_cost,omitempty"`
	Params    map[string]any `yaml:"params" json:"params"`
}

// Cost returns the step cost, DefaultStepCost when unset.
func (d Definition) Cost() float64 {
	if d.StepCost == nil {
		return DefaultStepCost
	}
	return *d.StepCost
}

// File is the top-level structure of a problem file.
type File struct {
	Problems []Definition `yaml:"problems" json:"problems"`
}

// Load reads a problem file. Files ending in .json are decoded as JSON,
// anything else as YAML.
func Load(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read problem file: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes problem definitions. ext selects the format (".json" or YAML).
func Parse(data []byte, ext string) ([]Definition, error) {
	var f File
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse problems json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse problems yaml: %w", err)
		}
	}

	seen := make(map[string]bool, len(f.Problems))
	for i, d := range f.Problems {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("problem #%d: %w", i, err)
		}
		if seen[d.Name] {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidDefinition, d.Name)
		}
		seen[d.Name] = true
	}
	return f.Problems, nil
}

// Validate checks the fields shared by every kind.
func (d Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidDefinition)
	}
	// Names double as output file names.
	if strings.ContainsAny(d.Name, `/\`) || !filepath.IsLocal(d.Name) {
		return fmt.Errorf("%w: name %q must be a plain file name", ErrInvalidDefinition, d.Name)
	}
	if d.Kind == "" {
		return fmt.Errorf("%w: %s: missing kind", ErrInvalidDefinition, d.Name)
	}
	if d.StepCost != nil && !(*d.StepCost >= 0) {
		return fmt.Errorf("%w: %s: step_cost must be non-negative, got %v", ErrInvalidDefinition, d.Name, *d.StepCost)
	}
	return nil
}

// decodeParams decodes the free-form params of a definition into out.
// Numbers are coerced and unknown keys are rejected.
func decodeParams(d Definition, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(d.Params); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidDefinition, d.Name, err)
	}
	return nil
}
