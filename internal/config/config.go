// Package config loads tinfer's small solver/REPL configuration document.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Solver holds the tunables the solver's recursion guard and ambiguity
// policy read from.
type Solver struct {
	// MaxDepth bounds the solver's recursion depth as a safety valve on
	// top of the natural (disjunctions × free variables × decomposition
	// depth) bound spec §5 describes. Zero means unbounded.
	MaxDepth int `yaml:"max_depth"`

	// GenerateConstraintsWhenAmbiguous mirrors the single injection point
	// spec §9 flags as an open question ("isViableBinding is always true
	// in the source"): left here as one configurable knob rather than a
	// guessed policy.
	GenerateConstraintsWhenAmbiguous bool `yaml:"generate_constraints_when_ambiguous"`
}

// REPL holds the interactive shell's prompt configuration.
type REPL struct {
	Prompt string `yaml:"prompt"`
}

// Config is the top-level tinfer configuration document.
type Config struct {
	Solver Solver `yaml:"solver"`
	REPL   REPL   `yaml:"repl"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Solver: Solver{
			MaxDepth:                         0,
			GenerateConstraintsWhenAmbiguous: true,
		},
		REPL: REPL{Prompt: "tinfer> "},
	}
}

// Load reads and parses a YAML config file at path. A missing file is not
// an error; Default() is returned instead.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
