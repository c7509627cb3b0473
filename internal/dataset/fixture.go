package dataset

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed sample.yaml
var sampleYAML []byte

// ErrInvalidFixture reports a fixture that fails schema validation.
var ErrInvalidFixture = errors.New("invalid recipe fixture")

// Fixture is the packaging-time description of a recipe dataset.
// json tags drive CUE validation; yaml tags drive the file format.
type Fixture struct {
	Recipes []Recipe `yaml:"recipes" json:"recipes,omitempty"`
}

// Recipe is one recipe with its owned rows.
type Recipe struct {
	ID           string       `yaml:"id" json:"id"`
	Title        string       `yaml:"title" json:"title"`
	Description  string       `yaml:"description,omitempty" json:"description,omitempty"`
	Photo        string       `yaml:"photo,omitempty" json:"photo,omitempty"`
	PrepTime     string       `yaml:"prep_time,omitempty" json:"prep_time,omitempty"`
	Ingredients  []Ingredient `yaml:"ingredients,omitempty" json:"ingredients,omitempty"`
	Instructions []Step       `yaml:"instructions,omitempty" json:"instructions,omitempty"`
}

// Ingredient is an amount/description pair.
type Ingredient struct {
	Amount      string `yaml:"amount" json:"amount"`
	Description string `yaml:"description" json:"description"`
}

// Step is one instruction. A zero StepNumber is filled from list position.
type Step struct {
	StepNumber  int    `yaml:"step_number,omitempty" json:"step_number,omitempty"`
	Description string `yaml:"description" json:"description"`
	Photo       string `yaml:"photo,omitempty" json:"photo,omitempty"`
}

// ParseFixture decodes and validates a YAML fixture.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: decode yaml: %v", ErrInvalidFixture, err)
	}
	if err := Validate(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFixture reads and validates the fixture file at path.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(data)
}

// Sample returns the fixture bundled with the module. Tests and
// `applink build --sample` package it.
func Sample() *Fixture {
	f, err := ParseFixture(sampleYAML)
	if err != nil {
		panic(fmt.Sprintf("bundled sample fixture: %v", err))
	}
	return f
}
