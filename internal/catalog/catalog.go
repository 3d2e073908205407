// internal/catalog/catalog.go
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type Option struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

type ClothingType struct {
	Option   `yaml:",inline"`
	SubTypes []Option `yaml:"sub_types" json:"subTypes,omitempty"`
}

type Field struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

type MeasurementType struct {
	Option `yaml:",inline"`
	Fields []Field `yaml:"fields" json:"fields"`
}

// Catalog lists what the shop sells and what it measures.
type Catalog struct {
	ClothingTypes    []ClothingType    `yaml:"clothing_types" json:"clothingTypes"`
	MeasurementTypes []MeasurementType `yaml:"measurement_types" json:"measurementTypes"`
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog file, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(c.MeasurementTypes) == 0 {
		return nil, fmt.Errorf("catalog has no measurement types")
	}
	for _, mt := range c.MeasurementTypes {
		if len(mt.Fields) == 0 {
			return nil, fmt.Errorf("measurement type %s has no fields", mt.Value)
		}
	}
	return &c, nil
}

// MeasurementType looks up a type by its lowercase value ("top").
func (c *Catalog) MeasurementType(value string) (MeasurementType, bool) {
	for _, mt := range c.MeasurementTypes {
		if mt.Value == value {
			return mt, true
		}
	}
	return MeasurementType{}, false
}

func (c *Catalog) ClothingType(value string) (ClothingType, bool) {
	for _, ct := range c.ClothingTypes {
		if ct.Value == value {
			return ct, true
		}
	}
	return ClothingType{}, false
}

// HasSubType reports whether sub is listed for the clothing type. Types
// without sub-types accept anything.
func (ct ClothingType) HasSubType(sub string) bool {
	if len(ct.SubTypes) == 0 {
		return true
	}
	for _, s := range ct.SubTypes {
		if s.Value == sub {
			return true
		}
	}
	return false
}
