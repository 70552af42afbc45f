// Package config loads the query fixture cmd/arcvm-debugdump runs
// against a compiled module: a YAML file naming a batch of
// address-to-location and location-to-address lookups to perform and
// print.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AddressQuery asks for the source location at Offset within the
// function named Function (GetLocationForAddress, run against that
// function's debug offset).
type AddressQuery struct {
	Function string `yaml:"function"`
	Offset   uint32 `yaml:"offset"`
}

// LocationQuery asks for the first address matching Filename/Line
// (and, if Column is non-zero, Column) (GetAddressForLocation).
type LocationQuery struct {
	Filename string `yaml:"filename"`
	Line     int64  `yaml:"line"`
	Column   int32  `yaml:"column"`
}

// Fixture is the on-disk shape of a query batch.
type Fixture struct {
	Source     string          `yaml:"source"`
	Addresses  []AddressQuery  `yaml:"addresses"`
	Locations  []LocationQuery `yaml:"locations"`
	SourceRoot string          `yaml:"sourceRoot"`
}

// LoadFixture parses a query fixture from disk.
func LoadFixture(path string) (*Fixture, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty fixture path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", abs, err)
	}

	var fixture Fixture
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fixture); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", abs, err)
	}
	return &fixture, nil
}
