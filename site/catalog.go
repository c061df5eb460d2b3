// Package site holds the static facts about the office: where departments
// are, who represents them and quick answers about facilities.
package site

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

// Contact is someone the receptionist can message.
type Contact struct {
	Name       string `yaml:"name"`
	Phone      string `yaml:"phone"`
	EmployeeID string `yaml:"employee_id,omitempty"`
}

// Department is a department and where to find it.
type Department struct {
	Name           string  `yaml:"name"`
	Location       string  `yaml:"location"`
	Representative Contact `yaml:"representative"`
}

// Facility is a canned answer about an amenity.
type Facility struct {
	Name   string `yaml:"name"`
	Answer string `yaml:"answer"`
}

// Company describes the organisation for the knowledge prompt.
type Company struct {
	Name  string `yaml:"name"`
	About string `yaml:"about"`
}

// Catalog is the whole site description.
type Catalog struct {
	Company     Company      `yaml:"company"`
	Departments []Department `yaml:"departments"`
	Facilities  []Facility   `yaml:"facilities"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("site: built-in catalog: %v", err))
	}
	return c
}

// Load reads a catalog file. An empty path returns the built-in catalog.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("site: read %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("site: parse %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	seen := map[string]bool{}
	for i, d := range c.Departments {
		key := strings.ToLower(strings.TrimSpace(d.Name))
		if key == "" {
			return fmt.Errorf("department %d: missing name", i)
		}
		if seen[key] {
			return fmt.Errorf("department %q listed twice", d.Name)
		}
		seen[key] = true
	}
	for i, f := range c.Facilities {
		if strings.TrimSpace(f.Name) == "" || strings.TrimSpace(f.Answer) == "" {
			return fmt.Errorf("facility %d: name and answer are required", i)
		}
	}
	if c.Company.Name == "" {
		return errors.New("company name is required")
	}
	return nil
}

// Department finds a department by name, ignoring case.
func (c *Catalog) Department(name string) (Department, bool) {
	for _, d := range c.Departments {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return Department{}, false
}

// Facility finds a facility by name, ignoring case.
func (c *Catalog) Facility(name string) (Facility, bool) {
	for _, f := range c.Facilities {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Facility{}, false
}
