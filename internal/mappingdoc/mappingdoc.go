package mappingdoc

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Column is one column entry within a sheet. Only block entries with an "as"
// key describe an actual mapping; scalar entries (or blocks without "as") are
// placeholders the aligner left unmapped.
type Column struct {
	As       string `yaml:"as"`
	Datatype string `yaml:"datatype"`
	Language string `yaml:"language"`
	IRI      bool   `yaml:"iri"`

	mapped bool
}

// UnmarshalYAML accepts both scalar placeholders and mapping blocks.
func (c *Column) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		*c = Column{}
		return nil
	}
	type plain Column
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*c = Column(p)
	c.mapped = strings.TrimSpace(c.As) != ""
	return nil
}

// Mapped reports whether the column carries a mapping target.
func (c Column) Mapped() bool {
	return c.mapped
}

// RowResource names the ontology class each row of a sheet instantiates.
type RowResource struct {
	Class string `yaml:"class"`
}

// Sheet maps one table of the data source.
type Sheet struct {
	Name        string            `yaml:"name"`
	Source      string            `yaml:"source"`
	RowResource RowResource       `yaml:"row_resource"`
	Columns     map[string]Column `yaml:"columns"`
}

// Defaults holds document-wide settings.
type Defaults struct {
	BaseIRI string `yaml:"base_iri"`
}

// Document is a parsed mapping document.
type Document struct {
	Defaults Defaults `yaml:"defaults"`
	Sheets   []Sheet  `yaml:"sheets"`
	Imports  []string `yaml:"imports"`
}

// Parse decodes a YAML mapping document.
func Parse(text string) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("parse mapping document: %w", err)
	}
	return &doc, nil
}

// SheetStats is the per-sheet mapping breakdown computed from the document.
type SheetStats struct {
	Sheet             string
	TotalColumns      int
	MappedColumns     int
	MappedColumnNames []string
}

// Summary computes per-sheet mapping counts. Column names within a sheet are
// reported in sorted order so output is stable.
func (d *Document) Summary() []SheetStats {
	stats := make([]SheetStats, 0, len(d.Sheets))
	for _, sheet := range d.Sheets {
		s := SheetStats{Sheet: sheet.Name, TotalColumns: len(sheet.Columns)}
		for name, column := range sheet.Columns {
			if column.Mapped() {
				s.MappedColumns++
				s.MappedColumnNames = append(s.MappedColumnNames, name)
			}
		}
		sort.Strings(s.MappedColumnNames)
		stats = append(stats, s)
	}
	return stats
}
