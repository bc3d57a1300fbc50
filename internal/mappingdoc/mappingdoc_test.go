package mappingdoc_test

import (
	"reflect"
	"testing"

	"rdfmap/internal/mappingdoc"
)

const sampleDocument = `
defaults:
  base_iri: http://example.org/
imports:
  - foaf.ttl
sheets:
  - name: people
    source: people.csv
    row_resource:
      class: ex:Person
    columns:
      id:
        as: ex:identifier
        iri: true
      name:
        as: foaf:name
        language: en
      notes: skipped
      age:
        datatype: xsd:integer
`

func TestParseDistinguishesMappedColumns(t *testing.T) {
	doc, err := mappingdoc.Parse(sampleDocument)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if doc.Defaults.BaseIRI != "http://example.org/" {
		t.Fatalf("unexpected base IRI %q", doc.Defaults.BaseIRI)
	}
	if len(doc.Imports) != 1 || doc.Imports[0] != "foaf.ttl" {
		t.Fatalf("unexpected imports %v", doc.Imports)
	}
	if len(doc.Sheets) != 1 {
		t.Fatalf("expected one sheet, got %d", len(doc.Sheets))
	}

	sheet := doc.Sheets[0]
	if sheet.RowResource.Class != "ex:Person" {
		t.Fatalf("unexpected row class %q", sheet.RowResource.Class)
	}
	if !sheet.Columns["id"].Mapped() || !sheet.Columns["name"].Mapped() {
		t.Fatal("columns with an 'as' target must count as mapped")
	}
	if sheet.Columns["notes"].Mapped() {
		t.Fatal("scalar column entry must not count as mapped")
	}
	if sheet.Columns["age"].Mapped() {
		t.Fatal("block without 'as' must not count as mapped")
	}
	if sheet.Columns["name"].Language != "en" {
		t.Fatalf("unexpected language %q", sheet.Columns["name"].Language)
	}
}

func TestSummaryCountsPerSheet(t *testing.T) {
	doc, err := mappingdoc.Parse(sampleDocument)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	summary := doc.Summary()
	if len(summary) != 1 {
		t.Fatalf("expected one sheet summary, got %d", len(summary))
	}
	got := summary[0]
	if got.Sheet != "people" || got.TotalColumns != 4 || got.MappedColumns != 2 {
		t.Fatalf("unexpected summary %+v", got)
	}
	if !reflect.DeepEqual(got.MappedColumnNames, []string{"id", "name"}) {
		t.Fatalf("unexpected mapped column names %v", got.MappedColumnNames)
	}
}

func TestParseRejectsInvalidYAML(t *testing.T) {
	if _, err := mappingdoc.Parse("sheets: [unclosed"); err == nil {
		t.Fatal("expected parse error for invalid YAML")
	}
}
