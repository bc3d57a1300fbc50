package webapi

import "time"

// Project is a user-created workspace grouping one data file, one ontology
// file, and the artifacts derived from them.
type Project struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Status       string         `json:"status"`
	DataFile     string         `json:"data_file"`
	OntologyFile string         `json:"ontology_file"`
	Config       map[string]any `json:"config"`
	CreatedAt    *time.Time     `json:"created_at"`
	UpdatedAt    *time.Time     `json:"updated_at"`
}

// UploadResult reports a stored upload.
type UploadResult struct {
	Message  string `json:"message"`
	FilePath string `json:"file_path"`
	FileSize int64  `json:"file_size"`
}

// PreviewColumn describes one analyzed column of the uploaded data file.
type PreviewColumn struct {
	Name         string   `json:"name"`
	InferredType string   `json:"inferred_type"`
	SampleValues []string `json:"sample_values"`
	IsIdentifier bool     `json:"is_identifier"`
	IsForeignKey bool     `json:"is_foreign_key"`
}

// DataPreview is the column analysis plus the first rows of the data file.
type DataPreview struct {
	TotalColumns int              `json:"total_columns"`
	Columns      []PreviewColumn  `json:"columns"`
	RowCount     int64            `json:"row_count"`
	Rows         []map[string]any `json:"rows"`
	Showing      int              `json:"showing"`
	Error        string           `json:"error"`
}

// SKOSLabels carries the SKOS labelling of an ontology entity.
type SKOSLabels struct {
	PrefLabel    string   `json:"pref_label"`
	AltLabels    []string `json:"alt_labels"`
	HiddenLabels []string `json:"hidden_labels"`
}

// OntologyClass describes one class found in the uploaded ontology.
type OntologyClass struct {
	URI        string     `json:"uri"`
	Label      string     `json:"label"`
	Comment    string     `json:"comment"`
	SKOSLabels SKOSLabels `json:"skos_labels"`
}

// OntologyProperty describes one property found in the uploaded ontology.
type OntologyProperty struct {
	URI                 string     `json:"uri"`
	Label               string     `json:"label"`
	Comment             string     `json:"comment"`
	PropertyType        string     `json:"property_type"`
	Domain              string     `json:"domain"`
	Range               string     `json:"range"`
	IsFunctional        bool       `json:"is_functional"`
	IsInverseFunctional bool       `json:"is_inverse_functional"`
	SKOSLabels          SKOSLabels `json:"skos_labels"`
}

// OntologyAnalysis summarizes the structure of the uploaded ontology.
type OntologyAnalysis struct {
	TotalClasses    int                `json:"total_classes"`
	TotalProperties int                `json:"total_properties"`
	Classes         []OntologyClass    `json:"classes"`
	Properties      []OntologyProperty `json:"properties"`
}

// MappingStatistics is the counts block nested inside either the mapping
// summary or the alignment report. MappedColumns is a pointer because the two
// response shapes differ in which of them actually carries it; absence (not
// zero) drives the fallback between shapes.
type MappingStatistics struct {
	MappedColumns *int    `json:"mapped_columns"`
	TotalColumns  int     `json:"total_columns"`
	MappingRate   float64 `json:"mapping_rate"`
}

// SheetSummary is the per-sheet mapping breakdown.
type SheetSummary struct {
	Sheet             string   `json:"sheet"`
	TotalColumns      int      `json:"total_columns"`
	MappedColumns     int      `json:"mapped_columns"`
	MappedColumnNames []string `json:"mapped_column_names"`
}

// MappingSummary is the server-computed mapping summary shape.
type MappingSummary struct {
	Statistics *MappingStatistics `json:"statistics"`
	Sheets     []SheetSummary     `json:"sheets"`
}

// AlignmentReport is the alternative statistics carrier; some server versions
// populate this instead of the mapping summary.
type AlignmentReport struct {
	Statistics *MappingStatistics `json:"statistics"`
}

// MappingPreview gives the headline facts of the generated mapping.
type MappingPreview struct {
	BaseIRI     string `json:"base_iri"`
	TargetClass string `json:"target_class"`
	ColumnCount int    `json:"column_count"`
}

// GenerateResult is the mapping-generation response.
type GenerateResult struct {
	Status          string           `json:"status"`
	ProjectID       string           `json:"project_id"`
	MappingFile     string           `json:"mapping_file"`
	AlignmentReport *AlignmentReport `json:"alignment_report"`
	MappingSummary  *MappingSummary  `json:"mapping_summary"`
	FormattedYAML   string           `json:"formatted_yaml"`
	MappingPreview  *MappingPreview  `json:"mapping_preview"`
}

// ConversionResult is the synchronous conversion response.
type ConversionResult struct {
	Status      string         `json:"status"`
	ProjectID   string         `json:"project_id"`
	OutputFile  string         `json:"output_file"`
	Format      string         `json:"format"`
	TripleCount int64          `json:"triple_count"`
	Validation  map[string]any `json:"validation"`
	Errors      []string       `json:"errors"`
	Warnings    []string       `json:"warnings"`
}

// QueuedConversion acknowledges a background conversion request.
type QueuedConversion struct {
	Status    string `json:"status"`
	ProjectID string `json:"project_id"`
	TaskID    string `json:"task_id"`
	Message   string `json:"message"`
}

// JobResult is the payload a finished background conversion reports.
type JobResult struct {
	Status      string `json:"status"`
	OutputFile  string `json:"output_file"`
	Format      string `json:"format"`
	TripleCount int64  `json:"triple_count"`
	Error       string `json:"error"`
}

// JobStatus is one observation of a background conversion job. Only the
// literals "SUCCESS" and "FAILURE" are terminal; every other status value
// means the job is still in progress.
type JobStatus struct {
	TaskID string     `json:"task_id"`
	Status string     `json:"status"`
	Result *JobResult `json:"result"`
	Error  string     `json:"error"`
}

// Health is the service health probe response.
type Health struct {
	Status        string `json:"status"`
	RDFMapVersion string `json:"rdfmap_version"`
}
