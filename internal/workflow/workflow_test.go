package workflow_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"rdfmap/internal/webapi"
	"rdfmap/internal/workflow"
)

func newTestService(t *testing.T, handler http.Handler, opts ...workflow.ServiceOption) *workflow.Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := webapi.New(server.URL, "", 5*time.Second)
	if err != nil {
		t.Fatalf("webapi.New returned error: %v", err)
	}
	return workflow.NewService(client, opts...)
}

func intPtr(v int) *int { return &v }

func TestValidateUploadPath(t *testing.T) {
	cases := []struct {
		target workflow.Target
		path   string
		ok     bool
	}{
		{workflow.TargetData, "people.csv", true},
		{workflow.TargetData, "people.XLSX", true},
		{workflow.TargetData, "records.json", true},
		{workflow.TargetData, "records.xml", true},
		{workflow.TargetData, "ontology.ttl", false},
		{workflow.TargetData, "noextension", false},
		{workflow.TargetOntology, "schema.ttl", true},
		{workflow.TargetOntology, "schema.owl", true},
		{workflow.TargetOntology, "schema.rdf", true},
		{workflow.TargetOntology, "people.csv", false},
	}
	for _, tc := range cases {
		err := workflow.ValidateUploadPath(tc.target, tc.path)
		if tc.ok && err != nil {
			t.Errorf("ValidateUploadPath(%s, %s) = %v, want nil", tc.target, tc.path, err)
		}
		if !tc.ok {
			if err == nil {
				t.Errorf("ValidateUploadPath(%s, %s) = nil, want error", tc.target, tc.path)
			} else if !workflow.IsValidation(err) {
				t.Errorf("ValidateUploadPath(%s, %s) = %T, want ValidationFailed", tc.target, tc.path, err)
			}
		}
	}
}

func TestUploadRejectsBadExtensionWithoutRequest(t *testing.T) {
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for invalid extension")
	}))

	_, err := service.Upload(context.Background(), "p1", workflow.TargetData, "notes.txt")
	if !workflow.IsValidation(err) {
		t.Fatalf("expected ValidationFailed, got %v", err)
	}
}

func TestUploadMissingFileDoesNotHitNetwork(t *testing.T) {
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for missing file")
	}))

	_, err := service.Upload(context.Background(), "p1", workflow.TargetData, filepath.Join(t.TempDir(), "absent.csv"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestUploadSendsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.ttl")
	if err := os.WriteFile(path, []byte("@prefix ex: <http://example.org/> ."), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projects/p1/upload-ontology" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"message":"ok","file_path":"/data/schema.ttl","file_size":35}`))
	}))

	result, err := service.Upload(context.Background(), "p1", workflow.TargetOntology, path)
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if result.FileSize != 35 {
		t.Fatalf("unexpected file size %d", result.FileSize)
	}
}

func TestExtractStatsPrefersMappingSummary(t *testing.T) {
	result := &webapi.GenerateResult{
		MappingSummary: &webapi.MappingSummary{
			Statistics: &webapi.MappingStatistics{MappedColumns: intPtr(2), TotalColumns: 4},
		},
		AlignmentReport: &webapi.AlignmentReport{
			Statistics: &webapi.MappingStatistics{MappedColumns: intPtr(9), TotalColumns: 9},
		},
	}

	stats, source := workflow.ExtractStats(result)
	if source != workflow.StatsFromSummary {
		t.Fatalf("expected summary source, got %v", source)
	}
	if stats.MappedColumns != 2 || stats.TotalColumns != 4 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if got := stats.FormatRate(); got != "50.0%" {
		t.Fatalf("unexpected rate %q", got)
	}
}

func TestExtractStatsFallsBackToAlignmentReport(t *testing.T) {
	result := &webapi.GenerateResult{
		MappingSummary: &webapi.MappingSummary{
			Statistics: &webapi.MappingStatistics{TotalColumns: 4, MappingRate: 100},
		},
		AlignmentReport: &webapi.AlignmentReport{
			Statistics: &webapi.MappingStatistics{MappedColumns: intPtr(3), TotalColumns: 4},
		},
	}

	stats, source := workflow.ExtractStats(result)
	if source != workflow.StatsFromAlignment {
		t.Fatalf("expected alignment source, got %v", source)
	}
	if got := stats.FormatRate(); got != "75.0%" {
		t.Fatalf("unexpected rate %q", got)
	}
}

func TestExtractStatsMissing(t *testing.T) {
	stats, source := workflow.ExtractStats(&webapi.GenerateResult{Status: "success"})
	if source != workflow.StatsMissing {
		t.Fatalf("expected missing source, got %v", source)
	}
	if stats.TotalColumns != 0 || stats.MappedColumns != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
	if _, source = workflow.ExtractStats(nil); source != workflow.StatsMissing {
		t.Fatal("nil result must report missing stats")
	}
}

func TestExtractStatsUsesServerRateWhenPresent(t *testing.T) {
	result := &webapi.GenerateResult{
		MappingSummary: &webapi.MappingSummary{
			Statistics: &webapi.MappingStatistics{MappedColumns: intPtr(1), TotalColumns: 3, MappingRate: 33.333},
		},
	}
	stats, _ := workflow.ExtractStats(result)
	if got := stats.FormatRate(); got != "33.3%" {
		t.Fatalf("unexpected rate %q", got)
	}
}

func TestMappingViewMemoizesRawDocument(t *testing.T) {
	var hits int
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("sheets: []\n"))
	}))

	view := service.Mapping("p1")
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		raw, err := view.RawDocument(ctx)
		if err != nil {
			t.Fatalf("RawDocument returned error: %v", err)
		}
		if raw != "sheets: []\n" {
			t.Fatalf("unexpected document %q", raw)
		}
	}
	if _, err := view.Document(ctx); err != nil {
		t.Fatalf("Document returned error: %v", err)
	}
	if hits != 1 {
		t.Fatalf("expected one fetch, saw %d", hits)
	}
}

func TestConvertRejectsUnknownFormatWithoutRequest(t *testing.T) {
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for invalid format")
	}))

	_, err := service.ConvertSync(context.Background(), workflow.ConvertRequest{ProjectID: "p1", OutputFormat: "csv"})
	if !workflow.IsValidation(err) {
		t.Fatalf("expected ValidationFailed, got %v", err)
	}
}

type recorderFunc func(ctx context.Context, record workflow.JobRecord) error

func (f recorderFunc) RecordQueued(ctx context.Context, record workflow.JobRecord) error {
	return f(ctx, record)
}

func TestConvertBackgroundRecordsQueuedJob(t *testing.T) {
	var recorded []workflow.JobRecord
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"queued","project_id":"p1","task_id":"t9","message":"Conversion started"}`))
	}), workflow.WithJobRecorder(recorderFunc(func(ctx context.Context, record workflow.JobRecord) error {
		recorded = append(recorded, record)
		return nil
	})))

	queued, err := service.ConvertBackground(context.Background(), workflow.ConvertRequest{
		ProjectID:    "p1",
		OutputFormat: "turtle",
		Validate:     true,
	})
	if err != nil {
		t.Fatalf("ConvertBackground returned error: %v", err)
	}
	if queued.TaskID != "t9" {
		t.Fatalf("unexpected task id %q", queued.TaskID)
	}
	if len(recorded) != 1 {
		t.Fatalf("expected one recorded job, got %d", len(recorded))
	}
	if recorded[0].TaskID != "t9" || recorded[0].ProjectID != "p1" || recorded[0].OutputFormat != "turtle" || !recorded[0].Validate {
		t.Fatalf("unexpected record %+v", recorded[0])
	}
}

func TestDownloadStaysInsideDestinationDir(t *testing.T) {
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="../escaped.ttl"`)
		w.Write([]byte("triples\n"))
	}))

	base := t.TempDir()
	dir := filepath.Join(base, "downloads")
	path, err := service.Download(context.Background(), "p1", dir)
	if err != nil {
		t.Fatalf("Download returned error: %v", err)
	}
	if want := filepath.Join(dir, "escaped.ttl"); path != want {
		t.Fatalf("expected %s, got %s", want, path)
	}
	if _, err := os.Stat(filepath.Join(base, "escaped.ttl")); !os.IsNotExist(err) {
		t.Fatalf("file written outside destination dir (stat err %v)", err)
	}
}

func TestDownloadWritesFileWithFallbackName(t *testing.T) {
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("triples\n"))
	}))

	dir := t.TempDir()
	path, err := service.Download(context.Background(), "p1", dir)
	if err != nil {
		t.Fatalf("Download returned error: %v", err)
	}
	if filepath.Base(path) != "project-p1-output.ttl" {
		t.Fatalf("unexpected filename %q", filepath.Base(path))
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if string(payload) != "triples\n" {
		t.Fatalf("unexpected payload %q", payload)
	}
}
