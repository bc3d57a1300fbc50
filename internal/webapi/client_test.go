package webapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"rdfmap/internal/querycache"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := New(server.URL, "test-token", 5*time.Second, opts...)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return client, server
}

func TestRequestCarriesAuthAndCorrelationHeaders(t *testing.T) {
	var gotAuth, gotRequestID, gotAccept string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{"status":"healthy","rdfmap_version":"1.2.0"}`))
	}))

	health, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health returned error: %v", err)
	}
	if health.Status != "healthy" {
		t.Fatalf("unexpected status %q", health.Status)
	}
	if gotAuth != "Bearer test-token" {
		t.Fatalf("unexpected Authorization header %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Fatal("expected X-Request-ID header")
	}
	if gotAccept != "application/json" {
		t.Fatalf("unexpected Accept header %q", gotAccept)
	}
}

func TestNonSuccessResponseBecomesRequestFailed(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "project not found", http.StatusNotFound)
	}))

	_, err := client.GetProject(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	var reqErr *RequestFailed
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestFailed, got %T: %v", err, err)
	}
	if reqErr.Status != http.StatusNotFound {
		t.Fatalf("unexpected status %d", reqErr.Status)
	}
	if got := reqErr.Error(); got != "project not found" {
		t.Fatalf("expected body text as message, got %q", got)
	}
	if !IsNotFound(err) {
		t.Fatal("IsNotFound should match a 404 RequestFailed")
	}
}

func TestEmptyErrorBodyFallsBackToStatusMarker(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.Health(context.Background())
	if err == nil {
		t.Fatal("expected error for 502 response")
	}
	if got := err.Error(); !strings.Contains(got, "HTTP 502") {
		t.Fatalf("expected HTTP 502 marker, got %q", got)
	}
}

func TestSuccessWithInvalidJSONIsDecodeError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>proxy page</html>"))
	}))

	_, err := client.Health(context.Background())
	if err == nil {
		t.Fatal("expected decode error for non-JSON 200 body")
	}
	if !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListProjectsServedFromCacheUntilInvalidated(t *testing.T) {
	var hits int
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			hits++
			w.Write([]byte(`[{"id":"p1","name":"census"}]`))
		case r.Method == http.MethodPost:
			w.Write([]byte(`{"id":"p2","name":"survey"}`))
		}
	}), WithCache(querycache.New()))

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		projects, err := client.ListProjects(ctx)
		if err != nil {
			t.Fatalf("ListProjects returned error: %v", err)
		}
		if len(projects) != 1 || projects[0].ID != "p1" {
			t.Fatalf("unexpected projects: %+v", projects)
		}
	}
	if hits != 1 {
		t.Fatalf("expected one upstream GET, saw %d", hits)
	}

	if _, err := client.CreateProject(ctx, ProjectCreate{Name: "survey"}); err != nil {
		t.Fatalf("CreateProject returned error: %v", err)
	}
	if _, err := client.ListProjects(ctx); err != nil {
		t.Fatalf("ListProjects after create returned error: %v", err)
	}
	if hits != 2 {
		t.Fatalf("expected refetch after create, saw %d GETs", hits)
	}
}

func TestCreateProjectRejectsEmptyName(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	if _, err := client.CreateProject(context.Background(), ProjectCreate{Name: "  "}); err == nil {
		t.Fatal("expected error for blank project name")
	}
}

func TestUploadDataSendsMultipartFile(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projects/p1/upload-data" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile returned error: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		defer file.Close()
		if header.Filename != "people.csv" {
			t.Errorf("unexpected filename %q", header.Filename)
		}
		payload, _ := io.ReadAll(file)
		if string(payload) != "id,name\n1,Ada\n" {
			t.Errorf("unexpected payload %q", payload)
		}
		w.Write([]byte(`{"message":"File uploaded successfully","file_path":"/data/people.csv","file_size":15}`))
	}))

	result, err := client.UploadData(context.Background(), "p1", "people.csv", strings.NewReader("id,name\n1,Ada\n"))
	if err != nil {
		t.Fatalf("UploadData returned error: %v", err)
	}
	if result.FileSize != 15 {
		t.Fatalf("unexpected file size %d", result.FileSize)
	}
}

func TestGenerateMappingEncodesOptions(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("use_semantic") != "true" {
			t.Errorf("use_semantic = %q", query.Get("use_semantic"))
		}
		if query.Get("min_confidence") != "0.7" {
			t.Errorf("min_confidence = %q", query.Get("min_confidence"))
		}
		if query.Get("base_iri") != "http://example.org/" {
			t.Errorf("base_iri = %q", query.Get("base_iri"))
		}
		if query.Get("target_class") != "Person" {
			t.Errorf("target_class = %q", query.Get("target_class"))
		}
		w.Write([]byte(`{"status":"success","project_id":"p1","mapping_file":"mapping.yaml"}`))
	}))

	result, err := client.GenerateMapping(context.Background(), "p1", GenerateOptions{
		UseSemantic:   true,
		MinConfidence: 0.7,
		BaseIRI:       "http://example.org/",
		TargetClass:   "Person",
	})
	if err != nil {
		t.Fatalf("GenerateMapping returned error: %v", err)
	}
	if result.MappingFile != "mapping.yaml" {
		t.Fatalf("unexpected mapping file %q", result.MappingFile)
	}
}

func TestRawMappingReturnsBodyText(t *testing.T) {
	const doc = "sheets:\n  - name: people\n"
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("raw") != "true" {
			t.Errorf("expected raw=true, got query %q", r.URL.RawQuery)
		}
		w.Write([]byte(doc))
	}))

	text, err := client.RawMapping(context.Background(), "p1")
	if err != nil {
		t.Fatalf("RawMapping returned error: %v", err)
	}
	if text != doc {
		t.Fatalf("unexpected document %q", text)
	}
}

func TestConvertSyncAndAsyncSetBackgroundFlag(t *testing.T) {
	var flags []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flags = append(flags, r.URL.Query().Get("use_background"))
		if r.URL.Query().Get("use_background") == "true" {
			w.Write([]byte(`{"status":"queued","project_id":"p1","task_id":"t1","message":"Conversion started"}`))
			return
		}
		w.Write([]byte(`{"status":"success","project_id":"p1","output_file":"out.ttl","format":"turtle","triple_count":42}`))
	}))

	ctx := context.Background()
	result, err := client.ConvertSync(ctx, "p1", ConvertOptions{OutputFormat: "turtle", Validate: true})
	if err != nil {
		t.Fatalf("ConvertSync returned error: %v", err)
	}
	if result.TripleCount != 42 {
		t.Fatalf("unexpected triple count %d", result.TripleCount)
	}

	queued, err := client.ConvertAsync(ctx, "p1", ConvertOptions{OutputFormat: "turtle"})
	if err != nil {
		t.Fatalf("ConvertAsync returned error: %v", err)
	}
	if queued.TaskID != "t1" {
		t.Fatalf("unexpected task id %q", queued.TaskID)
	}

	if len(flags) != 2 || flags[0] != "false" || flags[1] != "true" {
		t.Fatalf("unexpected use_background sequence %v", flags)
	}
}

func TestJobStatusDecodesResult(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/conversion/job/t1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"task_id":"t1","status":"SUCCESS","result":{"status":"success","output_file":"out.ttl","triple_count":7}}`))
	}))

	status, err := client.JobStatus(context.Background(), "t1")
	if err != nil {
		t.Fatalf("JobStatus returned error: %v", err)
	}
	if status.Status != "SUCCESS" || status.Result == nil || status.Result.TripleCount != 7 {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestDownloadUsesContentDispositionFilename(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="census.ttl"`)
		w.Write([]byte("@prefix ex: <http://example.org/> .\n"))
	}))

	body, name, err := client.Download(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Download returned error: %v", err)
	}
	defer body.Close()
	if name != "census.ttl" {
		t.Fatalf("unexpected filename %q", name)
	}
	payload, _ := io.ReadAll(body)
	if !strings.Contains(string(payload), "@prefix") {
		t.Fatalf("unexpected payload %q", payload)
	}
}

func TestDownloadFallsBackToProjectFilename(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("triples"))
	}))

	body, name, err := client.Download(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Download returned error: %v", err)
	}
	body.Close()
	if name != "project-abc123-output.ttl" {
		t.Fatalf("unexpected fallback filename %q", name)
	}
}

func TestAttachmentFilename(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{`attachment; filename="out.ttl"`, "out.ttl"},
		{`attachment; filename="../escaped.ttl"`, "escaped.ttl"},
		{`attachment; filename="/etc/passwd"`, "passwd"},
		{`attachment; filename=".."`, "fallback.ttl"},
		{`attachment`, "fallback.ttl"},
		{``, "fallback.ttl"},
		{`not a disposition;;;`, "fallback.ttl"},
	}
	for _, tc := range cases {
		if got := attachmentFilename(tc.header, "fallback.ttl"); got != tc.want {
			t.Errorf("attachmentFilename(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}
