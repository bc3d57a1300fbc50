package workflow

import (
	"context"
	"fmt"
	"math"
	"sync"

	"rdfmap/internal/logging"
	"rdfmap/internal/mappingdoc"
	"rdfmap/internal/webapi"
)

// StatsSource names which response shape the mapping statistics came from.
type StatsSource int

const (
	// StatsMissing means neither shape carried usable counts.
	StatsMissing StatsSource = iota
	// StatsFromSummary means the mapping summary carried the counts.
	StatsFromSummary
	// StatsFromAlignment means the alignment report supplied the counts
	// because the summary lacked a mapped-column count.
	StatsFromAlignment
)

// MappingStats is the normalized mapping statistics view.
type MappingStats struct {
	MappedColumns int
	TotalColumns  int
	Rate          float64
}

// FormatRate renders the mapping rate with one decimal, e.g. "75.0%".
func (s MappingStats) FormatRate() string {
	return fmt.Sprintf("%.1f%%", s.Rate)
}

// ExtractStats normalizes the two statistics shapes a generate response can
// carry. The mapping summary wins when it has a mapped-column count;
// otherwise the alignment report is consulted.
func ExtractStats(result *webapi.GenerateResult) (MappingStats, StatsSource) {
	if result == nil {
		return MappingStats{}, StatsMissing
	}
	if result.MappingSummary != nil && result.MappingSummary.Statistics != nil &&
		result.MappingSummary.Statistics.MappedColumns != nil {
		return normalizeStats(result.MappingSummary.Statistics), StatsFromSummary
	}
	if result.AlignmentReport != nil && result.AlignmentReport.Statistics != nil &&
		result.AlignmentReport.Statistics.MappedColumns != nil {
		return normalizeStats(result.AlignmentReport.Statistics), StatsFromAlignment
	}
	return MappingStats{}, StatsMissing
}

func normalizeStats(stats *webapi.MappingStatistics) MappingStats {
	normalized := MappingStats{
		MappedColumns: *stats.MappedColumns,
		TotalColumns:  stats.TotalColumns,
		Rate:          stats.MappingRate,
	}
	if normalized.Rate == 0 && normalized.TotalColumns > 0 {
		normalized.Rate = float64(normalized.MappedColumns) / float64(normalized.TotalColumns) * 100
	}
	normalized.Rate = math.Round(normalized.Rate*10) / 10
	return normalized
}

// GenerateOutcome bundles the raw generate response with normalized stats.
type GenerateOutcome struct {
	Result *webapi.GenerateResult
	Stats  MappingStats
	Source StatsSource
}

// Generate runs mapping generation and normalizes the response.
func (s *Service) Generate(ctx context.Context, projectID string, opts webapi.GenerateOptions) (*GenerateOutcome, error) {
	result, err := s.client.GenerateMapping(ctx, projectID, opts)
	if err != nil {
		return nil, err
	}
	stats, source := ExtractStats(result)
	s.logger.Info("mapping generated",
		logging.String(logging.FieldProjectID, projectID),
		logging.Int("mapped_columns", stats.MappedColumns),
		logging.Int("total_columns", stats.TotalColumns),
		logging.String("rate", stats.FormatRate()),
	)
	return &GenerateOutcome{Result: result, Stats: stats, Source: source}, nil
}

// MappingView lazily fetches and memoizes a project's mapping document. The
// first RawDocument call hits the server; later calls reuse its outcome.
type MappingView struct {
	client    *webapi.Client
	projectID string

	once sync.Once
	raw  string
	err  error
}

// Mapping returns a lazy view over the project's mapping document.
func (s *Service) Mapping(projectID string) *MappingView {
	return &MappingView{client: s.client, projectID: projectID}
}

// RawDocument returns the mapping document YAML text.
func (v *MappingView) RawDocument(ctx context.Context) (string, error) {
	v.once.Do(func() {
		v.raw, v.err = v.client.RawMapping(ctx, v.projectID)
	})
	return v.raw, v.err
}

// Document fetches and parses the mapping document.
func (v *MappingView) Document(ctx context.Context) (*mappingdoc.Document, error) {
	raw, err := v.RawDocument(ctx)
	if err != nil {
		return nil, err
	}
	return mappingdoc.Parse(raw)
}
