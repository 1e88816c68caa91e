package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vytor/openingroi/internal/models"
)

// Format represents the export format.
type Format string

const (
	// FormatCSV represents CSV export format.
	FormatCSV Format = "csv"
	// FormatJSON represents JSON export format.
	FormatJSON Format = "json"
)

// ParseFormat resolves a case-insensitive format name; empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", s)
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/json"
}

// Columns is the CSV header. Names match the JSON field names of OpeningMetrics.
var Columns = []string{
	"openingCode", "openingName", "ratingBucket",
	"totalGames", "wins", "draws", "losses",
	"winRate", "drawRate", "lossRate",
	"expectedReturn", "volatility", "sharpeRatio", "roi", "informationRatio",
}

// Options holds configuration for export operations.
type Options struct {
	Format     Format
	PrettyJSON bool
}

// Exporter writes metrics tables in a fixed format.
type Exporter struct {
	opts Options
}

// NewExporter creates a new Exporter with the given options.
func NewExporter(opts Options) *Exporter {
	return &Exporter{opts: opts}
}

// Export writes rows to w. An empty table is still a valid document: a header
// line for CSV, an empty array for JSON.
func (e *Exporter) Export(w io.Writer, rows []models.OpeningMetrics) error {
	switch e.opts.Format {
	case FormatCSV:
		return e.exportCSV(w, rows)
	case FormatJSON:
		return e.exportJSON(w, rows)
	default:
		return fmt.Errorf("unsupported export format: %s", e.opts.Format)
	}
}

func (e *Exporter) exportJSON(w io.Writer, rows []models.OpeningMetrics) error {
	if rows == nil {
		rows = []models.OpeningMetrics{}
	}
	enc := json.NewEncoder(w)
	if e.opts.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}

func (e *Exporter) exportCSV(w io.Writer, rows []models.OpeningMetrics) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i, m := range rows {
		if err := writer.Write(Row(m)); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Row renders one metrics record in Columns order. Rates and ratios use six
// decimals; a missing bucket is an empty cell.
func Row(m models.OpeningMetrics) []string {
	return []string{
		m.OpeningCode,
		m.OpeningName,
		string(m.RatingBucket),
		strconv.Itoa(m.TotalGames),
		strconv.Itoa(m.Wins),
		strconv.Itoa(m.Draws),
		strconv.Itoa(m.Losses),
		formatFloat(m.WinRate),
		formatFloat(m.DrawRate),
		formatFloat(m.LossRate),
		formatFloat(m.ExpectedReturn),
		formatFloat(m.Volatility),
		formatFloat(m.SharpeRatio),
		formatFloat(m.ROI),
		formatFloat(m.InformationRatio),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
