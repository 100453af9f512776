package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"pomo/internal/domain"
	"pomo/internal/errors"

	"gopkg.in/yaml.v3"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// exportRecord is the structured form of one log row
type exportRecord struct {
	Title     string `json:"title" yaml:"title"`
	Minutes   int    `json:"minutes" yaml:"minutes"`
	Timestamp string `json:"datetime" yaml:"datetime"`
}

// ExportCommand handles the export command
type ExportCommand struct {
	app          *App
	format       string
	errorHandler *ErrorHandler
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App, format string) *ExportCommand {
	return &ExportCommand{app: app, format: format, errorHandler: NewErrorHandler()}
}

// Execute writes every record of the log to stdout in the chosen format
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	format := strings.ToLower(strings.TrimSpace(c.format))
	switch format {
	case FormatCSV, FormatJSON, FormatYAML:
	default:
		return c.errorHandler.Handle("export sessions",
			errors.NewInvalidInputError("format", c.format, "must be csv, json or yaml"))
	}

	records, err := c.app.api.Records(ctx)
	if err != nil {
		return c.errorHandler.Handle("export sessions", err)
	}

	switch format {
	case FormatJSON:
		return writeJSON(c.app.out, records)
	case FormatYAML:
		return writeYAML(c.app.out, records)
	default:
		return writeCSV(c.app.out, records)
	}
}

func toExportRecords(records []domain.SessionRecord) []exportRecord {
	out := make([]exportRecord, len(records))
	for i, r := range records {
		out[i] = exportRecord{Title: r.Title, Minutes: r.Minutes, Timestamp: r.Timestamp()}
	}
	return out
}

func writeCSV(w io.Writer, records []domain.SessionRecord) error {
	mapper := domain.NewSessionRecordMapper()
	cw := csv.NewWriter(w)
	if err := cw.Write(domain.LogHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(mapper.ToRow(r)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, records []domain.SessionRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toExportRecords(records))
}

func writeYAML(w io.Writer, records []domain.SessionRecord) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toExportRecords(records)); err != nil {
		return err
	}
	return enc.Close()
}
