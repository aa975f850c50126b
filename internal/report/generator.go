// Package report renders the outcome of an import run into a reviewable
// document.
package report

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"fjacquet/bank-import/internal/dateutils"
	"fjacquet/bank-import/internal/importer"
	"fjacquet/bank-import/internal/logging"
	"fjacquet/bank-import/internal/models"
	"fjacquet/bank-import/internal/oldfilter"
)

// ImportReport is the serializable summary of one import run.
type ImportReport struct {
	Stats       models.ImportStats `json:"stats" yaml:"stats"`
	Matches     []MatchLine        `json:"matches,omitempty" yaml:"matches,omitempty"`
	RowErrors   []models.RowError  `json:"row_errors,omitempty" yaml:"row_errors,omitempty"`
	Warnings    []string           `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	FilterStats *oldfilter.Stats   `json:"filter_stats,omitempty" yaml:"filter_stats,omitempty"`
}

// MatchLine describes one duplicate match in human-reviewable form.
type MatchLine struct {
	Date        string  `json:"date" yaml:"date"`
	Amount      string  `json:"amount" yaml:"amount"`
	Description string  `json:"description" yaml:"description"`
	ExistingID  string  `json:"existing_id" yaml:"existing_id"`
	Confidence  float64 `json:"confidence" yaml:"confidence"`
}

// Generator renders import reports in various formats.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a new report generator. A nil logger gets a default.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Generator{logger: logger}
}

// Build assembles the report from an import result and optional filter result.
func Build(result *importer.Result, filter *oldfilter.Result) *ImportReport {
	report := &ImportReport{
		Stats:     result.Stats,
		RowErrors: result.Errors,
		Warnings:  result.Warnings,
	}
	for _, match := range result.Matches {
		c := result.Transactions[match.CandidateIndex]
		report.Matches = append(report.Matches, MatchLine{
			Date:        dateutils.ToISODate(c.Date),
			Amount:      c.Amount.String(),
			Description: c.Description,
			ExistingID:  match.ExistingID,
			Confidence:  match.Confidence,
		})
	}
	if filter != nil {
		stats := filter.Stats
		report.FilterStats = &stats
	}
	return report
}

// Generate renders the report in the specified format (json or yaml).
// It returns the report as a byte slice and an error if generation fails or
// the format is unsupported.
func (g *Generator) Generate(report *ImportReport, format string) ([]byte, error) {
	switch format {
	case "json":
		return g.generateJSON(report)
	case "yaml":
		return g.generateYAML(report)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *Generator) generateJSON(report *ImportReport) ([]byte, error) {
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return out, nil
}

func (g *Generator) generateYAML(report *ImportReport) ([]byte, error) {
	out, err := yaml.Marshal(report)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return out, nil
}
