// Package report renders the outcome of a find run as text or JSON.
package report

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/IvanShishkin/pathhound/internal/config"
	"github.com/IvanShishkin/pathhound/pkg/glob"
)

// Results collects everything a find run produced.
type Results struct {
	Patterns  []string           `json:"patterns"`
	Roots     []string           `json:"roots"`
	Matches   []string           `json:"matches"`
	Skipped   []string           `json:"skipped,omitempty"`
	StartTime time.Time          `json:"start_time"`
	Duration  time.Duration      `json:"-"`
	Metrics   *glob.CacheMetrics `json:"cache_metrics,omitempty"`
}

// Generator generates find reports in the configured format
type Generator struct {
	config *config.Config
	logger *zap.Logger
}

// NewGenerator creates a new report generator
func NewGenerator(cfg *config.Config, logger *zap.Logger) (*Generator, error) {
	switch cfg.ReportFormat {
	case "", "text", "json":
	default:
		return nil, fmt.Errorf("unsupported report format: %s", cfg.ReportFormat)
	}
	return &Generator{config: cfg, logger: logger}, nil
}

// Generate writes the report to the configured output file, or stdout
// when none is set.
func (g *Generator) Generate(results *Results) error {
	var data []byte
	var err error

	switch g.config.ReportFormat {
	case "json":
		data, err = g.renderJSON(results)
	default:
		data, err = g.renderText(results)
	}
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if g.config.OutputFile == "" {
		_, err = os.Stdout.Write(data)
		return err
	}

	g.logger.Info("Writing report",
		zap.String("format", g.config.ReportFormat),
		zap.String("file", g.config.OutputFile))
	return os.WriteFile(g.config.OutputFile, data, 0644)
}

// FormatDuration formats duration to a human-readable string with max 2 decimal places
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	} else if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%dm%.2fs", mins, secs)
}
