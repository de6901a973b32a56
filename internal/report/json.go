package report

import (
	"encoding/json"
)

// jsonReport augments the results with fields that only make sense in
// serialized form.
type jsonReport struct {
	*Results
	DurationMS float64 `json:"duration_ms"`
}

// renderJSON generates a JSON report
func (g *Generator) renderJSON(results *Results) ([]byte, error) {
	report := &jsonReport{
		Results:    results,
		DurationMS: float64(results.Duration.Nanoseconds()) / 1e6,
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
