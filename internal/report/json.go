package report

import (
	"encoding/json"

	"github.com/Sravan2510/Data-Download-Duplication-Alert-System-DDAS/pkg/models"
	"gopkg.in/yaml.v3"
)

// renderJSON encodes the report in its wire format
func renderJSON(report *models.ScanReport) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// renderYAML encodes the report with the same field names as the JSON form
func renderYAML(report *models.ScanReport) ([]byte, error) {
	return yaml.Marshal(report)
}
