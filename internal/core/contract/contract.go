// Package contract defines the analyzed-contract data returned by the analysis backend.
package contract

import (
	"encoding/json"
	"strings"
)

// Severity is the risk level attached to an issue or section.
type Severity string

const (
	SeverityLow     Severity = "low"
	SeverityMedium  Severity = "medium"
	SeverityHigh    Severity = "high"
	SeverityUnknown Severity = ""
)

// Severities returns the known severities ordered from least to most severe.
func Severities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh}
}

// ParseSeverity maps a case-insensitive name to a Severity. Unrecognized
// values map to SeverityUnknown.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return SeverityLow
	case "medium":
		return SeverityMedium
	case "high":
		return SeverityHigh
	default:
		return SeverityUnknown
	}
}

// UnmarshalJSON decodes a severity without ever failing on unknown values.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		*s = SeverityUnknown
		return nil
	}
	*s = ParseSeverity(raw)
	return nil
}

// Label returns the capitalized display name, e.g. "High".
func (s Severity) Label() string {
	switch s {
	case SeverityLow:
		return "Low"
	case SeverityMedium:
		return "Medium"
	case SeverityHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// Issue is a single risk finding. Snippet is expected to occur verbatim in the
// owning section's text.
type Issue struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	Severity     Severity `json:"severity"`
	Snippet      string   `json:"snippet"`
	Explanation  string   `json:"explanation"`
	SuggestedFix string   `json:"suggestedFix,omitempty"`
}

// Title returns the issue type, or "Issue" when the backend left it blank.
func (i Issue) Title() string {
	if i.Type == "" {
		return "Issue"
	}
	return i.Type
}

// Section is one ordered block of contract text and the issues found in it.
type Section struct {
	ID        string   `json:"id"`
	Heading   string   `json:"heading,omitempty"`
	Text      string   `json:"text"`
	RiskLevel Severity `json:"riskLevel"`
	Issues    []Issue  `json:"issues"`
}

// Document is the ordered section list of an analyzed contract.
type Document struct {
	Title    string    `json:"title,omitempty"`
	Sections []Section `json:"sections"`
}

// Summary is the overall assessment of a contract.
type Summary struct {
	OverallRisk Severity `json:"overallRisk"`
	RiskScore   float64  `json:"riskScore"`
}

// Analysis is the full analysis of a single contract.
type Analysis struct {
	ContractID string   `json:"contractId"`
	FileName   string   `json:"fileName"`
	UploadedAt string   `json:"uploadedAt"`
	Document   Document `json:"document"`
	Summary    Summary  `json:"summary"`
}

// DisplayTitle returns the document title, falling back to the file name.
func (a Analysis) DisplayTitle() string {
	if a.Document.Title != "" {
		return a.Document.Title
	}
	return a.FileName
}

// ListItem is a row of the contract list endpoint.
type ListItem struct {
	ContractID  string   `json:"contractId"`
	FileName    string   `json:"fileName"`
	UploadedAt  string   `json:"uploadedAt"`
	OverallRisk Severity `json:"overallRisk"`
	RiskScore   float64  `json:"riskScore"`
}

// ListResponse is the body of the contract list endpoint.
type ListResponse struct {
	Items []ListItem `json:"items"`
}

// Latest returns the most recently uploaded contract. The backend orders the
// list by upload, so the last item is the latest.
func (r ListResponse) Latest() (ListItem, bool) {
	if len(r.Items) == 0 {
		return ListItem{}, false
	}
	return r.Items[len(r.Items)-1], true
}
