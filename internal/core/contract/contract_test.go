package contract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
	}{
		{"low", SeverityLow},
		{"Medium", SeverityMedium},
		{" HIGH ", SeverityHigh},
		{"critical", SeverityUnknown},
		{"", SeverityUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSeverity(tt.in))
		})
	}
}

func TestAnalysis_DecodeToleratesMissingOptionalFields(t *testing.T) {
	body := `{
		"contractId": "c-1",
		"fileName": "msa.pdf",
		"document": {
			"sections": [
				{"id": "s1", "text": "A. No cap on liability.", "riskLevel": "HIGH",
				 "issues": [{"id": "i1", "severity": "high", "snippet": "No cap on liability.", "explanation": "x"}]},
				{"id": "s2", "text": "B. Fine.", "riskLevel": "bogus", "issues": null}
			]
		}
	}`

	var a Analysis
	require.NoError(t, json.Unmarshal([]byte(body), &a))

	require.Len(t, a.Document.Sections, 2)
	assert.Empty(t, a.Document.Sections[0].Heading)
	assert.Equal(t, SeverityHigh, a.Document.Sections[0].RiskLevel)
	assert.Equal(t, SeverityUnknown, a.Document.Sections[1].RiskLevel)
	assert.Empty(t, a.Document.Sections[0].Issues[0].SuggestedFix)
	assert.Equal(t, "msa.pdf", a.DisplayTitle())
	assert.Equal(t, "Issue", a.Document.Sections[0].Issues[0].Title())
}

func TestListResponse_Latest(t *testing.T) {
	_, ok := ListResponse{}.Latest()
	assert.False(t, ok)

	latest, ok := ListResponse{Items: []ListItem{{ContractID: "a"}, {ContractID: "b"}}}.Latest()
	require.True(t, ok)
	assert.Equal(t, "b", latest.ContractID)
}

func TestSeverity_Label(t *testing.T) {
	assert.Equal(t, "High", SeverityHigh.Label())
	assert.Equal(t, "Low", SeverityLow.Label())
	assert.Equal(t, "Unknown", SeverityUnknown.Label())
}
