package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/redguard/internal/core/config"
	"github.com/colonyops/redguard/internal/core/contract"
)

const analysisBody = `{
  "contractId": "c2",
  "fileName": "msa.pdf",
  "document": {
    "title": "Master Services Agreement",
    "sections": [
      {
        "id": "s1",
        "heading": "Liability",
        "text": "A. No cap on liability.",
        "riskLevel": "high",
        "issues": [
          {"id": "i1", "type": "Uncapped liability", "severity": "high", "snippet": "No cap on liability", "explanation": "Exposure is unlimited."}
        ]
      }
    ]
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(config.APIConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}, zerolog.Nop())
}

func TestClient_ListContracts(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"items":[{"contractId":"c1","fileName":"a.pdf"},{"contractId":"c2","fileName":"b.pdf"}]}`))
	})

	list, err := c.ListContracts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/contracts", gotPath)
	require.Len(t, list.Items, 2)

	latest, ok := list.Latest()
	require.True(t, ok)
	assert.Equal(t, "c2", latest.ContractID)
}

func TestClient_GetContract(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(analysisBody))
	})

	a, err := c.GetContract(context.Background(), "c2")
	require.NoError(t, err)
	assert.Equal(t, "/api/contracts/c2", gotPath)
	assert.Equal(t, "Master Services Agreement", a.Document.Title)
	require.Len(t, a.Document.Sections, 1)
	require.Len(t, a.Document.Sections[0].Issues, 1)
	assert.Equal(t, contract.SeverityHigh, a.Document.Sections[0].Issues[0].Severity)
}

func TestClient_Failures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`, wantStatus: 500},
		{name: "not found", status: http.StatusNotFound, body: ``, wantStatus: 404},
		{name: "malformed body", status: http.StatusOK, body: `{"items": [`, wantStatus: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.ListContracts(context.Background())
			require.Error(t, err)

			var fe *FetchError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, OpList, fe.Op)
			assert.Equal(t, tt.wantStatus, fe.StatusCode)
			assert.Equal(t, "Failed to load document analysis from backend.", Message(err))
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(config.APIConfig{BaseURL: url, Timeout: time.Second}, zerolog.Nop())
	_, err := c.GetContract(context.Background(), "c1")
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, OpDetail, fe.Op)
	assert.Zero(t, fe.StatusCode)
}
