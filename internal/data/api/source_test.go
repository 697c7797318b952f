package api

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/redguard/internal/core/contract"
)

type fakeBackend struct {
	list      contract.ListResponse
	listErr   error
	analyses  map[string]contract.Analysis
	detailErr error
	requested []string
}

func (f *fakeBackend) ListContracts(context.Context) (contract.ListResponse, error) {
	return f.list, f.listErr
}

func (f *fakeBackend) GetContract(_ context.Context, id string) (contract.Analysis, error) {
	f.requested = append(f.requested, id)
	if f.detailErr != nil {
		return contract.Analysis{}, f.detailErr
	}
	return f.analyses[id], nil
}

func TestLatestSource(t *testing.T) {
	t.Run("loads the last listed contract", func(t *testing.T) {
		b := &fakeBackend{
			list: contract.ListResponse{Items: []contract.ListItem{{ContractID: "c1"}, {ContractID: "c2"}}},
			analyses: map[string]contract.Analysis{
				"c2": {ContractID: "c2", Document: contract.Document{Title: "Latest"}},
			},
		}

		a, err := LatestSource{Backend: b}.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Latest", a.Document.Title)
		assert.Equal(t, []string{"c2"}, b.requested)
	})

	t.Run("empty corpus", func(t *testing.T) {
		b := &fakeBackend{}

		_, err := LatestSource{Backend: b}.Load(context.Background())
		require.ErrorIs(t, err, ErrEmptyCorpus)
		assert.Empty(t, b.requested, "detail must not be requested")
		assert.Equal(t, "No analyzed contracts found. Upload and analyze a document first.", Message(err))
	})

	t.Run("list failure", func(t *testing.T) {
		b := &fakeBackend{listErr: &FetchError{Op: OpList, StatusCode: 503, Err: errors.New("unavailable")}}

		_, err := LatestSource{Backend: b}.Load(context.Background())
		var fe *FetchError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, 503, fe.StatusCode)
		assert.Empty(t, b.requested)
	})

	t.Run("detail failure", func(t *testing.T) {
		b := &fakeBackend{
			list:      contract.ListResponse{Items: []contract.ListItem{{ContractID: "c1"}}},
			detailErr: &FetchError{Op: OpDetail, StatusCode: 500, Err: errors.New("boom")},
		}

		_, err := LatestSource{Backend: b}.Load(context.Background())
		var fe *FetchError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, OpDetail, fe.Op)
	})
}

func TestLatestSource_OverHTTP(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Path {
		case "/api/contracts":
			_, _ = w.Write([]byte(`{"items":[{"contractId":"c1"},{"contractId":"c2"}]}`))
		case "/api/contracts/c2":
			_, _ = w.Write([]byte(analysisBody))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	a, err := LatestSource{Backend: c}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "c2", a.ContractID)
	assert.Equal(t, int32(2), calls.Load())
}

func TestContractSource(t *testing.T) {
	b := &fakeBackend{analyses: map[string]contract.Analysis{"c7": {ContractID: "c7"}}}

	a, err := ContractSource{Backend: b, ContractID: "c7"}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "c7", a.ContractID)
}

func TestStaticSource(t *testing.T) {
	want := contract.Analysis{ContractID: "file"}
	got, err := StaticSource{Analysis: want}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRequireText(t *testing.T) {
	tests := []struct {
		name     string
		sections []contract.Section
		wantErr  bool
	}{
		{"has text", []contract.Section{{ID: "s1", Text: "Term."}}, false},
		{"no sections", nil, true},
		{"only empty sections", []contract.Section{{ID: "s1"}, {ID: "s2"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireText(contract.Analysis{ContractID: "c1", Document: contract.Document{Sections: tt.sections}})
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrEmptyCorpus)
			assert.Equal(t, "No analyzed contracts found. Upload and analyze a document first.", Message(err))
		})
	}
}
