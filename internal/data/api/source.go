package api

import (
	"context"
	"fmt"

	"github.com/colonyops/redguard/internal/core/contract"
)

// Source produces the analysis to display.
type Source interface {
	Load(ctx context.Context) (contract.Analysis, error)
}

// Backend is the subset of Client used by the sources.
type Backend interface {
	ListContracts(ctx context.Context) (contract.ListResponse, error)
	GetContract(ctx context.Context, contractID string) (contract.Analysis, error)
}

// LatestSource loads the most recently uploaded contract: the list request
// runs first, then the detail request for its last item.
type LatestSource struct {
	Backend Backend
}

func (s LatestSource) Load(ctx context.Context) (contract.Analysis, error) {
	list, err := s.Backend.ListContracts(ctx)
	if err != nil {
		return contract.Analysis{}, fmt.Errorf("list contracts: %w", err)
	}

	latest, ok := list.Latest()
	if !ok {
		return contract.Analysis{}, ErrEmptyCorpus
	}

	analysis, err := s.Backend.GetContract(ctx, latest.ContractID)
	if err != nil {
		return contract.Analysis{}, fmt.Errorf("load contract %s: %w", latest.ContractID, err)
	}

	return analysis, nil
}

// ContractSource loads a specific contract by id.
type ContractSource struct {
	Backend    Backend
	ContractID string
}

func (s ContractSource) Load(ctx context.Context) (contract.Analysis, error) {
	analysis, err := s.Backend.GetContract(ctx, s.ContractID)
	if err != nil {
		return contract.Analysis{}, fmt.Errorf("load contract %s: %w", s.ContractID, err)
	}
	return analysis, nil
}

// StaticSource returns an analysis that is already in memory, e.g. decoded
// from a file.
type StaticSource struct {
	Analysis contract.Analysis
}

func (s StaticSource) Load(context.Context) (contract.Analysis, error) {
	return s.Analysis, nil
}
