package commands

import (
	"context"
	"fmt"

	"github.com/colonyops/redguard/internal/core/contract"
	"github.com/colonyops/redguard/internal/core/validate"
	"github.com/colonyops/redguard/internal/data/api"
	"github.com/colonyops/redguard/pkg/iojson"
)

// sourceFlags selects where an analysis comes from. They are shared by the
// commands that display a contract.
type sourceFlags struct {
	file       iojson.FileReader[contract.Analysis]
	contractID string
}

// resolve returns the source chosen on the command line: a JSON file, a
// specific contract, or the latest analyzed contract.
func (s *sourceFlags) resolve(flags *Flags) (api.Source, error) {
	if s.file.Provided() {
		if s.contractID != "" {
			return nil, fmt.Errorf("--file and --contract are mutually exclusive")
		}
		a, err := s.file.Read()
		if err != nil {
			return nil, fmt.Errorf("read analysis file: %w", err)
		}
		return api.StaticSource{Analysis: a}, nil
	}

	client := flags.Client()
	if s.contractID != "" {
		if err := validate.ContractIDField("contract", s.contractID); err != nil {
			return nil, err
		}
		return api.ContractSource{Backend: client, ContractID: s.contractID}, nil
	}
	return api.LatestSource{Backend: client}, nil
}

// setPathArg takes an analysis file given as a positional argument.
func (s *sourceFlags) setPathArg(path string) error {
	if path == "" {
		return nil
	}
	if s.file.Provided() && s.file.Path() != path {
		return fmt.Errorf("analysis file given twice: --%s %s and %s", s.file.Name, s.file.Path(), path)
	}
	s.file.SetPath(path)
	return nil
}

// load resolves the source and loads the analysis.
func (s *sourceFlags) load(ctx context.Context, flags *Flags) (contract.Analysis, error) {
	src, err := s.resolve(flags)
	if err != nil {
		return contract.Analysis{}, err
	}
	a, err := src.Load(ctx)
	if err != nil {
		return contract.Analysis{}, fmt.Errorf("%s: %w", api.Message(err), err)
	}
	if err := api.RequireText(a); err != nil {
		return contract.Analysis{}, fmt.Errorf("%s: %w", api.Message(err), err)
	}
	return a, nil
}

func analysisFileReader() iojson.FileReader[contract.Analysis] {
	return iojson.FileReader[contract.Analysis]{
		Name:  "file",
		Usage: "read a contract analysis JSON file instead of the backend ('-' reads stdin)",
	}
}
