package api

import (
	"errors"
	"fmt"

	"github.com/colonyops/redguard/internal/core/annotate"
	"github.com/colonyops/redguard/internal/core/contract"
)

// Op names one of the two backend requests.
type Op string

const (
	OpList   Op = "list"
	OpDetail Op = "detail"
)

// ErrEmptyCorpus is returned when the backend has no analyzed contracts.
var ErrEmptyCorpus = errors.New("no analyzed contracts")

// FetchError is a failed backend request: a transport error, a non-2xx
// status, or a body that could not be decoded.
type FetchError struct {
	Op         Op
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s (status %d): %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// RequireText reports ErrEmptyCorpus for an analysis whose joined section text
// is empty. Such a contract has nothing to annotate and is shown like an empty
// corpus.
func RequireText(a contract.Analysis) error {
	if annotate.JoinSections(a.Document.Sections) == "" {
		return fmt.Errorf("contract %q has no text: %w", a.ContractID, ErrEmptyCorpus)
	}
	return nil
}

// Message returns the user-facing text for a load failure. Both failure kinds
// collapse to one message so no partial state is ever described.
func Message(err error) string {
	if errors.Is(err, ErrEmptyCorpus) {
		return "No analyzed contracts found. Upload and analyze a document first."
	}
	return "Failed to load document analysis from backend."
}
