// Package api fetches contract analyses from the analysis backend.
package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/redguard/internal/core/config"
	"github.com/colonyops/redguard/internal/core/contract"
)

const (
	contractsPath = "/api/contracts"
	contractPath  = "/api/contracts/{contractId}"
)

// Client talks to the contract analysis backend.
type Client struct {
	httpc *resty.Client
	log   zerolog.Logger
}

// New returns a client for the backend at cfg.BaseURL.
func New(cfg config.APIConfig, logger zerolog.Logger) *Client {
	httpc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetDebug(cfg.Debug).
		SetLogger(zerologAdapter{log: logger})

	httpc.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debug().
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Dur("duration", resp.Time()).
			Msg("backend response")
		return nil
	})

	return &Client{httpc: httpc, log: logger}
}

// ListContracts returns every analyzed contract, ordered by upload.
func (c *Client) ListContracts(ctx context.Context) (contract.ListResponse, error) {
	var out contract.ListResponse

	resp, err := c.httpc.R().
		SetContext(ctx).
		Get(contractsPath)
	if err := unmarshalResponse(OpList, resp, err, &out); err != nil {
		return contract.ListResponse{}, err
	}

	return out, nil
}

// GetContract returns the full analysis of one contract.
func (c *Client) GetContract(ctx context.Context, contractID string) (contract.Analysis, error) {
	var out contract.Analysis

	resp, err := c.httpc.R().
		SetContext(ctx).
		SetPathParam("contractId", contractID).
		Get(contractPath)
	if err := unmarshalResponse(OpDetail, resp, err, &out); err != nil {
		return contract.Analysis{}, err
	}

	return out, nil
}

// unmarshalResponse turns a transport error, a non-2xx status, or an
// undecodable body into a FetchError.
func unmarshalResponse[T any](op Op, resp *resty.Response, reqErr error, out *T) error {
	if reqErr != nil {
		return &FetchError{Op: op, Err: reqErr}
	}

	if !resp.IsSuccess() {
		return &FetchError{
			Op:         op,
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("%s request failed with status %d", op, resp.StatusCode()),
		}
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &FetchError{Op: op, StatusCode: resp.StatusCode(), Err: fmt.Errorf("decode %s response: %w", op, err)}
	}

	return nil
}

// zerologAdapter adapts a zerolog.Logger to the resty.Logger interface.
type zerologAdapter struct {
	log zerolog.Logger
}

func (a zerologAdapter) Errorf(format string, v ...interface{}) {
	a.log.Error().Msgf(format, v...)
}

func (a zerologAdapter) Warnf(format string, v ...interface{}) {
	a.log.Warn().Msgf(format, v...)
}

func (a zerologAdapter) Debugf(format string, v ...interface{}) {
	a.log.Debug().Msgf(format, v...)
}
