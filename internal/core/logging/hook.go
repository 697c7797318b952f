package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts contract_id and scan_pass from context and adds them to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if contractID := GetContractID(ctx); contractID != "" {
		e.Str("contract_id", contractID)
	}

	if pass := GetPass(ctx); pass != 0 {
		e.Int("scan_pass", pass)
	}
}
