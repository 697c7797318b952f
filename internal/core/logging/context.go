package logging

import "context"

type contextKey string

const (
	contractIDKey contextKey = "contract_id"
	passKey       contextKey = "scan_pass"
)

// WithContractID adds a contract ID to the context.
func WithContractID(ctx context.Context, contractID string) context.Context {
	return context.WithValue(ctx, contractIDKey, contractID)
}

// WithPass adds a scan pass number to the context.
func WithPass(ctx context.Context, pass int) context.Context {
	return context.WithValue(ctx, passKey, pass)
}

// GetContractID retrieves the contract ID from the context.
// Returns empty string if not present.
func GetContractID(ctx context.Context) string {
	if id, ok := ctx.Value(contractIDKey).(string); ok {
		return id
	}
	return ""
}

// GetPass retrieves the scan pass from the context.
// Returns 0 if not present.
func GetPass(ctx context.Context) int {
	if p, ok := ctx.Value(passKey).(int); ok {
		return p
	}
	return 0
}
