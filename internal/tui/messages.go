package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/redguard/internal/core/contract"
	"github.com/colonyops/redguard/internal/data/api"
)

// analysisLoadedMsg carries a successfully loaded analysis.
type analysisLoadedMsg struct {
	analysis contract.Analysis
}

// analysisFailedMsg carries a load failure.
type analysisFailedMsg struct {
	err error
}

// scanFrameMsg is one animation frame for the given scan pass.
type scanFrameMsg struct {
	pass int
	at   time.Time
}

// loadAnalysis returns a command that fetches the analysis off the UI loop.
func loadAnalysis(ctx context.Context, src api.Source) tea.Cmd {
	return func() tea.Msg {
		a, err := src.Load(ctx)
		if err != nil {
			return analysisFailedMsg{err: err}
		}
		return analysisLoadedMsg{analysis: a}
	}
}

// scheduleScanFrame returns a command that delivers the next frame for pass.
func scheduleScanFrame(pass int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return scanFrameMsg{pass: pass, at: t}
	})
}
