// Package tui implements the interactive contract viewer.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/colonyops/redguard/internal/core/annotate"
	"github.com/colonyops/redguard/internal/core/config"
	"github.com/colonyops/redguard/internal/core/contract"
	"github.com/colonyops/redguard/internal/core/logging"
	"github.com/colonyops/redguard/internal/core/scan"
	"github.com/colonyops/redguard/internal/core/styles"
	"github.com/colonyops/redguard/internal/data/api"
)

const (
	defaultWidth       = 100
	defaultHeight      = 30
	defaultDetailWidth = 44
)

type viewState int

const (
	stateLoading viewState = iota
	stateReady
	stateFailed
)

// Options configures the viewer.
type Options struct {
	Source      api.Source
	Scan        config.ScanConfig
	DetailWidth int
	Logger      *zerolog.Logger  // defaults to the "tui" component logger
	Now         func() time.Time // clock used to measure scan progress
}

// Model is the bubbletea model for the contract viewer.
type Model struct {
	ctx           context.Context
	source        api.Source
	log           zerolog.Logger
	now           func() time.Time
	frameInterval time.Duration
	detailWidth   int

	state    viewState
	errMsg   string
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap

	analysis  contract.Analysis
	doc       annotate.Document
	scan      scan.State
	startedAt time.Time
	logCtx    context.Context // carries contract id and pass for log events
	selection annotate.Selection
	segments  []annotate.Segment
	detail    string // rendered detail panel body, refreshed on selection or resize

	width    int
	height   int
	quitting bool
}

// New creates the viewer model. The analysis is fetched when the program
// starts.
func New(ctx context.Context, opts Options) Model {
	logger := logging.Component("tui")
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	detailWidth := opts.DetailWidth
	if detailWidth <= 0 {
		detailWidth = defaultDetailWidth
	}

	duration := opts.Scan.Duration
	if duration <= 0 {
		duration = scan.DefaultDuration
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styles.MutedStyle

	m := Model{
		ctx:           ctx,
		logCtx:        ctx,
		source:        opts.Source,
		log:           logger,
		now:           now,
		frameInterval: opts.Scan.FrameInterval(),
		detailWidth:   detailWidth,
		state:         stateLoading,
		spinner:       sp,
		viewport:      viewport.New(0, 0),
		help:          newHelp(),
		keys:          defaultKeyMap(),
		scan:          scan.New(duration),
		width:         defaultWidth,
		height:        defaultHeight,
	}
	m.resize()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadAnalysis(m.ctx, m.source))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.renderDetail()
		m.syncViewport(true)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.state != stateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case analysisLoadedMsg:
		return m.handleLoaded(msg.analysis)

	case analysisFailedMsg:
		return m.handleFailed(msg.err)

	case scanFrameMsg:
		return m.handleFrame(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Reload):
		if m.state == stateLoading {
			return m, nil
		}
		m.state = stateLoading
		return m, tea.Batch(m.spinner.Tick, loadAnalysis(m.ctx, m.source))
	}

	if m.state != stateReady {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		m.moveSelection(1)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.moveSelection(-1)
		return m, nil
	case key.Matches(msg, m.keys.First):
		m.selection = annotate.DefaultSelection(m.doc.Highlights)
		m.refreshSegments()
		m.renderDetail()
		m.syncViewport(true)
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleLoaded installs a new analysis. Derived state is rebuilt from scratch;
// the active set and selection are reset only when the document text changed,
// and a scan pass is started for new text.
func (m Model) handleLoaded(a contract.Analysis) (tea.Model, tea.Cmd) {
	log := m.log.With().Str("contract_id", a.ContractID).Logger()

	doc := annotate.Build(a.Document.Sections)
	if doc.Empty() {
		return m.handleFailed(api.RequireText(a))
	}
	for _, d := range doc.Dropped {
		log.Debug().Str("section_id", d.SectionID).Str("issue_id", d.IssueID).Msg("snippet not found in section text")
	}
	stats := doc.Stats()
	log.Info().Int("located", stats.Located).Int("dropped", stats.Dropped).Int("bytes", len(doc.Text)).Msg("analysis loaded")

	textChanged := doc.Text != m.doc.Text
	prevPass := m.scan.Pass

	m.state = stateReady
	m.errMsg = ""
	m.analysis = a
	m.doc = doc
	m.scan = m.scan.Start(doc)
	if textChanged {
		m.selection = annotate.DefaultSelection(doc.Highlights)
	} else {
		m.selection = m.reselect()
	}
	m.refreshSegments()
	m.renderDetail()
	m.syncViewport(textChanged)

	if m.scan.Scanning() && m.scan.Pass != prevPass {
		m.startedAt = m.now()
		m.logCtx = logging.WithPass(logging.WithContractID(m.ctx, a.ContractID), m.scan.Pass)
		m.log.Debug().Ctx(m.logCtx).Int("highlights", m.scan.Total()).Msg("scan started")
		return m, scheduleScanFrame(m.scan.Pass, m.frameInterval)
	}
	return m, nil
}

// handleFailed clears every piece of derived state so no partial document is
// shown.
func (m Model) handleFailed(err error) (tea.Model, tea.Cmd) {
	m.log.Error().Err(err).Msg("failed to load analysis")

	m.state = stateFailed
	m.errMsg = api.Message(err)
	m.analysis = contract.Analysis{}
	m.doc = annotate.Document{}
	m.scan = m.scan.Start(m.doc)
	m.selection = annotate.NoSelection
	m.segments = nil
	m.detail = ""
	m.viewport.SetContent("")
	return m, nil
}

// handleFrame advances the scan. Frames from a superseded pass, or arriving
// after quit, are dropped and not rescheduled.
func (m Model) handleFrame(msg scanFrameMsg) (tea.Model, tea.Cmd) {
	if m.quitting || !m.scan.Accepts(msg.pass) {
		return m, nil
	}

	m.scan = scan.Tick(m.scan, msg.at.Sub(m.startedAt))
	if m.scan.Changed {
		m.refreshSegments()
		m.syncViewport(false)
	}

	if !m.scan.Scanning() {
		m.log.Debug().Ctx(m.logCtx).Int("active", m.scan.Active.Len()).Msg("scan finished")
		return m, nil
	}
	return m, scheduleScanFrame(msg.pass, m.frameInterval)
}

// moveSelection selects the highlight delta steps away from the current one
// in start order, wrapping at either end. Stepping is over highlights, not
// segments, so overlapping highlights are each reachable.
func (m *Model) moveSelection(delta int) {
	order := annotate.SortByStart(m.doc.Highlights)
	if len(order) == 0 {
		return
	}

	cur := -1
	if h, ok := m.selection.Highlight(); ok {
		for i, o := range order {
			if o.Index == h.Index {
				cur = i
				break
			}
		}
	}

	var next int
	switch {
	case cur < 0 && delta < 0:
		next = len(order) - 1
	case cur < 0:
		next = 0
	default:
		next = (cur + delta + len(order)) % len(order)
	}

	m.selection = annotate.SelectHighlight(order[next], m.segments)
	m.refreshSegments()
	m.renderDetail()
	m.syncViewport(true)
}

// reselect keeps the current selection when its issue still exists in the
// rebuilt document.
func (m Model) reselect() annotate.Selection {
	issue, ok := m.selection.Issue()
	if !ok {
		return annotate.DefaultSelection(m.doc.Highlights)
	}
	for _, h := range m.doc.Highlights {
		if h.IssueID == issue.ID {
			segments := annotate.Segments(m.doc.Text, m.doc.Highlights, nil, annotate.NoSelection)
			return annotate.SelectHighlight(h, segments)
		}
	}
	return annotate.DefaultSelection(m.doc.Highlights)
}

func (m *Model) refreshSegments() {
	m.segments = annotate.Segments(m.doc.Text, m.doc.Highlights, m.scan.Active, m.selection)
}
