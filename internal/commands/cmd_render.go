package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/redguard/internal/core/annotate"
	"github.com/colonyops/redguard/internal/core/contract"
	"github.com/colonyops/redguard/internal/core/styles"
	"github.com/colonyops/redguard/internal/tui"
	"github.com/colonyops/redguard/pkg/iojson"
)

const fallbackWidth = 80

type RenderCmd struct {
	flags *Flags

	source     sourceFlags
	width      int
	jsonOutput bool
}

// NewRenderCmd creates the render command.
func NewRenderCmd(flags *Flags) *RenderCmd {
	return &RenderCmd{
		flags:  flags,
		source: sourceFlags{file: analysisFileReader()},
	}
}

// Register adds the render command to the application.
func (cmd *RenderCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "render",
		Usage:     "Print the annotated contract without the interactive viewer",
		UsageText: "redguard render [--file path | --contract id | path] [--width n] [--json]",
		Description: `Prints the contract text with every risk highlighted, followed by the list
of risks. Use --json for the document text, highlight ranges, and segments.`,
		Flags: []cli.Flag{
			cmd.source.file.Flag(),
			&cli.StringFlag{
				Name:        "contract",
				Usage:       "contract id to render instead of the latest",
				Destination: &cmd.source.contractID,
			},
			&cli.IntFlag{
				Name:        "width",
				Usage:       "wrap width (defaults to the terminal width)",
				Destination: &cmd.width,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RenderCmd) run(ctx context.Context, c *cli.Command) error {
	if err := cmd.source.setPathArg(c.Args().First()); err != nil {
		return err
	}

	a, err := cmd.source.load(ctx, cmd.flags)
	if err != nil {
		return err
	}

	doc := annotate.Build(a.Document.Sections)
	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.WriteWith(out, c.Root().ErrWriter, newRenderOutput(a, doc))
	}

	return writeRendered(out, a, doc, cmd.resolveWidth())
}

func (cmd *RenderCmd) resolveWidth() int {
	if cmd.width > 0 {
		return cmd.width
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return fallbackWidth
}

func writeRendered(w io.Writer, a contract.Analysis, doc annotate.Document, width int) error {
	if title := a.DisplayTitle(); title != "" {
		_, _ = fmt.Fprintln(w, styles.HeaderStyle.Render(title))
		_, _ = fmt.Fprintln(w)
	}

	_, _ = fmt.Fprintln(w, tui.RenderStatic(doc, width))

	highlights := annotate.SortByStart(doc.Highlights)
	if len(highlights) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, styles.HeaderStyle.Render(fmt.Sprintf("Risks (%d)", len(highlights))))
		for _, h := range highlights {
			_, _ = fmt.Fprintf(w, "%s %s: %s\n",
				styles.BadgeStyle(h.Severity).Render(h.Severity.Label()),
				h.Issue.Title(),
				h.Issue.Explanation,
			)
			if h.Issue.SuggestedFix != "" {
				_, _ = fmt.Fprintf(w, "  %s %s\n", styles.MutedStyle.Render("fix:"), h.Issue.SuggestedFix)
			}
		}
	}

	if len(doc.Dropped) > 0 {
		_, _ = fmt.Fprintln(w)
		for _, d := range doc.Dropped {
			_, err := fmt.Fprintln(w, styles.MutedStyle.Render(fmt.Sprintf("unlocated: %s (section %s)", d.IssueID, d.SectionID)))
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// renderOutput is the JSON output format for redguard render --json.
type renderOutput struct {
	ContractID string             `json:"contractId,omitempty"`
	Title      string             `json:"title,omitempty"`
	Text       string             `json:"text"`
	Highlights []highlightOutput  `json:"highlights"`
	Segments   []segmentOutput    `json:"segments"`
	Dropped    []annotate.Dropped `json:"dropped,omitempty"`
}

type highlightOutput struct {
	IssueID  string            `json:"issueId"`
	Start    int               `json:"start"`
	End      int               `json:"end"`
	Severity contract.Severity `json:"severity"`
	Text     string            `json:"text"`
}

type segmentOutput struct {
	Kind     string   `json:"kind"`
	Start    int      `json:"start"`
	End      int      `json:"end"`
	IssueIDs []string `json:"issueIds,omitempty"`
	Selected bool     `json:"selected,omitempty"`
}

func newRenderOutput(a contract.Analysis, doc annotate.Document) renderOutput {
	out := renderOutput{
		ContractID: a.ContractID,
		Title:      a.DisplayTitle(),
		Text:       doc.Text,
		Highlights: make([]highlightOutput, 0, len(doc.Highlights)),
		Dropped:    doc.Dropped,
	}

	for _, h := range doc.Highlights {
		out.Highlights = append(out.Highlights, highlightOutput{
			IssueID:  h.IssueID,
			Start:    h.Start,
			End:      h.End,
			Severity: h.Severity,
			Text:     h.Text,
		})
	}

	segments := tui.FinalSegments(doc)
	out.Segments = make([]segmentOutput, 0, len(segments))
	for _, s := range segments {
		so := segmentOutput{
			Kind:     s.Kind.String(),
			Start:    s.Start,
			End:      s.End,
			Selected: s.Selected,
		}
		for _, h := range s.Highlights {
			so.IssueIDs = append(so.IssueIDs, h.IssueID)
		}
		out.Segments = append(out.Segments, so)
	}

	return out
}
