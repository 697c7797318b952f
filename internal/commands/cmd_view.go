package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/redguard/internal/core/contract"
	"github.com/colonyops/redguard/internal/core/logging"
	"github.com/colonyops/redguard/internal/core/validate"
	"github.com/colonyops/redguard/internal/data/api"
	"github.com/colonyops/redguard/internal/tui"
	"github.com/colonyops/redguard/pkg/profiler"
)

type ViewCmd struct {
	flags *Flags

	source       sourceFlags
	pick         bool
	profilerPort int
}

// NewViewCmd creates the interactive viewer command.
func NewViewCmd(flags *Flags) *ViewCmd {
	return &ViewCmd{
		flags: flags,
		source: sourceFlags{
			file: analysisFileReader(),
		},
	}
}

// Flags returns the viewer flags. A fresh set is built on every call so the
// root command and the view subcommand do not share flag instances.
func (cmd *ViewCmd) Flags() []cli.Flag {
	return []cli.Flag{
		cmd.source.file.Flag(),
		&cli.StringFlag{
			Name:        "contract",
			Usage:       "contract id to open instead of the latest",
			Destination: &cmd.source.contractID,
		},
		&cli.BoolFlag{
			Name:        "pick",
			Usage:       "choose the contract from a list",
			Destination: &cmd.pick,
		},
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("REDGUARD_PROFILER_PORT"),
			Destination: &cmd.profilerPort,
		},
	}
}

// Register adds the view command to the application.
func (cmd *ViewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "view",
		Usage:     "Open the interactive contract viewer",
		UsageText: "redguard view [--file path | --contract id | --pick]",
		Description: `Loads the latest analyzed contract, plays the risk scan, and shows the
detail of each highlighted clause.

Use n/p to move between risks, r to reload, q to quit.`,
		Flags:  cmd.Flags(),
		Action: cmd.Run,
	})

	return app
}

// Run launches the viewer.
func (cmd *ViewCmd) Run(ctx context.Context, c *cli.Command) error {
	if cmd.pick {
		if cmd.source.file.Provided() || cmd.source.contractID != "" {
			return fmt.Errorf("--pick cannot be combined with --file or --contract")
		}
		id, err := pickContract(ctx, cmd.flags.Client())
		if err != nil {
			return err
		}
		cmd.source.contractID = id
	}

	src, err := cmd.source.resolve(cmd.flags)
	if err != nil {
		return err
	}

	if cmd.profilerPort > 0 {
		if err := validate.PortField("profiler-port", cmd.profilerPort); err != nil {
			return err
		}
		profServer := profiler.New(cmd.profilerPort, logging.Component("profiler"))
		if err := profServer.Start(); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		log.Info().Str("url", profServer.URL()).Msg("profiler endpoint available")
	}

	cfg := cmd.flags.Config
	m := tui.New(ctx, tui.Options{
		Source:      src,
		Scan:        cfg.Scan,
		DetailWidth: cfg.TUI.DetailWidth,
	})

	logging.ForContract("view", cmd.source.contractID).Debug().
		Str("base_url", cfg.API.BaseURL).
		Str("file", cmd.source.file.Path()).
		Msg("starting viewer")

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// pickContract lists the analyzed contracts, newest first, and returns the id
// the user selected.
func pickContract(ctx context.Context, backend api.Backend) (string, error) {
	list, err := backend.ListContracts(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", api.Message(err), err)
	}
	if len(list.Items) == 0 {
		return "", fmt.Errorf("%s: %w", api.Message(api.ErrEmptyCorpus), api.ErrEmptyCorpus)
	}

	options := make([]huh.Option[string], 0, len(list.Items))
	for i := len(list.Items) - 1; i >= 0; i-- {
		item := list.Items[i]
		options = append(options, huh.NewOption(contractLabel(item), item.ContractID))
	}

	var id string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select a contract").
				Options(options...).
				Value(&id),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.RunWithContext(ctx); err != nil {
		return "", fmt.Errorf("pick contract: %w", err)
	}
	return id, nil
}

func contractLabel(item contract.ListItem) string {
	name := item.FileName
	if name == "" {
		name = item.ContractID
	}
	if item.OverallRisk == contract.SeverityUnknown {
		return name
	}
	return fmt.Sprintf("%s  [%s risk]", name, item.OverallRisk.Label())
}
