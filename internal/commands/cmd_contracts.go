package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/redguard/internal/core/contract"
	"github.com/colonyops/redguard/internal/data/api"
	"github.com/colonyops/redguard/pkg/iojson"
)

type ContractsCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewContractsCmd creates the contracts command.
func NewContractsCmd(flags *Flags) *ContractsCmd {
	return &ContractsCmd{flags: flags}
}

// Register adds the contracts command to the application.
func (cmd *ContractsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "contracts",
		Usage: "Inspect analyzed contracts on the backend",
		Commands: []*cli.Command{
			{
				Name:      "ls",
				Usage:     "List analyzed contracts",
				UsageText: "redguard contracts ls [--json]",
				Description: `Lists every analyzed contract in upload order. The last row is the
contract the viewer opens by default.`,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON lines",
						Destination: &cmd.jsonOutput,
					},
				},
				Action: cmd.runList,
			},
		},
	})

	return app
}

func (cmd *ContractsCmd) runList(ctx context.Context, c *cli.Command) error {
	list, err := cmd.flags.Client().ListContracts(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", api.Message(err), err)
	}

	if len(list.Items) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintln(os.Stderr, api.Message(api.ErrEmptyCorpus))
		}
		return nil
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		if err := iojson.WriteLines(out, list.Items); err != nil {
			return fmt.Errorf("encode contracts: %w", err)
		}
		return nil
	}

	return writeContractTable(out, list)
}

func writeContractTable(out io.Writer, list contract.ListResponse) error {
	latest, _ := list.Latest()

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tFILE\tUPLOADED\tRISK\tSCORE\t")

	for _, item := range list.Items {
		marker := ""
		if item.ContractID == latest.ContractID {
			marker = "latest"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\t%s\n",
			item.ContractID, item.FileName, item.UploadedAt, item.OverallRisk.Label(), item.RiskScore, marker)
	}

	return w.Flush()
}
