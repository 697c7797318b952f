package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/redguard/internal/core/config"
	"github.com/colonyops/redguard/internal/core/styles"
	"github.com/colonyops/redguard/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "redguard config validate [options]",
				Description: "Validates the configuration file, checking the backend URL, scan settings, theme, and file paths.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// validationResult is the JSON output format for config validate.
type validationResult struct {
	Valid    bool                       `json:"valid"`
	Error    string                     `json:"error,omitempty"`
	Fields   []string                   `json:"fields,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
	LogFile  string                     `json:"logFile"`
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	result := newValidationResult(cmd.flags)

	if cmd.format == "json" {
		if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, result); err != nil {
			return err
		}
	} else {
		writeValidationText(c.Root().Writer, result)
	}

	if !result.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

// newValidationResult validates the loaded config. The log file reported is
// the one actually in use, including a --log-file override.
func newValidationResult(flags *Flags) validationResult {
	cfg := flags.Config
	result := validationResult{
		Valid:    true,
		Warnings: cfg.Warnings(),
		LogFile:  cfg.LogFile(flags.LogFile),
	}

	if err := cfg.ValidateDeep(flags.ConfigPath); err != nil {
		result.Valid = false
		result.Error = err.Error()

		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				result.Fields = append(result.Fields, fe.Field)
			}
		}
	}

	return result
}

func writeValidationText(w io.Writer, result validationResult) {
	for _, warn := range result.Warnings {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", styles.MutedStyle.Render("warn"), warn.Category, warn.Message)
		if warn.Item != "" {
			_, _ = fmt.Fprintf(w, "  Item: %s\n", warn.Item)
		}
	}

	_, _ = fmt.Fprintf(w, "Log file: %s\n\n", result.LogFile)

	if result.Valid {
		_, _ = fmt.Fprintln(w, "Configuration is valid")
		return
	}

	_, _ = fmt.Fprintln(w, styles.ErrorStyle.Render(result.Error))
}
