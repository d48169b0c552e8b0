package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/colonyops/seqmark/internal/core/config"
	"github.com/colonyops/seqmark/internal/core/styles"
	"github.com/colonyops/seqmark/pkg/iojson"
	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// ConfigIssue is one validation error in machine-readable form.
type ConfigIssue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
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
				UsageText:   "seqmark config validate [options]",
				Description: "Validates the configuration file, checking the loader settings, theme, label colors and demo annotation ranges.",
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

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	if cfg == nil {
		var err error
		if cfg, err = config.Read(cmd.flags.ConfigPath); err != nil {
			return err
		}
	}

	issues := configIssues(cfg.ValidateDeep(cmd.flags.ConfigPath))
	warnings := cfg.Warnings()

	if cmd.format == "json" {
		out := struct {
			Valid    bool                       `json:"valid"`
			Errors   []ConfigIssue              `json:"errors,omitempty"`
			Warnings []config.ValidationWarning `json:"warnings,omitempty"`
		}{
			Valid:    len(issues) == 0,
			Errors:   issues,
			Warnings: warnings,
		}
		if err := iojson.WriteWith(c.Root().Writer, os.Stderr, out); err != nil {
			return err
		}
	} else {
		cmd.outputText(c, issues, warnings)
	}

	if len(issues) > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *ConfigValidateCmd) outputText(c *cli.Command, issues []ConfigIssue, warnings []config.ValidationWarning) {
	w := c.Root().Writer

	for _, warn := range warnings {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", styles.WarningStyle.Render("●"), warn.Category, warn.Message)
		if warn.Item != "" {
			_, _ = fmt.Fprintf(w, "  Item: %s\n", warn.Item)
		}
	}

	for _, issue := range issues {
		field := issue.Field
		if field == "" {
			field = "config"
		}
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", styles.ErrorStyle.Render("✘"), field, issue.Message)
	}

	_, _ = fmt.Fprintln(w)
	if len(issues) == 0 {
		_, _ = fmt.Fprintln(w, styles.SuccessStyle.Render("✔ Configuration is valid"))
		return
	}
	_, _ = fmt.Fprintln(w, styles.ErrorStyle.Render(fmt.Sprintf("%d error(s) found", len(issues))))
}

// configIssues flattens a validation error into field/message pairs.
func configIssues(err error) []ConfigIssue {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []ConfigIssue{{Message: err.Error()}}
	}

	issues := make([]ConfigIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, ConfigIssue{Field: fe.Field, Message: fe.Err.Error()})
	}
	return issues
}
