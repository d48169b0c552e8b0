package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/colonyops/seqmark/internal/core/logging"
	"github.com/colonyops/seqmark/internal/core/notify"
	"github.com/colonyops/seqmark/internal/core/state"
	"github.com/colonyops/seqmark/internal/core/styles"
	"github.com/colonyops/seqmark/internal/script"
	"github.com/colonyops/seqmark/pkg/iojson"
	"github.com/colonyops/seqmark/pkg/tmpl"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

type ApplyCmd struct {
	flags *Flags
	fr    *iojson.FileReader[*script.Script]

	// flags
	input       string
	demo        bool
	format      string
	stopOnError bool
}

// NewApplyCmd creates a new apply command
func NewApplyCmd(flags *Flags) *ApplyCmd {
	return &ApplyCmd{
		flags: flags,
		fr: &iojson.FileReader[*script.Script]{
			Name:   "script",
			Decode: script.Parse,
		},
	}
}

// ApplyReport is the outcome of one apply run.
type ApplyReport struct {
	Script        string                `json:"script,omitempty"`
	Applied       int                   `json:"applied"`
	Failed        int                   `json:"failed"`
	Skipped       int                   `json:"skipped"`
	Results       []script.StepResult   `json:"results"`
	Notifications []notify.Notification `json:"notifications"`
	State         state.State           `json:"state"`
}

// Register adds the apply command to the application
func (cmd *ApplyCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "apply",
		Usage: "Replay an editing script against a sequence",
		UsageText: `seqmark apply [options]

Read from stdin:
  echo 'steps: [{op: add-label, name: exon, color: "#9ece6a"}]' | seqmark apply

Read from file:
  seqmark apply -s edits.yaml --input genome.seq`,
		Description: `Runs a YAML or JSON script of store operations and reports each step,
the notifications raised along the way, and the final labels.

The sequence comes from --input, or from the demo data with --demo. Without
either the script runs against an empty sequence.

Script schema:
  name: optional
  steps:
    - op: add-label          # name, color, active
    - op: update-label       # label, name, color
    - op: remove-label       # label
    - op: toggle-label       # label
    - op: add-annotation     # label, from, to, reverse, note
    - op: update-annotation  # label, annotation, from, to, reverse, note
    - op: select-annotation  # label, from, to
    - op: click              # position
    - op: from-bound         # position
    - op: to-bound           # position
    - op: clear-selection

label is a label name or zero-based index. Positions are 1-based.

Every step runs even after a failure unless --stop-on-error is set. The
command exits 1 when any step failed.`,
		Flags: []cli.Flag{
			cmd.fr.Flag(),
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "sequence file to load before the script runs",
				Destination: &cmd.input,
			},
			&cli.BoolFlag{
				Name:        "demo",
				Usage:       "start from the demo data set",
				Destination: &cmd.demo,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json, markdown)",
				Value:       "text",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "stop-on-error",
				Usage:       "skip the remaining steps after the first failure",
				Destination: &cmd.stopOnError,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ApplyCmd) run(ctx context.Context, c *cli.Command) error {
	switch cmd.format {
	case "text", "json", "markdown":
	default:
		return fmt.Errorf("unknown format %q (available: text, json, markdown)", cmd.format)
	}
	if cmd.input != "" && cmd.demo {
		return fmt.Errorf("--input and --demo are mutually exclusive")
	}

	cfg, err := cmd.flags.validConfig()
	if err != nil {
		return err
	}

	s, err := cmd.fr.Read()
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid script: %w", err)
	}

	ed := newEditor(cfg, log.Logger)
	defer ed.Close()

	switch {
	case cmd.input != "":
		if err := ed.loadFile(ctx, cmd.input); err != nil {
			return err
		}
	case cmd.demo:
		if err := ed.store.LoadFromDemo(); err != nil {
			return fmt.Errorf("load demo: %w", err)
		}
	}

	runner := &script.Runner{
		Store:       ed.store,
		Log:         logging.Component("script"),
		StopOnError: cmd.stopOnError,
	}

	results, runErr := runner.Run(ctx, s)
	if ctx.Err() != nil {
		return runErr
	}

	report := newApplyReport(s.Name, results, ed.notes.List(), ed.store.State())

	switch cmd.format {
	case "json":
		err = iojson.WriteWith(c.Root().Writer, os.Stderr, report)
	case "markdown":
		err = cmd.writeMarkdown(c, report)
	default:
		cmd.writeText(c, report)
	}
	if err != nil {
		return err
	}

	if report.Failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func newApplyReport(name string, results []script.StepResult, notes []notify.Notification, st state.State) ApplyReport {
	r := ApplyReport{
		Script:        name,
		Results:       results,
		Notifications: notes,
		State:         st,
	}
	for _, res := range results {
		switch res.Status {
		case script.StatusApplied:
			r.Applied++
		case script.StatusFailed:
			r.Failed++
		case script.StatusSkipped:
			r.Skipped++
		}
	}
	return r
}

func (cmd *ApplyCmd) writeText(c *cli.Command, r ApplyReport) {
	w := c.Root().Writer

	rows := make([][]string, 0, len(r.Results))
	for _, res := range r.Results {
		var status string
		switch res.Status {
		case script.StatusApplied:
			status = styles.SuccessStyle.Render("✔ " + res.Status)
		case script.StatusFailed:
			status = styles.ErrorStyle.Render("✘ " + res.Status)
		default:
			status = styles.MutedStyle.Render("● " + res.Status)
		}
		rows = append(rows, []string{fmt.Sprint(res.Index + 1), string(res.Op), status, res.Error})
	}
	_, _ = fmt.Fprintln(w, styles.Table([]string{"#", "Op", "Status", "Error"}, rows))

	if len(r.Notifications) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, styles.TitleStyle.Render("Notifications"))
		for _, n := range r.Notifications {
			style := styles.MutedStyle
			switch n.Level {
			case notify.LevelWarning:
				style = styles.WarningStyle
			case notify.LevelError:
				style = styles.ErrorStyle
			}
			_, _ = fmt.Fprintf(w, "  %s %s\n", style.Render(string(n.Level)), n.Message)
		}
	}

	_, _ = fmt.Fprintln(w)
	labelRows := make([][]string, 0, r.State.Labels.Len())
	for _, l := range r.State.Labels.All() {
		labelRows = append(labelRows, []string{
			styles.LabelStyle(l.Color, l.IsActive).Render(l.Name),
			styles.Swatch(l.Color),
			formatRanges(l.Annotations),
		})
	}
	_, _ = fmt.Fprintln(w, styles.Table([]string{"Label", "Color", "Annotations"}, labelRows))

	_, _ = fmt.Fprintf(w, "%s  %s  %s\n",
		styles.SuccessStyle.Render(fmt.Sprintf("%d applied", r.Applied)),
		styles.ErrorStyle.Render(fmt.Sprintf("%d failed", r.Failed)),
		styles.MutedStyle.Render(fmt.Sprintf("%d skipped", r.Skipped)),
	)
}

func (cmd *ApplyCmd) writeMarkdown(c *cli.Command, r ApplyReport) error {
	md, err := tmpl.Render(reportTemplate, r)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	out, err := styles.RenderMarkdown(md, styles.Width(os.Stdout), styles.IsTerminal(os.Stdout))
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(c.Root().Writer, out)
	return err
}
