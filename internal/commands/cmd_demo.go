package commands

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/colonyops/seqmark/internal/core/annotation"
	"github.com/colonyops/seqmark/internal/core/state"
	"github.com/colonyops/seqmark/internal/core/styles"
	"github.com/colonyops/seqmark/pkg/iojson"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

type DemoCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
	span       string
}

// NewDemoCmd creates a new demo command
func NewDemoCmd(flags *Flags) *DemoCmd {
	return &DemoCmd{flags: flags}
}

// Register adds the demo command to the application
func (cmd *DemoCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "demo",
		Usage:     "Show the demo sequence and its labels",
		UsageText: "seqmark demo [--json] [--select FROM:TO] [label...]",
		Description: `Loads the demo data set (the built-in one unless the config defines demo:)
and prints its labels with their colors and annotation ranges.

Pass label names to show only those labels. --select takes 1-based display
positions and prints the symbols they cover.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output the full state as JSON",
				Destination: &cmd.jsonOutput,
			},
			&cli.StringFlag{
				Name:        "select",
				Usage:       "select positions FROM:TO (1-based, inclusive)",
				Destination: &cmd.span,
			},
		},
		ShellComplete: LabelNameCompleter(cmd.flags),
		Action:        cmd.run,
	})

	return app
}

func (cmd *DemoCmd) run(_ context.Context, c *cli.Command) error {
	cfg, err := cmd.flags.validConfig()
	if err != nil {
		return err
	}

	ed := newEditor(cfg, log.Logger)
	defer ed.Close()

	if err := ed.store.LoadFromDemo(); err != nil {
		return fmt.Errorf("load demo: %w", err)
	}

	if cmd.span != "" {
		from, to, err := parseSpan(cmd.span)
		if err != nil {
			return err
		}
		ed.store.SetSelectionFromBound(from)
		ed.store.SetSelectionToBound(to)
	}

	st := ed.store.State()
	labels, err := filterLabels(st.Labels, c.Args().Slice())
	if err != nil {
		return err
	}

	if cmd.jsonOutput {
		st.Labels = annotation.NewLabels(labels...)
		return iojson.WriteWith(c.Root().Writer, os.Stderr, st)
	}

	cmd.printText(c, st, labels)
	return nil
}

func (cmd *DemoCmd) printText(c *cli.Command, st state.State, labels []annotation.Label) {
	w := c.Root().Writer

	_, _ = fmt.Fprintln(w, styles.HeaderStyle.Render("Demo sequence"))
	_, _ = fmt.Fprintln(w, styles.MutedStyle.Render(fmt.Sprintf(
		"%d symbols, positions %d-%d", st.Sequence.Len(), st.Bounds.From, st.Bounds.To)))
	_, _ = fmt.Fprintln(w, st.Sequence.Preview(60))
	_, _ = fmt.Fprintln(w)

	rows := make([][]string, 0, len(labels))
	for _, l := range labels {
		active := styles.SuccessStyle.Render("yes")
		if !l.IsActive {
			active = styles.MutedStyle.Render("no")
		}
		rows = append(rows, []string{
			styles.LabelStyle(l.Color, l.IsActive).Render(l.Name),
			styles.Swatch(l.Color),
			active,
			formatRanges(l.Annotations),
		})
	}
	_, _ = fmt.Fprintln(w, styles.Table([]string{"Label", "Color", "Active", "Annotations"}, rows))

	if text, ok := st.SelectedText(); ok {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintf(w, "%s %s\n", styles.TitleStyle.Render("Selection "+st.Selection.String()+":"), text)
	}
}

// formatRanges renders annotation ranges as "1-24, 204←185".
func formatRanges(anns []annotation.Annotation) string {
	if len(anns) == 0 {
		return styles.MutedStyle.Render("none")
	}
	parts := make([]string, len(anns))
	for i, a := range anns {
		sep := "-"
		if a.IsReverse() {
			sep = "←"
		}
		parts[i] = fmt.Sprintf("%d%s%d", a.PositionFrom, sep, a.PositionTo)
	}
	return strings.Join(parts, ", ")
}

// filterLabels keeps the labels named in names, in collection order. An
// unknown name is an error.
func filterLabels(ls annotation.Labels, names []string) ([]annotation.Label, error) {
	all := ls.All()
	if len(names) == 0 {
		return all, nil
	}

	for _, n := range names {
		if _, ok := ls.IndexByName(n); !ok {
			return nil, fmt.Errorf("unknown label %q (available: %s)", n, strings.Join(ls.Names(), ", "))
		}
	}

	out := make([]annotation.Label, 0, len(names))
	for _, l := range all {
		if slices.Contains(names, l.Name) {
			out = append(out, l)
		}
	}
	return out, nil
}

// parseSpan parses "FROM:TO" into two positive positions.
func parseSpan(s string) (from, to int, err error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("select %q: want FROM:TO", s)
	}
	if from, err = strconv.Atoi(strings.TrimSpace(a)); err != nil || from < 1 {
		return 0, 0, fmt.Errorf("select %q: bad start position", s)
	}
	if to, err = strconv.Atoi(strings.TrimSpace(b)); err != nil || to < 1 {
		return 0, 0, fmt.Errorf("select %q: bad end position", s)
	}
	return from, to, nil
}
