package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/colonyops/seqmark/internal/core/loader"
	"github.com/colonyops/seqmark/internal/core/sequence"
	"github.com/colonyops/seqmark/internal/core/styles"
	"github.com/colonyops/seqmark/pkg/iojson"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

type LoadCmd struct {
	flags *Flags

	// flags
	chunkSize  int
	previewLen int
	jsonOutput bool
}

// NewLoadCmd creates a new load command
func NewLoadCmd(flags *Flags) *LoadCmd {
	return &LoadCmd{flags: flags}
}

// LoadResult describes one loaded file.
type LoadResult struct {
	Path    string          `json:"path"`
	Source  string          `json:"source,omitempty"`
	Symbols int             `json:"symbols"`
	Bounds  sequence.Bounds `json:"bounds"`
	Preview string          `json:"preview,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Register adds the load command to the application
func (cmd *LoadCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "load",
		Usage:     "Load sequence files and summarize them",
		UsageText: "seqmark load [options] <file|glob>...",
		Description: `Reads each file through the chunked loader and prints its length, display
bounds and a preview of the first symbols.

Arguments may be doublestar globs, e.g. 'data/**/*.seq'. Quote them so the
shell does not expand them first.

Use --json for one JSON object per file.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "chunk-size",
				Usage:       "read window in bytes (overrides loader.chunk_size)",
				Destination: &cmd.chunkSize,
			},
			&cli.IntFlag{
				Name:        "preview",
				Usage:       "number of symbols to preview",
				Value:       32,
				Destination: &cmd.previewLen,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LoadCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("at least one file or glob is required")
	}

	cfg, err := cmd.flags.validConfig()
	if err != nil {
		return err
	}

	paths, err := expandPaths(c.Args().Slice())
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no files matched %v", c.Args().Slice())
	}

	var opts []loader.Option
	if cmd.chunkSize > 0 {
		opts = append(opts, loader.WithChunkSize(cmd.chunkSize))
	}

	ed := newEditor(cfg, log.Logger, opts...)
	defer ed.Close()

	results := make([]LoadResult, 0, len(paths))
	failed := 0
	for _, path := range paths {
		res := cmd.load(ctx, ed, path)
		if res.Error != "" {
			failed++
		}
		results = append(results, res)
	}

	if cmd.jsonOutput {
		out := c.Root().Writer
		for _, res := range results {
			if err := iojson.WriteLine(out, res); err != nil {
				return err
			}
		}
	} else {
		cmd.printTable(c, results)
	}

	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *LoadCmd) load(ctx context.Context, ed *editor, path string) LoadResult {
	res := LoadResult{Path: path}

	if err := ed.loadFile(ctx, path); err != nil {
		res.Error = err.Error()
		return res
	}

	st := ed.store.State()
	res.Source = st.Source
	res.Symbols = st.Sequence.Len()
	res.Bounds = st.Bounds
	res.Preview = st.Sequence.Preview(cmd.previewLen)
	return res
}

func (cmd *LoadCmd) printTable(c *cli.Command, results []LoadResult) {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		if res.Error != "" {
			rows = append(rows, []string{res.Path, "-", "-", styles.ErrorStyle.Render(res.Error)})
			continue
		}
		rows = append(rows, []string{
			res.Path,
			strconv.Itoa(res.Symbols),
			fmt.Sprintf("%d-%d", res.Bounds.From, res.Bounds.To),
			res.Preview,
		})
	}

	_, _ = fmt.Fprintln(c.Root().Writer, styles.Table([]string{"File", "Symbols", "Bounds", "Preview"}, rows))
}

// expandPaths resolves doublestar globs, keeping plain paths as given so a
// missing file is reported by the loader.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, arg := range args {
		if _, err := os.Stat(arg); err == nil || !hasMeta(arg) {
			add(arg)
			continue
		}

		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			if errors.Is(err, doublestar.ErrBadPattern) {
				return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
			}
			return nil, fmt.Errorf("glob %q: %w", arg, err)
		}
		for _, m := range matches {
			add(m)
		}
	}

	return paths, nil
}

func hasMeta(s string) bool {
	for _, r := range s {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
