package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// LabelNameCompleter returns a ShellCompleteFunc that suggests configured and
// demo label names as positional completions.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func LabelNameCompleter(flags *Flags) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		// Delegate to default flag completion when typing a flag
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		cfg, err := flags.validConfig()
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		seen := make(map[string]bool)
		for _, decls := range [][]string{cfg.InitialLabels().Names(), cfg.Demo.LabelSet().Names()} {
			for _, name := range decls {
				if seen[name] {
					continue
				}
				seen[name] = true
				_, _ = fmt.Fprintln(w, name)
			}
		}
	}
}
