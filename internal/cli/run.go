package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cardsheet/pkg/canvas"
	"github.com/matzehuels/cardsheet/pkg/scenario"
)

// runOpts holds the command-line flags for the run command.
type runOpts struct {
	board bool // draw the sheets after the last step
	quiet bool // only print refused steps
}

// runCommand creates the run command, which replays a scenario file.
func (c *CLI) runCommand() *cobra.Command {
	var opts runOpts

	cmd := &cobra.Command{
		Use:   "run [scenario.toml]",
		Short: "Replay a scenario and print the outcome of every step",
		Long: `Replay a scenario against a fresh canvas.

Refused steps (a shift blocked by a locked card, a move that had to revert)
are reported but do not stop the run. Unknown cards or sheets do.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScenarioFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScenario(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.board, "board", "b", true, "draw the sheets after the last step")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "only print refused steps")

	return cmd
}

func (c *CLI) runScenario(ctx context.Context, path string, opts runOpts) error {
	ctx = withLogger(ctx, c.Logger)

	sc, cv, j, err := c.prepare(ctx, path)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	refused := 0
	err = sc.Run(ctx, cv, func(o scenario.Outcome) {
		if !o.OK {
			refused++
			printWarning("%2d %-7s %s", o.Index, o.Step.Op, o.Detail)
			return
		}
		if !opts.quiet {
			printSuccess("%2d %-7s %s", o.Index, o.Step.Op, o.Detail)
		}
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Replayed %d steps", len(sc.Steps)))

	printStats(append(j.stats(), stat{label: "refused", n: refused}))
	if j.Len() > 0 {
		printDetail("%d cards changed position", j.touched())
	}
	if opts.board {
		printBoards(cv.Sheets())
	}

	printNewline()
	printNextStep("Find clusters", fmt.Sprintf("%s clusters %s", appName, path))
	return nil
}

// prepare loads the config and the scenario at path and builds its sheets
// and cards on a new canvas.
func (c *CLI) prepare(ctx context.Context, path string) (*scenario.Scenario, *canvas.Canvas, *journal, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	sc, err := scenario.Load(path)
	if err != nil {
		return nil, nil, nil, err
	}

	j := &journal{}
	cv := c.newCanvas(cfg, j)
	if err := sc.Build(ctx, cv); err != nil {
		return nil, nil, nil, err
	}

	name := sc.Name
	if name == "" {
		name = path
	}
	printInfo("%s %s", StyleHighlight.Render(name),
		StyleDim.Render(fmt.Sprintf("%d sheets, %d cards, %d steps", len(sc.Sheets), len(sc.Cards), len(sc.Steps))))
	return sc, cv, j, nil
}
