package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cardsheet/pkg/card"
	"github.com/matzehuels/cardsheet/pkg/engine"
	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/grid"
)

// clustersOpts holds the command-line flags for the clusters command.
type clustersOpts struct {
	sheet   string // restrict to one sheet
	layer   string // restrict to one layer
	singles bool   // report lone cards as clusters
	initial bool   // skip the steps and report the declared layout
}

// clustersCommand creates the clusters command.
func (c *CLI) clustersCommand() *cobra.Command {
	var opts clustersOpts

	cmd := &cobra.Command{
		Use:   "clusters [scenario.toml]",
		Short: "List groups of touching cards",
		Long: `Replay a scenario and list the clusters on each sheet. Cards belong to the
same cluster when they touch, including diagonally, on the same layer.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScenarioFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("singles") {
				opts.singles = cfg.Clusters.IncludeSingles
			}
			return c.runClusters(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.sheet, "sheet", "s", "", "only this sheet")
	cmd.Flags().StringVarP(&opts.layer, "layer", "l", "", "only this layer")
	cmd.Flags().BoolVar(&opts.singles, "singles", false, "include lone cards (default from config)")
	cmd.Flags().BoolVar(&opts.initial, "initial", false, "skip the steps and use the declared layout")

	return cmd
}

func (c *CLI) runClusters(ctx context.Context, path string, opts clustersOpts) error {
	ctx = withLogger(ctx, c.Logger)

	sc, cv, _, err := c.prepare(ctx, path)
	if err != nil {
		return err
	}
	if !opts.initial {
		if err := sc.Run(ctx, cv, nil); err != nil {
			return err
		}
	}

	boards := cv.Sheets()
	if opts.sheet != "" {
		b, ok := cv.Sheet(opts.sheet)
		if !ok {
			return errors.New(errors.ErrCodeSheetNotFound, "sheet %q not found", opts.sheet)
		}
		boards = []*engine.Board{b}
	}

	total := 0
	for _, b := range boards {
		for _, l := range layersOf(b, opts.layer) {
			clusters, err := cv.Clusters(ctx, b.ID(), l, opts.singles)
			if err != nil {
				return err
			}
			printNewline()
			fmt.Println(StyleTitle.Render(b.ID()) + StyleDim.Render(" / "+l.String()))
			if len(clusters) == 0 {
				printDetail("no clusters")
				continue
			}
			for i, cl := range clusters {
				r, _ := cl.Bounds()
				printKeyValue(fmt.Sprintf("#%d", i+1), fmt.Sprintf("%d cards %s", cl.Len(), r))
				printDetail("%s", strings.Join(card.IDs(cl.Items()), " "))
			}
			total += len(clusters)
		}
	}

	printNewline()
	printSuccess("Found %d clusters", total)
	return nil
}

// layersOf returns the layers of b to report, or only the named one.
func layersOf(b *engine.Board, name string) []grid.Layer {
	if name == "" {
		return b.Layers()
	}
	return []grid.Layer{grid.NamedLayer(name)}
}
