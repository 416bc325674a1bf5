package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/piwi3910/AtlasPack/internal/engine"
	"github.com/piwi3910/AtlasPack/internal/model"
)

func (a *app) compareCmd() *cobra.Command {
	var flags packFlags

	cmd := &cobra.Command{
		Use:   "compare [files...]",
		Short: "Pack the same sprites under alternative settings",
		Long: `Pack the imported sprites once with the current settings and once per
alternative (rotation flipped, other sort logic, no padding), then print
bins used and efficiency side by side.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.packerConfig(cmd, &flags)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			prog := newProgress(loggerFromContext(ctx))

			batches, err := importBatches(ctx, args)
			if err != nil {
				return err
			}
			var sprites []model.Sprite
			for _, b := range batches {
				sprites = append(sprites, b.sprites...)
			}

			scenarios := engine.BuildDefaultScenarios(cfg)
			results := engine.CompareScenarios(scenarios, model.ExpandSprites(sprites))
			prog.done("compared", "scenarios", len(results))

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				if r.Err != nil {
					rows = append(rows, []string{r.Scenario.Name, "-", "-", "-", r.Err.Error()})
					continue
				}
				rows = append(rows, []string{
					r.Scenario.Name,
					strconv.Itoa(r.BinsUsed),
					strconv.Itoa(r.OversizedCount),
					formatPercent(r.Efficiency),
					"",
				})
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, renderTable([]string{"Scenario", "Bins", "Oversized", "Efficiency", "Error"}, rows))

			est := model.EstimateBins(sprites, cfg)
			fmt.Fprintf(w, "Lower bound: %d bins (%.2f exact, %d oversized)\n",
				est.BinsNeededMin, est.BinsNeededExact, est.OversizedCount)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
