package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/piwi3910/AtlasPack/internal/project"
)

const defaultMinHeadroom = 16

func (a *app) inspectCmd() *cobra.Command {
	var minHeadroom float64

	cmd := &cobra.Command{
		Use:   "inspect [session]",
		Short: "Print bin statistics and unused headroom of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := project.LoadSession(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			writeSessionSummary(w, session)

			strips := model.DetectAllHeadroom(session.Snapshot, minHeadroom)
			if len(strips) == 0 {
				fmt.Fprintln(w, "No headroom left.")
				return nil
			}
			rows := make([][]string, 0, len(strips))
			for _, h := range strips {
				rows = append(rows, []string{
					strconv.Itoa(h.BinIndex + 1),
					formatNum(h.X) + "," + formatNum(h.Y),
					formatNum(h.Width) + "x" + formatNum(h.Height),
					formatNum(h.Area()),
				})
			}
			fmt.Fprintln(w, styleTitle.Render("Headroom"))
			fmt.Fprintln(w, renderTable([]string{"Bin", "Position", "Size", "Area"}, rows))
			fmt.Fprintf(w, "Total headroom: %s\n", formatNum(model.TotalHeadroomArea(strips)))
			return nil
		},
	}

	cmd.Flags().Float64Var(&minHeadroom, "min-headroom", defaultMinHeadroom, "smallest strip side worth reporting")
	return cmd
}
