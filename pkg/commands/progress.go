package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/uebung/pkg/app"
	"tableflip.dev/uebung/pkg/commands/options"
	"tableflip.dev/uebung/pkg/printers"
	"tableflip.dev/uebung/pkg/timeutil"
)

func addProgress(topLevel *cobra.Command) {
	wo := &options.WindowOptions{}
	oo := &options.OutputOptions{}
	var all bool

	cmd := &cobra.Command{
		Use:     "progress",
		Aliases: []string{"report", "stats"},
		Short:   "Display completion statistics and recent activity",
		Long: `Progress summarises completed exercises within the specified time window.

Examples:
  uebung progress
  uebung progress --last 3d
  uebung progress --last 1mo --output yaml
  uebung progress --all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			days, label, err := timeutil.ParseWindow(wo.Last)
			if err != nil {
				return oo.HandleError(err)
			}
			err = withService(cmd.Context(), func(ctx context.Context, svc *app.Service) error {
				until := svc.Today()
				since := timeutil.Since(until, days)
				if all {
					since, until, label = "", "", ""
				}
				result, err := svc.Progress(ctx, since, until)
				if err != nil {
					return err
				}
				if oo.Structured() {
					return oo.Print(result)
				}
				pp := &printers.PrettyPrint{}
				pp.Progress(result, label)
				return nil
			})
			return oo.HandleError(err)
		},
	}

	options.AddWindowArgs(cmd, wo)
	options.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVar(&all, "all", false, "include every log regardless of --last")
	topLevel.AddCommand(cmd)
}
