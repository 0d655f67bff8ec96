package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/uebung/pkg/app"
	"tableflip.dev/uebung/pkg/commands/options"
	"tableflip.dev/uebung/pkg/printers"
)

func addLog(topLevel *cobra.Command) {
	lo := &options.LogOptions{}
	on := &options.OnOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "log <exercise-id>",
		Short: "Record practice for an exercise.",
		Long: options.Wrap80(`Log saves the practice of one exercise on one day. Fields that are not
given keep what the practice session would show: today's log, then the most
recent earlier log, then the defaults. Logging the same exercise on the same
day again replaces the earlier log.`),
		Example: `
uebung log 1700000000000 --bpm 96 --completed
uebung log 1700000000000 --on 1/8 --song "Autumn Leaves" --notes "slow ii-V"
uebung log 1700000000000 --scale C:Dur --scale "A:Moll" --completed
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			id, err := options.ParseID(args[0])
			if err != nil {
				return oo.HandleError(err)
			}
			edits, err := lo.Edits(cmd)
			if err != nil {
				return oo.HandleError(err)
			}
			err = withService(cmd.Context(), func(ctx context.Context, svc *app.Service) error {
				date, err := on.GetOn(svc.Today())
				if err != nil {
					return err
				}
				ex, err := svc.Exercise(ctx, id)
				if err != nil {
					return err
				}
				l, err := svc.LogPractice(ctx, id, date, edits)
				if err != nil {
					return err
				}
				if oo.Structured() {
					return oo.Print(l)
				}
				pp := &printers.PrettyPrint{}
				pp.Log(ex.Name, l)
				remindBackup(ctx, svc, pp)
				return nil
			})
			return oo.HandleError(err)
		},
	}

	options.AddLogArgs(cmd, lo)
	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
