package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/uebung/pkg/app"
	"tableflip.dev/uebung/pkg/commands/options"
	"tableflip.dev/uebung/pkg/printers"
)

func addToday(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the exercises scheduled for a day.",
		Example: `
uebung today
uebung today --on 1/15 -k
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withService(cmd.Context(), func(ctx context.Context, svc *app.Service) error {
				date, err := on.GetOn(svc.Today())
				if err != nil {
					return err
				}
				plan, err := svc.DayPlan(ctx, date)
				if err != nil {
					return err
				}
				if oo.Structured() {
					return oo.Print(plan)
				}
				pp := &printers.PrettyPrint{ShowID: io.ShowID}
				pp.Plan(plan)
				if date == svc.Today() {
					remindBackup(ctx, svc, pp)
				}
				return nil
			})
			return oo.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addLast(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "last <exercise-id>",
		Short: "Show the most recent log of an exercise.",
		Example: `
uebung last 1700000000000
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			id, err := options.ParseID(args[0])
			if err != nil {
				return oo.HandleError(err)
			}
			err = withService(cmd.Context(), func(ctx context.Context, svc *app.Service) error {
				ex, err := svc.Exercise(ctx, id)
				if err != nil {
					return err
				}
				l, ok, err := svc.LastLog(ctx, id)
				if err != nil {
					return err
				}
				if oo.Structured() {
					if !ok {
						return oo.Print(nil)
					}
					return oo.Print(l)
				}
				pp := &printers.PrettyPrint{}
				if !ok {
					pp.Warn("%s has not been practiced yet.", ex.Name)
					return nil
				}
				pp.Log(ex.Name, l)
				return nil
			})
			return oo.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
