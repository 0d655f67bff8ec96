package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/uebung/pkg/app"
	"tableflip.dev/uebung/pkg/commands/options"
	"tableflip.dev/uebung/pkg/printers"
)

func addWeek(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the weekly overview.",
		Example: `
uebung week
uebung week --on 2024-1-8
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withService(cmd.Context(), func(ctx context.Context, svc *app.Service) error {
				date, err := on.GetOn(svc.Today())
				if err != nil {
					return err
				}
				view, err := svc.Week(ctx, date)
				if err != nil {
					return err
				}
				if oo.Structured() {
					return oo.Print(view)
				}
				pp := &printers.PrettyPrint{}
				pp.Week(view)
				return nil
			})
			return oo.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addCalendar(topLevel *cobra.Command) {
	on := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show a month with the days you practiced.",
		Example: `
uebung calendar
uebung cal --on 2024-2-1
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withService(cmd.Context(), func(ctx context.Context, svc *app.Service) error {
				date, err := on.GetOn(svc.Today())
				if err != nil {
					return err
				}
				counts, err := svc.MonthActivity(ctx, date)
				if err != nil {
					return err
				}
				pp := &printers.PrettyPrint{}
				return pp.Month(date, counts, svc.Today())
			})
		},
	}

	options.AddOnArgs(cmd, on)
	topLevel.AddCommand(cmd)
}
