package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/uebung/pkg/app"
	"tableflip.dev/uebung/pkg/commands/options"
	"tableflip.dev/uebung/pkg/model"
	"tableflip.dev/uebung/pkg/printers"
)

func addDay(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "day",
		Aliases: []string{"days", "schedule"},
		Short:   "Assign categories to weekdays.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addDaySet(cmd)
	addDayClear(cmd)
	addDayList(cmd)

	topLevel.AddCommand(cmd)
}

func weekdayCompletions(toComplete string) []string {
	var out []string
	for _, l := range model.WeekdayLabels() {
		if strings.HasPrefix(strings.ToLower(l), strings.ToLower(toComplete)) {
			out = append(out, l)
		}
	}
	return out
}

func addDaySet(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "set <weekday> <category>",
		Short: "Schedule a category on a weekday.",
		Example: `
uebung day set Monday Technik
uebung day set mittwoch "Lesen"
`,
		Args: cobra.MinimumNArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			switch len(args) {
			case 0:
				return weekdayCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
			case 1:
				return categoryCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			category := strings.Join(args[1:], " ")
			return withService(cmd.Context(), func(ctx context.Context, svc *app.Service) error {
				known, err := svc.SetDay(ctx, args[0], category)
				if err != nil {
					return err
				}
				day, _ := model.ParseWeekday(args[0])
				pp := &printers.PrettyPrint{}
				pp.Done("%s is now %q.", day, category)
				if !known {
					pp.Warn("Category %q is not in the category set.", category)
				}
				remindBackup(ctx, svc, pp)
				return nil
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addDayClear(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "clear <weekday>",
		Short: "Remove the category of a weekday.",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return weekdayCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return withService(cmd.Context(), func(ctx context.Context, svc *app.Service) error {
				if _, err := svc.SetDay(ctx, args[0], ""); err != nil {
					return err
				}
				day, _ := model.ParseWeekday(args[0])
				pp := &printers.PrettyPrint{}
				pp.Done("%s has no category.", day)
				remindBackup(ctx, svc, pp)
				return nil
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addDayList(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the weekly schedule.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withService(cmd.Context(), func(ctx context.Context, svc *app.Service) error {
				schedule, err := svc.Schedule(ctx)
				if err != nil {
					return err
				}
				if oo.Structured() {
					return oo.Print(schedule)
				}
				days := make([]string, len(schedule))
				categories := make([]string, len(schedule))
				for i, a := range schedule {
					days[i] = a.Day
					categories[i] = a.Category
				}
				pp := &printers.PrettyPrint{}
				pp.Schedule(days, categories)
				return nil
			})
			return oo.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
