package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/uebung/pkg/app"
	"tableflip.dev/uebung/pkg/commands/options"
	"tableflip.dev/uebung/pkg/printers"
)

func addCategory(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"categories", "cat"},
		Short:   "Manage the categories that link exercises to weekdays.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addCategoryAdd(cmd)
	addCategoryRemove(cmd)
	addCategoryList(cmd)

	topLevel.AddCommand(cmd)
}

func addCategoryAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category.",
		Example: `
uebung category add Improvisation
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			name := strings.Join(args, " ")
			return withService(cmd.Context(), func(ctx context.Context, svc *app.Service) error {
				added, err := svc.AddCategory(ctx, name)
				if err != nil {
					return err
				}
				pp := &printers.PrettyPrint{}
				if !added {
					pp.Warn("Category %q already exists.", name)
					return nil
				}
				pp.Done("Added category %q.", name)
				remindBackup(ctx, svc, pp)
				return nil
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addCategoryRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a category. Exercises keep their category text.",
		Args:    cobra.MinimumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return categoryCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			name := strings.Join(args, " ")
			return withService(cmd.Context(), func(ctx context.Context, svc *app.Service) error {
				removed, orphaned, err := svc.RemoveCategory(ctx, name)
				if err != nil {
					return err
				}
				pp := &printers.PrettyPrint{}
				if !removed {
					pp.Warn("Category %q does not exist.", name)
					return nil
				}
				pp.Done("Removed category %q.", name)
				if orphaned > 0 {
					pp.Warn("%d exercise(s) still use %q and are no longer scheduled through the category list.", orphaned, name)
				}
				remindBackup(ctx, svc, pp)
				return nil
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addCategoryList(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List categories.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withService(cmd.Context(), func(ctx context.Context, svc *app.Service) error {
				categories, err := svc.Categories(ctx)
				if err != nil {
					return err
				}
				if oo.Structured() {
					return oo.Print(categories)
				}
				pp := &printers.PrettyPrint{}
				pp.Categories(categories)
				return nil
			})
			return oo.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
