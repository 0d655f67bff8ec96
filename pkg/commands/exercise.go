package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/uebung/pkg/app"
	"tableflip.dev/uebung/pkg/commands/options"
	"tableflip.dev/uebung/pkg/model"
	"tableflip.dev/uebung/pkg/printers"
)

func addExercise(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "exercise",
		Aliases: []string{"ex", "exercises"},
		Short:   "Manage exercise templates.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addExerciseAdd(cmd)
	addExerciseEdit(cmd)
	addExerciseList(cmd)

	topLevel.AddCommand(cmd)
}

func addExerciseAdd(topLevel *cobra.Command) {
	eo := &options.ExerciseOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an exercise template.",
		Example: `
uebung exercise add Tonleitern --category Technik --scales
uebung exercise add "Blattspiel Etüden" -c Lesen -p 2
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a name")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withService(cmd.Context(), func(ctx context.Context, svc *app.Service) error {
				in := eo.Apply(cmd, model.ExerciseInput{Name: strings.Join(args, " "), Phase: eo.Phase})
				e, err := svc.AddExercise(ctx, in)
				if err != nil {
					return err
				}
				if oo.Structured() {
					return oo.Print(e)
				}
				pp := &printers.PrettyPrint{}
				pp.Done("Added exercise #%d %q.", e.ID, e.Name)
				warnUnknownCategory(ctx, svc, pp, e.Category)
				remindBackup(ctx, svc, pp)
				return nil
			})
			return oo.HandleError(err)
		},
	}

	options.AddExerciseArgs(cmd, eo)
	options.AddOutputArg(cmd, oo)
	_ = cmd.RegisterFlagCompletionFunc("category", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return categoryCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}

func addExerciseEdit(topLevel *cobra.Command) {
	eo := &options.ExerciseOptions{}
	oo := &options.OutputOptions{}
	var name string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an exercise template.",
		Example: `
uebung exercise edit 1700000000000 --phase 2
uebung exercise edit 1700000000000 --name "Tonleitern (Terzen)"
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			id, err := options.ParseID(args[0])
			if err != nil {
				return oo.HandleError(err)
			}
			err = withService(cmd.Context(), func(ctx context.Context, svc *app.Service) error {
				cur, err := svc.Exercise(ctx, id)
				if err != nil {
					return err
				}
				in := model.ExerciseInput{
					Category:         cur.Category,
					Name:             cur.Name,
					Phase:            cur.Phase,
					HasScaleSelector: cur.HasScaleSelector,
				}
				if cmd.Flags().Changed("name") {
					in.Name = name
				}
				e, err := svc.UpdateExercise(ctx, id, eo.Apply(cmd, in))
				if err != nil {
					return err
				}
				if oo.Structured() {
					return oo.Print(e)
				}
				pp := &printers.PrettyPrint{}
				pp.Done("Updated exercise #%d.", e.ID)
				pp.Exercises("Exercise", []model.Exercise{e})
				warnUnknownCategory(ctx, svc, pp, e.Category)
				remindBackup(ctx, svc, pp)
				return nil
			})
			return oo.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name of the exercise.")
	options.AddExerciseArgs(cmd, eo)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addExerciseList(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	var (
		phase   int
		current bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List exercise templates.",
		Example: `
uebung exercise list
uebung exercise list --phase 2
uebung exercise list --current
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withService(cmd.Context(), func(ctx context.Context, svc *app.Service) error {
				p := phase
				if current {
					var err error
					if p, err = svc.CurrentPhase(ctx); err != nil {
						return err
					}
				}
				exercises, err := svc.Exercises(ctx, p)
				if err != nil {
					return err
				}
				if oo.Structured() {
					return oo.Print(exercises)
				}
				title := "Exercises"
				if p != 0 {
					title = fmt.Sprintf("Exercises · Phase %d", p)
				}
				pp := &printers.PrettyPrint{}
				pp.Exercises(title, exercises)
				return nil
			})
			return oo.HandleError(err)
		},
	}

	cmd.Flags().IntVarP(&phase, "phase", "p", 0, "Only list exercises of this phase.")
	cmd.Flags().BoolVar(&current, "current", false, "Only list exercises of the current phase.")
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func warnUnknownCategory(ctx context.Context, svc *app.Service, pp *printers.PrettyPrint, category string) {
	if category == "" {
		return
	}
	categories, err := svc.Categories(ctx)
	if err != nil {
		return
	}
	for _, c := range categories {
		if c == category {
			return
		}
	}
	pp.Warn("Category %q is not in the category set; add it with `uebung category add %q`.", category, category)
}

func categoryCompletions(toComplete string) []string {
	var out []string
	_ = withService(context.Background(), func(ctx context.Context, svc *app.Service) error {
		categories, err := svc.Categories(ctx)
		if err != nil {
			return err
		}
		for _, c := range categories {
			if strings.HasPrefix(strings.ToLower(c), strings.ToLower(toComplete)) {
				out = append(out, c)
			}
		}
		return nil
	})
	return out
}
