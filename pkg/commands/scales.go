package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/uebung/pkg/app"
	"tableflip.dev/uebung/pkg/commands/options"
	"tableflip.dev/uebung/pkg/printers"
)

func addScales(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "scales",
		Aliases: []string{"scale"},
		Short:   "Track which keys and modes an exercise has covered.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addScalesCoverage(cmd)
	addScalesSuggest(cmd)

	topLevel.AddCommand(cmd)
}

func addScalesCoverage(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "coverage <exercise-id>",
		Short: "Show the practiced key and mode grid of an exercise.",
		Example: `
uebung scales coverage 1700000000000
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			id, err := options.ParseID(args[0])
			if err != nil {
				return oo.HandleError(err)
			}
			err = withService(cmd.Context(), func(ctx context.Context, svc *app.Service) error {
				date, err := on.GetOn(svc.Today())
				if err != nil {
					return err
				}
				cov, err := svc.ScaleCoverage(ctx, id, date)
				if err != nil {
					return err
				}
				if oo.Structured() {
					return oo.Print(cov)
				}
				pp := &printers.PrettyPrint{}
				pp.Coverage(cov.Exercise, cov.Stats, cov.Practiced, cov.Today)
				return nil
			})
			return oo.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addScalesSuggest(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	var limit int

	cmd := &cobra.Command{
		Use:   "suggest <exercise-id>",
		Short: "Suggest scales the exercise has not covered yet.",
		Example: `
uebung scales suggest 1700000000000 --limit 3
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			id, err := options.ParseID(args[0])
			if err != nil {
				return oo.HandleError(err)
			}
			err = withService(cmd.Context(), func(ctx context.Context, svc *app.Service) error {
				pairs, err := svc.ScaleSuggestions(ctx, id, limit)
				if err != nil {
					return err
				}
				if oo.Structured() {
					return oo.Print(pairs)
				}
				pp := &printers.PrettyPrint{}
				pp.Pairs("Suggestions", pairs)
				return nil
			})
			return oo.HandleError(err)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "Maximum number of suggestions.")
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
