package commands

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/uebung/pkg/app"
	"tableflip.dev/uebung/pkg/commands/options"
	"tableflip.dev/uebung/pkg/printers"
)

func addPhase(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "phase",
		Aliases: []string{"phases"},
		Short:   "Manage practice phases.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addPhaseAdd(cmd)
	addPhaseRemove(cmd)
	addPhaseUse(cmd)
	addPhaseList(cmd)

	topLevel.AddCommand(cmd)
}

func phaseArg(fn func(ctx context.Context, svc *app.Service, pp *printers.PrettyPrint, phase int) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		phase, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		return withService(cmd.Context(), func(ctx context.Context, svc *app.Service) error {
			pp := &printers.PrettyPrint{}
			if err := fn(ctx, svc, pp, phase); err != nil {
				return err
			}
			remindBackup(ctx, svc, pp)
			return nil
		})
	}
}

func addPhaseAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add <n>",
		Short: "Add a phase.",
		Args:  cobra.ExactArgs(1),
		RunE: phaseArg(func(ctx context.Context, svc *app.Service, pp *printers.PrettyPrint, phase int) error {
			added, err := svc.AddPhase(ctx, phase)
			if err != nil {
				return err
			}
			if !added {
				pp.Warn("Phase %d already exists.", phase)
				return nil
			}
			pp.Done("Added phase %d.", phase)
			return nil
		}),
	}

	topLevel.AddCommand(cmd)
}

func addPhaseRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "remove <n>",
		Aliases: []string{"rm"},
		Short:   "Remove a phase no exercise uses.",
		Args:    cobra.ExactArgs(1),
		RunE: phaseArg(func(ctx context.Context, svc *app.Service, pp *printers.PrettyPrint, phase int) error {
			if err := svc.RemovePhase(ctx, phase); err != nil {
				return err
			}
			pp.Done("Removed phase %d.", phase)
			return nil
		}),
	}

	topLevel.AddCommand(cmd)
}

func addPhaseUse(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "use <n>",
		Short: "Select the phase the daily views show.",
		Args:  cobra.ExactArgs(1),
		RunE: phaseArg(func(ctx context.Context, svc *app.Service, pp *printers.PrettyPrint, phase int) error {
			if err := svc.UsePhase(ctx, phase); err != nil {
				return err
			}
			pp.Done("Now practicing phase %d.", phase)
			return nil
		}),
	}

	topLevel.AddCommand(cmd)
}

func addPhaseList(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List phases and how many exercises use them.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withService(cmd.Context(), func(ctx context.Context, svc *app.Service) error {
				phases, err := svc.Phases(ctx)
				if err != nil {
					return err
				}
				if oo.Structured() {
					return oo.Print(phases)
				}
				pp := &printers.PrettyPrint{}
				pp.Phases(phases)
				return nil
			})
			return oo.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
