package commands

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/uebung/pkg/app"
	"tableflip.dev/uebung/pkg/commands/options"
	"tableflip.dev/uebung/pkg/printers"
	"tableflip.dev/uebung/pkg/tui/practice"
)

func addPractice(topLevel *cobra.Command) {
	on := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "practice",
		Short: "Walk through the day's exercises interactively.",
		Long: options.Wrap80(`Practice opens a session over the exercises scheduled for the day. Each
exercise starts from today's log, or the most recent earlier one. Moving to
the next or previous exercise saves the current one.`),
		Example: `
uebung practice
uebung practice --on 1/14
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
				return errors.New("practice needs an interactive terminal; use `uebung log` instead")
			}
			return withService(cmd.Context(), func(ctx context.Context, svc *app.Service) error {
				date, err := on.GetOn(svc.Today())
				if err != nil {
					return err
				}
				sess, err := svc.StartSession(ctx, date)
				if err != nil {
					return err
				}
				pp := &printers.PrettyPrint{}
				if sess.Len() == 0 {
					plan, err := svc.DayPlan(ctx, date)
					if err != nil {
						return err
					}
					pp.Plan(plan)
					return nil
				}
				outcome, err := practice.Run(sess)
				if err != nil {
					return err
				}
				if outcome == practice.Abandoned {
					pp.Warn("Session abandoned. Unsaved edits were discarded.")
					return nil
				}
				plan, err := svc.DayPlan(ctx, date)
				if err != nil {
					return err
				}
				pp.Done("Session finished: %d of %d exercises completed.", plan.Completed(), len(plan.Items))
				remindBackup(ctx, svc, pp)
				return nil
			})
		},
	}

	options.AddOnArgs(cmd, on)
	topLevel.AddCommand(cmd)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

