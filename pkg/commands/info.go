package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/uebung/pkg/app"
	"tableflip.dev/uebung/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the practice data and where it is stored.",
		Example: `
uebung info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withService(cmd.Context(), func(ctx context.Context, svc *app.Service) error {
				s := info.Info{
					Config:  nil,
					Service: svc,
				}
				return s.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}
