package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/uebung/pkg/timeutil"
)

// WindowOptions
type WindowOptions struct {
	Last string
}

func AddWindowArgs(cmd *cobra.Command, o *WindowOptions) {
	cmd.Flags().StringVar(&o.Last, "last", timeutil.DefaultWindow,
		"time window to include (for example 3d, 1w, 1mo)")
}
