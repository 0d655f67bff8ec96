package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/uebung/pkg/app"
	"tableflip.dev/uebung/pkg/kv"
)

type Info struct {
	Config  kv.Config
	Service *app.Service
	// Out defaults to color.Output.
	Out io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv(kv.ConfigPathEnv); override != "" {
		_, _ = fmt.Fprintf(out, "%s found on env, using %s\n", kv.ConfigPathEnv, override)
	} else {
		_, _ = fmt.Fprintf(out, "%s env var not set\n", kv.ConfigPathEnv)
	}

	if n.Config == nil {
		var err error
		n.Config, err = kv.LoadConfig()
		if err != nil {
			return err
		}
	}

	if f := kv.ConfigFileUsed(); f != "" {
		_, _ = fmt.Fprintln(out, "Config.file: ", f)
	}
	_, _ = fmt.Fprintln(out, "Config.path: ", n.Config.BasePath())
	_, _ = fmt.Fprintln(out, "Config.driver:", n.Config.Driver())

	if n.Service == nil {
		return fmt.Errorf("failed to create practice service")
	}

	snap, err := n.Service.Snapshot(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Exercises:     %d\n", len(snap.Exercises))
	_, _ = fmt.Fprintf(out, "Logs:          %d\n", len(snap.Logs))
	_, _ = fmt.Fprintf(out, "Categories:    %d\n", len(snap.Categories))
	_, _ = fmt.Fprintf(out, "Phases:        %v (current %d)\n", snap.Phases, snap.CurrentPhase)
	if snap.LastBackup != nil {
		_, _ = fmt.Fprintf(out, "Last backup:   %s\n", snap.LastBackup.Local().Format("2006-01-02 15:04"))
	} else {
		_, _ = fmt.Fprintln(out, "Last backup:   never")
	}

	return nil
}
