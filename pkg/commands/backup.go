package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tableflip.dev/uebung/pkg/app"
	"tableflip.dev/uebung/pkg/commands/options"
	"tableflip.dev/uebung/pkg/printers"
)

func addBackup(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export and import all practice data as JSON.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addBackupExport(cmd)
	addBackupImport(cmd)
	addBackupStatus(cmd)

	topLevel.AddCommand(cmd)
}

func addBackupExport(topLevel *cobra.Command) {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup file.",
		Long: options.Wrap80(`Export writes every collection to a JSON backup. Without --out the file is
named musik-uebung-backup-<date>.json in the current directory. Use --out - to
write to stdout.`),
		Example: `
uebung backup export
uebung backup export --out ~/backups/
uebung backup export --out - > backup.json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withService(cmd.Context(), func(ctx context.Context, svc *app.Service) error {
				if out == "-" {
					return svc.Export(ctx, cmd.OutOrStdout())
				}
				path := out
				if path == "" {
					path = svc.BackupFileName()
				} else if fi, err := os.Stat(path); err == nil && fi.IsDir() {
					path = filepath.Join(path, svc.BackupFileName())
				}
				f, err := os.Create(path)
				if err != nil {
					return err
				}
				if err := svc.Export(ctx, f); err != nil {
					_ = f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				pp := &printers.PrettyPrint{}
				pp.Done("Backup written to %s.", path)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "file or directory to write the backup to, or - for stdout")
	topLevel.AddCommand(cmd)
}

func addBackupImport(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Restore a backup file.",
		Long: options.Wrap80(`Import replaces each collection present in the backup. Fields that are
missing or malformed are skipped and keep their current value.`),
		Example: `
uebung backup import musik-uebung-backup-2024-01-15.json
cat backup.json | uebung backup import -
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			raw, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return oo.HandleError(err)
			}
			err = withService(cmd.Context(), func(ctx context.Context, svc *app.Service) error {
				report, err := svc.Import(ctx, raw)
				if oo.Structured() {
					if perr := oo.Print(report); perr != nil {
						return perr
					}
					return err
				}
				if len(report.Fields) > 0 {
					pp := &printers.PrettyPrint{}
					pp.ImportReport(report)
				}
				return err
			})
			return oo.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	raw, err := os.ReadFile(name)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("backup file %q not found", name)
	}
	return raw, err
}

func addBackupStatus(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show when the last backup was taken.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withService(cmd.Context(), func(ctx context.Context, svc *app.Service) error {
				status, err := svc.BackupStatus(ctx)
				if err != nil {
					return err
				}
				if oo.Structured() {
					return oo.Print(status)
				}
				pp := &printers.PrettyPrint{}
				if status.Last == nil {
					pp.Warn("No backup taken yet.")
				} else {
					pp.Done("Last backup %s.", status.Last.Local().Format("2006-01-02 15:04"))
				}
				if status.Due {
					pp.BackupReminder(status.Last != nil)
				}
				return nil
			})
			return oo.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
