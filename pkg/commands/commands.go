package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/uebung/pkg/app"
	"tableflip.dev/uebung/pkg/commands/options"
	"tableflip.dev/uebung/pkg/kv"
	"tableflip.dev/uebung/pkg/logging"
	"tableflip.dev/uebung/pkg/printers"
	"tableflip.dev/uebung/pkg/store"
)

var (
	verbose bool
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "uebung",
		Short: options.Wrap80("Practice tracking for musicians on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log diagnostics to stderr.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addExercise(topLevel)
	addCategory(topLevel)
	addDay(topLevel)
	addPhase(topLevel)
	addToday(topLevel)
	addLast(topLevel)
	addLog(topLevel)
	addPractice(topLevel)
	addWeek(topLevel)
	addCalendar(topLevel)
	addProgress(topLevel)
	addScales(topLevel)
	addBackup(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
	addMCP(topLevel)
}

// loadService opens the configured storage and loads the practice store.
// The returned func releases the storage.
func loadService() (*app.Service, func(), error) {
	cfg, err := kv.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(verbose || cfg.Verbose())
	if err != nil {
		return nil, nil, err
	}
	storage, err := kv.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Load(storage, time.Now(), store.WithLogger(log))
	if err != nil {
		_ = storage.Close()
		return nil, nil, err
	}
	log.Debugw("store loaded", "driver", cfg.Driver(), "path", cfg.BasePath())
	done := func() {
		if err := storage.Close(); err != nil {
			log.Warnw("closing storage", zap.Error(err))
		}
		_ = log.Sync()
	}
	return &app.Service{Store: st, Log: log}, done, nil
}

// withService runs fn against a freshly loaded service.
func withService(ctx context.Context, fn func(context.Context, *app.Service) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	svc, done, err := loadService()
	if err != nil {
		return err
	}
	defer done()
	return fn(ctx, svc)
}

// remindBackup prints the backup reminder after a change when one is due.
func remindBackup(ctx context.Context, svc *app.Service, pp *printers.PrettyPrint) {
	status, err := svc.BackupStatus(ctx)
	if err != nil || !status.Due {
		return
	}
	pp.BackupReminder(status.Last != nil)
}
