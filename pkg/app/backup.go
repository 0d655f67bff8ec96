package app

import (
	"context"
	"io"
	"time"

	"tableflip.dev/uebung/pkg/backup"
)

// BackupStatus reports the last backup time and whether a reminder is due.
type BackupStatus struct {
	Last *time.Time `json:"last,omitempty" yaml:"last,omitempty"`
	Due  bool       `json:"due" yaml:"due"`
}

// BackupStatus returns the state of the backup reminder.
func (s *Service) BackupStatus(ctx context.Context) (BackupStatus, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return BackupStatus{}, err
	}
	return BackupStatus{Last: snap.LastBackup, Due: backup.ReminderDue(snap.LastBackup, s.now())}, nil
}

// BackupFileName is the suggested file name for an export taken now.
func (s *Service) BackupFileName() string {
	return backup.FileName(s.now())
}

// Export writes a backup document to w and records the backup time.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return err
	}
	now := s.now()
	if err := backup.Write(w, snap, now); err != nil {
		return err
	}
	return s.Store.MarkBackup(now)
}

// Import restores the well-formed fields of raw.
func (s *Service) Import(ctx context.Context, raw []byte) (backup.ImportReport, error) {
	if err := s.ready(ctx); err != nil {
		return backup.ImportReport{}, err
	}
	report, err := backup.Import(raw, s.Store)
	s.logger().Infow("import finished", "applied", report.Applied(), "skipped", len(report.Skipped()), "error", err)
	return report, err
}
