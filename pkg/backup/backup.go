// Package backup writes the whole practice store to one JSON document and
// restores it field by field.
package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"tableflip.dev/uebung/pkg/model"
	"tableflip.dev/uebung/pkg/store"
)

// Version is written into every exported document.
const Version = "2.0"

// ReminderAfter is how old the last backup may get before a reminder is due.
const ReminderAfter = 7 * 24 * time.Hour

// isoMillis matches the timestamps browsers produce with toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Document is the backup file layout.
type Document struct {
	Exercises       []model.Exercise  `json:"exercises"`
	PracticeLogs    []model.LogEntry  `json:"practiceLogs"`
	DayHeaders      map[string]string `json:"dayHeaders"`
	Categories      []string          `json:"categories"`
	AvailablePhases []int             `json:"availablePhases"`
	CurrentPhase    int               `json:"currentPhase"`
	ExportDate      string            `json:"exportDate"`
	Version         string            `json:"version"`
}

// Export copies every collection of snap into a Document.
func Export(snap store.Snapshot, now time.Time) Document {
	snap = snap.Clone()
	doc := Document{
		Exercises:       snap.Exercises,
		PracticeLogs:    snap.Logs,
		DayHeaders:      snap.DayHeaders,
		Categories:      snap.Categories,
		AvailablePhases: snap.Phases,
		CurrentPhase:    snap.CurrentPhase,
		ExportDate:      now.UTC().Format(isoMillis),
		Version:         Version,
	}
	if doc.Exercises == nil {
		doc.Exercises = []model.Exercise{}
	}
	if doc.PracticeLogs == nil {
		doc.PracticeLogs = []model.LogEntry{}
	}
	if doc.DayHeaders == nil {
		doc.DayHeaders = map[string]string{}
	}
	if doc.Categories == nil {
		doc.Categories = []string{}
	}
	if doc.AvailablePhases == nil {
		doc.AvailablePhases = []int{}
	}
	return doc
}

// Encode renders the document as indented JSON.
func (d Document) Encode() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Write encodes the export of snap to w.
func Write(w io.Writer, snap store.Snapshot, now time.Time) error {
	data, err := Export(snap, now).Encode()
	if err != nil {
		return fmt.Errorf("backup: encode: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("backup: write: %w", err)
	}
	return nil
}

// FileName is the suggested name of a backup taken at now.
func FileName(now time.Time) string {
	return "musik-uebung-backup-" + now.UTC().Format(model.LayoutISO) + ".json"
}

// ReminderDue reports whether a new backup should be suggested: there is
// none yet, or the last one is at least seven whole days old.
func ReminderDue(last *time.Time, now time.Time) bool {
	if last == nil {
		return true
	}
	return now.Sub(*last) >= ReminderAfter
}
