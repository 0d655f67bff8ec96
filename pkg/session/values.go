package session

import (
	"tableflip.dev/uebung/pkg/model"
	"tableflip.dev/uebung/pkg/scales"
)

// buffer holds the edits made to one exercise during a session. A nil field
// was not touched; a non-nil field counts even when empty.
type buffer struct {
	song        *string
	bpm         *int
	page        *string
	book        *string
	notes       *string
	globalNotes *string
	completed   *bool
	scales      *scales.Selection
}

// Values are the effective fields of the current exercise.
type Values struct {
	Song        string
	BPM         int
	Page        string
	Book        string
	Notes       string
	GlobalNotes string
	Completed   bool
	Pairs       []model.ScalePair

	// Today is the log already saved for the session date, if any.
	Today *model.LogEntry
	// Last is the latest log before the session date, if any.
	Last *model.LogEntry
}

func resolve(b *buffer, today, last *model.LogEntry, globalNotes string) Values {
	if b == nil {
		b = &buffer{}
	}
	v := Values{
		Song:        text(b.song, today, last, func(l *model.LogEntry) string { return l.Song }),
		Page:        text(b.page, today, last, func(l *model.LogEntry) string { return l.Page }),
		Book:        text(b.book, today, last, func(l *model.LogEntry) string { return l.Book }),
		Notes:       text(b.notes, today, last, func(l *model.LogEntry) string { return l.Notes }),
		GlobalNotes: globalNotes,
		BPM:         model.DefaultBPM,
		Today:       today,
		Last:        last,
	}
	if b.globalNotes != nil {
		v.GlobalNotes = *b.globalNotes
	}

	switch {
	case b.bpm != nil:
		v.BPM = *b.bpm
	case today != nil && today.BPM > 0:
		v.BPM = today.BPM
	case last != nil && last.BPM > 0:
		v.BPM = last.BPM
	}

	switch {
	case b.completed != nil:
		v.Completed = *b.completed
	case today != nil:
		v.Completed = today.Completed
	case last != nil:
		v.Completed = last.Completed
	}

	var saved []model.ScalePair
	if today != nil {
		saved = today.ScalePairs()
	}
	switch {
	case v.Completed:
		v.Pairs = saved
	case b.scales != nil:
		v.Pairs = b.scales.Pairs()
	default:
		v.Pairs = saved
	}
	if v.Pairs == nil {
		v.Pairs = []model.ScalePair{}
	}
	return v
}

func text(buffered *string, today, last *model.LogEntry, field func(*model.LogEntry) string) string {
	if buffered != nil {
		return *buffered
	}
	for _, l := range []*model.LogEntry{today, last} {
		if l != nil && field(l) != "" {
			return field(l)
		}
	}
	return ""
}
