package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/uebung/pkg/app"
	"tableflip.dev/uebung/pkg/scales"
)

// LogOptions
type LogOptions struct {
	Song        string
	BPM         int
	Page        string
	Book        string
	Notes       string
	GlobalNotes string
	Completed   bool
	Scales      []string
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.Flags().StringVar(&o.Song, "song", "", "Song practiced.")
	cmd.Flags().IntVar(&o.BPM, "bpm", 0, "Tempo in beats per minute.")
	cmd.Flags().StringVar(&o.Page, "page", "", "Page in the book.")
	cmd.Flags().StringVar(&o.Book, "book", "", "Book practiced from.")
	cmd.Flags().StringVar(&o.Notes, "notes", "", "Notes for this day.")
	cmd.Flags().StringVar(&o.GlobalNotes, "global-notes", "",
		Wrap80("Notes shown on every future session of the exercise."))
	cmd.Flags().BoolVar(&o.Completed, "completed", false,
		"Mark the exercise completed. Use --completed=false to reopen it.")
	cmd.Flags().StringArrayVar(&o.Scales, "scale", nil,
		`Scale practiced as KEY:MODE, example: --scale "C:Dur". May be repeated.`)
}

// Edits collects the flags set on cmd. Unset flags keep the value the
// practice session would show.
func (o *LogOptions) Edits(cmd *cobra.Command) (app.LogEdits, error) {
	var e app.LogEdits
	f := cmd.Flags()
	if f.Changed("song") {
		e.Song = &o.Song
	}
	if f.Changed("bpm") {
		e.BPM = &o.BPM
	}
	if f.Changed("page") {
		e.Page = &o.Page
	}
	if f.Changed("book") {
		e.Book = &o.Book
	}
	if f.Changed("notes") {
		e.Notes = &o.Notes
	}
	if f.Changed("global-notes") {
		e.GlobalNotes = &o.GlobalNotes
	}
	if f.Changed("completed") {
		e.Completed = &o.Completed
	}
	for _, s := range o.Scales {
		p, err := scales.ParsePair(s)
		if err != nil {
			return app.LogEdits{}, err
		}
		e.Scales = append(e.Scales, p)
	}
	return e, nil
}
