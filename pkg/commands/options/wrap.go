package options

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// Wrap80 reflows text into lines of at most 80 columns.
func Wrap80(text string) string {
	return Wrap(text, 80)
}

// Wrap joins the words of text and breaks them at width. Words longer than
// width stay whole.
func Wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}
	return wordwrap.String(strings.Join(words, " "), width)
}
