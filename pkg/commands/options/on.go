package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/uebung/pkg/model"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2024-1-15" or --on="1/15". Defaults to today.`)
}

// GetOn returns the selected date, or today when none was given.
func (o *OnOptions) GetOn(today model.Date) (model.Date, error) {
	if o.OnString == "" {
		return today, nil
	}
	t, err := time.Parse(layoutISO, o.OnString)
	if err != nil {
		// Let the year be the same.
		t, err = time.Parse(layoutISOShort, o.OnString)
		if err != nil {
			return "", err
		}
		now, err := today.Time()
		if err != nil {
			return "", err
		}
		t = t.AddDate(now.Year(), 0, 0)
		// Practice is logged after the fact, so 12/30 on 1/5 means last year.
		if model.DateOf(t) > today {
			t = t.AddDate(-1, 0, 0)
		}
	}
	return model.DateOf(t), nil
}
