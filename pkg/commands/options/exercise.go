package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/uebung/pkg/model"
)

// ExerciseOptions
type ExerciseOptions struct {
	Category string
	Phase    int
	Scales   bool
}

func AddExerciseArgs(cmd *cobra.Command, o *ExerciseOptions) {
	cmd.Flags().StringVarP(&o.Category, "category", "c", "",
		"Category that schedules the exercise.")
	cmd.Flags().IntVarP(&o.Phase, "phase", "p", 1,
		"Phase the exercise belongs to.")
	cmd.Flags().BoolVar(&o.Scales, "scales", false,
		"Track scale coverage for the exercise.")
}

// Apply overrides the fields of in whose flags were set on cmd.
func (o *ExerciseOptions) Apply(cmd *cobra.Command, in model.ExerciseInput) model.ExerciseInput {
	if cmd.Flags().Changed("category") {
		in.Category = o.Category
	}
	if cmd.Flags().Changed("phase") {
		in.Phase = o.Phase
	}
	if cmd.Flags().Changed("scales") {
		in.HasScaleSelector = o.Scales
	}
	return in
}
