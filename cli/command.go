package cli

import (
	"github.com/spf13/cobra"
)

// cobraCommand is used to implement any type of cobra command
// for any of the imprint command-line tools and executables.
type cobraCommand interface {
	Build() *cobra.Command
}

// An actionCommand performs one operation of an executable and
// reports failures as errors.
type actionCommand struct {
	use     string
	short   string
	long    string
	runFunc func(cmd *cobra.Command, args []string) error
}

var _ cobraCommand = (*actionCommand)(nil)

// NewActionCommand constructs a new command named by use, with the
// given short and long descriptions and the runFunc implementing it.
func NewActionCommand(use, short, long string,
	runFunc func(cmd *cobra.Command, args []string) error) *cobra.Command {
	actionCmd := &actionCommand{
		use:     use,
		short:   short,
		long:    long,
		runFunc: runFunc,
	}
	return actionCmd.Build()
}

// Build constructs the cobra.Command according to the
// actionCommand's settings.
func (actionCmd *actionCommand) Build() *cobra.Command {
	cmd := cobra.Command{
		Use:          actionCmd.use,
		Short:        actionCmd.short,
		Long:         actionCmd.long,
		RunE:         actionCmd.runFunc,
		SilenceUsage: true,
	}
	return &cmd
}
