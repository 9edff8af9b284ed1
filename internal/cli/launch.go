package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/appdock/internal/engine"
)

var launchCmd = &cobra.Command{
	Use:   "launch [prefix] [args...]",
	Short: "Launch an installed application exactly once",
	Long: `Launch the installed executable whose name starts with the given prefix.

The application directory is scanned for an executable matching the prefix
(case-insensitive). If a process with that name is already running, nothing
is started. Any extra arguments are forwarded to the application unmodified.

The generated desktop entries invoke this command, so a launcher double-click
never starts a second instance.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Dispatch(context.Background(), &engine.DispatchRequest{
			Prefix: args[0],
			Args:   args[1:],
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		// All three outcomes exit 0; only the messages differ.
		switch result.Status {
		case engine.StatusLaunched:
			PrintSuccess(fmt.Sprintf("Launched %s (pid %d)", result.Executable, result.PID))
		case engine.StatusAlreadyRunning:
			PrintInfo(fmt.Sprintf("%s is already running", result.Executable))
		case engine.StatusNotFound:
			PrintWarning(fmt.Sprintf("No executable matching %q found", args[0]))
		}
		return nil
	},
}

func init() {
	// Let flags after the prefix flow to the launched application instead
	// of being parsed as appdock flags.
	launchCmd.Flags().SetInterspersed(false)
}
