package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/appdock/internal/engine"
)

var extractOutput string

var extractCmd = &cobra.Command{
	Use:   "extract [package]",
	Short: "Extract the icon and desktop entry from a package",
	Long: `Extract the application icon and desktop entry from an AppImage or archive.

The best available icon is chosen (vector preferred, then proximity to the
package root, then size) and written next to a rewritten .desktop file whose
Exec line goes through 'appdock launch'.

Examples:
  appdock extract Cider-linux-x64_2.3.1.AppImage
  appdock extract mytool.tar.xz --output ~/Downloads`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Extract(context.Background(), &engine.ExtractRequest{
			PackagePath: args[0],
			OutputDir:   extractOutput,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSuccess(fmt.Sprintf("Extracted %s", result.AppName))
		PrintLabelValue("Icon", result.IconPath)
		PrintLabelValue("Desktop entry", result.DesktopPath)

		PrintSection("Setup Instructions")
		PrintInfo("To finish integrating the application:")
		PrintList([]string{
			fmt.Sprintf("mkdir -p %s", result.InstallDir),
			fmt.Sprintf("cp %s %s %s/", result.IconPath, args[0], result.InstallDir),
			fmt.Sprintf("cp %s %s/", result.DesktopPath, applicationsDir(eng)),
		}, 1)
		PrintInfo("")
		PrintInfo(fmt.Sprintf("The application will appear in your menu as %q.", result.AppName))
		return nil
	},
}

func applicationsDir(eng *engine.Engine) string {
	dir := eng.ApplicationsDir()
	if dir == "" {
		return filepath.Join("~", ".local", "share", "applications")
	}
	return dir
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", ".", "Directory to write the icon and desktop entry to")
}
