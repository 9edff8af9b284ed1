package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danieljhkim/appdock/internal/appimage"
	"github.com/danieljhkim/appdock/internal/config"
	"github.com/danieljhkim/appdock/internal/engine"
	"github.com/danieljhkim/appdock/internal/fsops"
	"github.com/danieljhkim/appdock/internal/procs"
)

// cfgFile is the --config flag value.
var cfgFile string

// newEngine creates a new engine with real implementations of all
// dependencies.
func newEngine() (*engine.Engine, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	fs := fsops.NewRealFS()
	extractor := appimage.NewPackageExtractor()
	table := procs.NewSystemTable()
	runner := procs.NewDetachedRunner()

	return engine.New(fs, extractor, table, runner, cfg), nil
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
