package engine

// ExtractResult represents the result of extracting a package.
type ExtractResult struct {
	// AppName is the cleaned, human-readable application name
	AppName string

	// Slug is the cleaned name with spaces removed, used for output
	// filenames and executable matching
	Slug string

	// IconPath is the path of the icon file written to the output directory
	IconPath string

	// DesktopPath is the path of the desktop entry written to the output
	// directory
	DesktopPath string

	// InstallDir is the application directory the generated entry points
	// into
	InstallDir string
}

// DispatchStatus describes the outcome of a dispatch.
type DispatchStatus string

const (
	// StatusLaunched means the executable was found and started.
	StatusLaunched DispatchStatus = "launched"

	// StatusAlreadyRunning means an instance was found in the process
	// table and nothing was started.
	StatusAlreadyRunning DispatchStatus = "already-running"

	// StatusNotFound means no executable matched the prefix.
	StatusNotFound DispatchStatus = "not-found"
)

// DispatchResult represents the result of a dispatch.
type DispatchResult struct {
	// Status is the dispatch outcome
	Status DispatchStatus

	// Executable is the basename of the matched executable (empty when
	// Status is StatusNotFound)
	Executable string

	// Path is the full path of the matched executable
	Path string

	// PID is the process ID of the launched child (only set when Status
	// is StatusLaunched)
	PID int
}
