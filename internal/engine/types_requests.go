package engine

// ExtractRequest represents a request to extract an icon and desktop entry
// from a package.
type ExtractRequest struct {
	// PackagePath is the path to the package file
	PackagePath string

	// OutputDir is the directory the icon and desktop entry are written
	// to (default: current directory)
	OutputDir string
}

// DispatchRequest represents a request to launch an installed executable.
type DispatchRequest struct {
	// Prefix is the executable name prefix to match, case-insensitively
	Prefix string

	// Args are forwarded verbatim, in order, to the launched executable
	Args []string

	// SearchDir is the directory searched for matching executables
	// (default: the configured application directory)
	SearchDir string
}
