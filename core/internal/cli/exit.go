package cli

import (
	"errors"

	"work-manifest/core/internal/builder"
)

// Process exit statuses. Automation can tell "nothing to scan" apart from
// "could not persist the result".
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitRootMissing = 2
	ExitWriteFailed = 3
)

func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, builder.ErrRootMissing):
		return ExitRootMissing
	case errors.Is(err, builder.ErrWriteManifest):
		return ExitWriteFailed
	default:
		return ExitFailure
	}
}
