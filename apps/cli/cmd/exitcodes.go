package cmd

// Exit codes for yoassert CLI
const (
	// ExitSuccess indicates every check passed
	ExitSuccess = 0

	// ExitCheckFailure indicates one or more checks failed
	ExitCheckFailure = 1

	// ExitManifestError indicates the manifest could not be found or loaded
	ExitManifestError = 2

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
