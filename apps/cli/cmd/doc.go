// Package cmd implements the yoassert CLI commands using Cobra.
//
// Available commands:
//   - verify: Run manifest checks against a generated tree
//   - init: Create a starter yoassert.yaml manifest
//   - snapshot: Generate a manifest from an existing tree
//   - version: Show yoassert version information
//
// The CLI supports flags for output formatting and a watch mode that
// re-runs the checks whenever the verified tree changes.
package cmd
