package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter yoassert manifest",
	Long: `Create a starter yoassert.yaml manifest in the current directory.

Edit the generated checks to match the tree your generator produces,
then run 'yoassert verify <directory>'.

Examples:
  yoassert init
  yoassert init --force`,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing manifest")
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	manifestFile := filepath.Join(cwd, "yoassert.yaml")

	if !forceInit {
		if _, err := os.Stat(manifestFile); err == nil {
			return fmt.Errorf("file already exists: %s (use --force to overwrite)", manifestFile)
		}
	}

	manifestContent := `# yoassert manifest. Each entry declares one check to run against the
# verified directory. Paths are relative to that directory.
checks:
  # Files that must exist.
  - file:
      - package.json
      - README.md

  # Files the generator must not leave behind.
  - noFile: .yo-rc.json

  # A substring the file body must contain.
  - fileContent:
      path: package.json
      contains: '"name"'

  # A regular expression works too.
  - fileContent:
      path: README.md
      matches: '^# '

  # Partial JSON: keys listed here must be present with these values,
  # extra keys in the file are ignored.
  - jsonFileContent:
      path: package.json
      content:
        license: MIT

  # A single value inside a JSON document, addressed by path.
  - jsonPath:
      path: package.json
      query: scripts.test
      contains: jest

  # Glob patterns must match at least one file.
  - glob: "src/**/*.js"
`

	if err := os.WriteFile(manifestFile, []byte(manifestContent), 0644); err != nil {
		return fmt.Errorf("failed to create manifest: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", manifestFile)

	fmt.Fprintf(cmd.OutOrStdout(), "\nyoassert manifest initialized!\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'yoassert verify <directory>' to check a generated tree.\n")

	return nil
}
