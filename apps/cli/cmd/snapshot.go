package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yeoman/yeoman-assert/packages/manifest"
)

var snapshotOutputFlag string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [directory]",
	Short: "Generate a manifest from an existing tree",
	Long: `Walk a generated tree and emit a yoassert manifest asserting that
every file in it exists. The result is a starting point: refine the
generated checks with content, JSON and database assertions by hand.

Examples:
  yoassert snapshot ./out
  yoassert snapshot ./out -o yoassert.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: snapshotCommand,
}

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotOutputFlag, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.AddCommand(snapshotCmd)
}

func snapshotCommand(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	files, err := collectTree(root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found in %s", root)
	}

	m := &manifest.Manifest{}
	for _, f := range files {
		m.Checks = append(m.Checks, manifest.Entry{File: manifest.StringList{f}})
	}

	content, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	if snapshotOutputFlag != "" {
		if dir := filepath.Dir(snapshotOutputFlag); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}
		}
		if err := os.WriteFile(snapshotOutputFlag, content, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d checks to %s\n", len(m.Checks), snapshotOutputFlag)
	} else {
		fmt.Fprint(cmd.OutOrStdout(), string(content))
	}

	return nil
}

// collectTree lists every file under root as a slash-separated relative
// path, skipping manifests and .git internals.
func collectTree(root string) ([]string, error) {
	skip := make(map[string]bool, len(manifest.Filenames))
	for _, name := range manifest.Filenames {
		skip[name] = true
	}

	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if info.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if skip[rel] {
			return nil
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cannot walk %s: %w", root, err)
	}
	return files, nil
}
