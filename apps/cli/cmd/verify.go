package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/yeoman/yeoman-assert/packages/manifest"
	"github.com/yeoman/yeoman-assert/packages/report"
	"github.com/yeoman/yeoman-assert/packages/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [directory]",
	Short: "Run manifest checks against a generated tree",
	Long: `Run the checks declared in a yoassert manifest against a directory
of generated files. The directory defaults to the current one, and the
manifest is searched for inside it unless --manifest is given.

Examples:
  yoassert verify
  yoassert verify ./out
  yoassert verify ./out --manifest checks/yoassert.yaml
  yoassert verify ./out --output json
  yoassert verify ./out --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: verifyCommand,
}

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var (
	manifestFlag   string
	outputFlag     string
	outputFileFlag string
	verboseFlag    bool
	noColorFlag    bool
	watchFlag      bool
)

func init() {
	verifyCmd.Flags().StringVarP(&manifestFlag, "manifest", "m", getEnvString("YOASSERT_MANIFEST", ""), "Path to manifest file (env: YOASSERT_MANIFEST)")
	verifyCmd.Flags().StringVarP(&outputFlag, "output", "o", getEnvString("YOASSERT_OUTPUT", "console"), "Output format: console, json, tap (env: YOASSERT_OUTPUT)")
	verifyCmd.Flags().StringVar(&outputFileFlag, "output-file", getEnvString("YOASSERT_OUTPUT_FILE", ""), "Write output to file (default: stdout) (env: YOASSERT_OUTPUT_FILE)")
	verifyCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Include run id and manifest path in console output")
	verifyCmd.Flags().BoolVar(&noColorFlag, "no-color", getEnvBool("YOASSERT_NO_COLOR", false), "Disable colored output (env: YOASSERT_NO_COLOR)")
	verifyCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch the tree for changes and re-run checks")
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

func newFormatter(outWriter *os.File) (report.Formatter, error) {
	switch strings.ToLower(outputFlag) {
	case "json":
		opts := []report.JSONOption{}
		if outWriter != nil {
			opts = append(opts, report.JSONWithWriter(outWriter))
		}
		return report.NewJSONFormatter(opts...), nil
	case "tap":
		opts := []report.TAPOption{}
		if outWriter != nil {
			opts = append(opts, report.TAPWithWriter(outWriter))
		}
		return report.NewTAPFormatter(opts...), nil
	case "console":
		opts := []report.ConsoleOption{
			report.WithVerbose(verboseFlag),
			report.WithNoColor(noColorFlag),
		}
		if outWriter != nil {
			opts = append(opts, report.WithWriter(outWriter))
		}
		return report.NewConsoleFormatter(opts...), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want console, json or tap)", outputFlag)
	}
}

func verifyCommand(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}

	// Setup output writer
	var outWriter *os.File
	if outputFileFlag != "" {
		outWriter, err = os.Create(outputFileFlag)
		if err != nil {
			return fmt.Errorf("cannot create output file: %w", err)
		}
		defer outWriter.Close()
	}

	formatter, err := newFormatter(outWriter)
	if err != nil {
		return err
	}

	loadManifest := func() (*manifest.Manifest, error) {
		path := manifestFlag
		if path == "" {
			var err error
			path, err = manifest.Find(root)
			if err != nil {
				return nil, err
			}
		}
		return manifest.Load(path)
	}

	m, err := loadManifest()
	if err != nil {
		formatter.FormatError(err)
		os.Exit(ExitManifestError)
	}

	runChecks := func(m *manifest.Manifest) *verify.Summary {
		s := verify.Run(root, m)
		if err := formatter.Format(s); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to write output: %v\n", err)
		}
		return s
	}

	summary := runChecks(m)

	// If watch mode is not enabled, exit normally
	if !watchFlag {
		if summary.Failed > 0 {
			os.Exit(ExitCheckFailure)
		}
		return nil
	}

	return watchAndRerun(cmd, root, m, formatter, loadManifest, runChecks)
}

// watchAndRerun re-runs the checks whenever the verified tree changes.
// Check failures do not exit in watch mode; the next save gets another
// chance.
func watchAndRerun(
	cmd *cobra.Command,
	root string,
	m *manifest.Manifest,
	formatter report.Formatter,
	loadManifest func() (*manifest.Manifest, error),
	runChecks func(*manifest.Manifest) *verify.Summary,
) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	watchedDirs := make(map[string]bool)
	watchTree := func(dir string) {
		_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() && !watchedDirs[path] {
				if err := watcher.Add(path); err != nil {
					formatter.FormatError(fmt.Errorf("failed to watch %s: %w", path, err))
				}
				watchedDirs[path] = true
			}
			return nil
		})
	}
	watchTree(root)

	// Manifest edits re-run too, even when it lives outside the tree
	if !watchedDirs[m.Dir] {
		if err := watcher.Add(m.Dir); err == nil {
			watchedDirs[m.Dir] = true
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")

	ctx := cmd.Context()

	// Cap re-runs at one per second
	limiter := rate.NewLimiter(rate.Limit(1), 1)

	// Debounce timer for rapid file changes
	var debounceTimer *time.Timer

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Generators create whole subtrees; pick up new directories
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					watchTree(event.Name)
				}
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			// Debounce: reset timer on each event
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
				if err := limiter.Wait(ctx); err != nil {
					return
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nChanged: %s\nRe-running checks...\n", event.Name)

				m, err := loadManifest()
				if err != nil {
					formatter.FormatError(err)
					return
				}
				runChecks(m)

				fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			formatter.FormatError(fmt.Errorf("watcher error: %w", err))
		}
	}
}
