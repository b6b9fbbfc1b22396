// Package report renders verification summaries, for people on a terminal
// and for machines as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/yeoman/yeoman-assert/packages/verify"
)

// Formatter renders one verification summary. FormatError reports failures
// that happen before any checks run, such as an unreadable manifest.
type Formatter interface {
	Format(s *verify.Summary) error
	FormatError(err error)
}

// ConsoleFormatter writes a human-readable report with one line per check.
type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

func (f *ConsoleFormatter) Format(s *verify.Summary) error {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(f.writer, "\n%s\n\n", bold("Verifying: "+s.Root))

	for _, r := range s.Results {
		symbol := green("✓")
		if !r.Passed {
			symbol = red("✗")
		}
		fmt.Fprintf(f.writer, "  %s %s\n", symbol, r.Desc)

		if !r.Passed {
			for _, msg := range r.Messages {
				fmt.Fprintf(f.writer, "    %s %s\n", red("→"), msg)
			}
		}
	}

	fmt.Fprintf(f.writer, "\nChecks: ")
	if s.Passed > 0 {
		fmt.Fprintf(f.writer, "%s, ", green(fmt.Sprintf("%d passed", s.Passed)))
	}
	if s.Failed > 0 {
		fmt.Fprintf(f.writer, "%s, ", red(fmt.Sprintf("%d failed", s.Failed)))
	}
	fmt.Fprintf(f.writer, "%d total\n", len(s.Results))
	fmt.Fprintf(f.writer, "Time:  %dms\n", s.Duration.Milliseconds())

	if f.verbose {
		fmt.Fprintf(f.writer, "Run:   %s\n", s.RunID)
		if s.Manifest != "" {
			fmt.Fprintf(f.writer, "Plan:  %s\n", s.Manifest)
		}
	}

	fmt.Fprintf(f.writer, "\n")
	return nil
}

// FormatError writes a one-line error outside any summary, for failures that
// happen before checks can run.
func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}

// JSONFormatter writes the summary as indented JSON.
type JSONFormatter struct {
	writer io.Writer
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

// jsonOutput mirrors verify.Summary with wire-friendly durations.
type jsonOutput struct {
	RunID    string      `json:"runId"`
	Root     string      `json:"root"`
	Manifest string      `json:"manifest,omitempty"`
	Summary  jsonSummary `json:"summary"`
	Checks   []jsonCheck `json:"checks"`
	Duration float64     `json:"duration"`
	Time     string      `json:"time"`
}

type jsonSummary struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
}

type jsonCheck struct {
	Desc     string   `json:"desc"`
	Passed   bool     `json:"passed"`
	Messages []string `json:"messages,omitempty"`
}

func (f *JSONFormatter) Format(s *verify.Summary) error {
	out := jsonOutput{
		RunID:    s.RunID,
		Root:     s.Root,
		Manifest: s.Manifest,
		Summary: jsonSummary{
			Total:  len(s.Results),
			Passed: s.Passed,
			Failed: s.Failed,
		},
		Checks:   make([]jsonCheck, 0, len(s.Results)),
		Duration: float64(s.Duration.Milliseconds()),
		Time:     time.Now().Format(time.RFC3339),
	}
	for _, r := range s.Results {
		out.Checks = append(out.Checks, jsonCheck{
			Desc:     r.Desc,
			Passed:   r.Passed,
			Messages: r.Messages,
		})
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// FormatError writes the error as a JSON object, keeping the stream parseable.
func (f *JSONFormatter) FormatError(err error) {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(map[string]string{"error": err.Error()})
}
