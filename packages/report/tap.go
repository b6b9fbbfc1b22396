package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yeoman/yeoman-assert/packages/verify"
)

// TAPFormatter writes the summary in TAP (Test Anything Protocol) format,
// one test point per check.
type TAPFormatter struct {
	writer io.Writer
}

type TAPOption func(*TAPFormatter)

func NewTAPFormatter(opts ...TAPOption) *TAPFormatter {
	f := &TAPFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func TAPWithWriter(w io.Writer) TAPOption {
	return func(f *TAPFormatter) {
		f.writer = w
	}
}

func (f *TAPFormatter) Format(s *verify.Summary) error {
	fmt.Fprintf(f.writer, "TAP version 13\n")
	fmt.Fprintf(f.writer, "1..%d\n", len(s.Results))

	for i, r := range s.Results {
		if r.Passed {
			fmt.Fprintf(f.writer, "ok %d - %s\n", i+1, r.Desc)
			continue
		}

		fmt.Fprintf(f.writer, "not ok %d - %s\n", i+1, r.Desc)
		if len(r.Messages) > 0 {
			if err := f.writeDiagnostic(r.Messages); err != nil {
				return err
			}
		}
	}

	fmt.Fprintln(f.writer)
	return nil
}

// writeDiagnostic nests failure messages in a YAML diagnostic block. A TAP
// consumer reads any column-zero line as a test point, so multi-line messages
// (file bodies, diffs) are yaml-encoded and indented line by line.
func (f *TAPFormatter) writeDiagnostic(messages []string) error {
	body, err := yaml.Marshal(map[string][]string{"failures": messages})
	if err != nil {
		return fmt.Errorf("failed to encode failures: %w", err)
	}
	fmt.Fprintf(f.writer, "  ---\n")
	for _, line := range strings.Split(strings.TrimRight(string(body), "\n"), "\n") {
		if line == "" {
			fmt.Fprintln(f.writer)
			continue
		}
		fmt.Fprintf(f.writer, "  %s\n", line)
	}
	fmt.Fprintf(f.writer, "  ...\n")
	return nil
}

// FormatError emits a TAP bail-out, the protocol's way to abort a run.
func (f *TAPFormatter) FormatError(err error) {
	fmt.Fprintf(f.writer, "Bail out! %v\n", err)
}
