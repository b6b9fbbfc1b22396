package assert

// Check pairs a file path with the expectation evaluated against it. The
// *All operations take a []Check; their singular forms wrap a single pair.
// Items are independent: every failing check is reported, not just the
// first.
type Check struct {
	// Path of the file under test, relative to the suite's working
	// directory unless absolute.
	Path string
	// Want is the expectation. Content checks accept a substring, a
	// *regexp.Regexp or a matcher.Matcher; equality checks want a string;
	// JSON checks accept any JSON-marshalable value.
	Want any
}

func oneCheck(path string, want any) []Check {
	return []Check{{Path: path, Want: want}}
}
