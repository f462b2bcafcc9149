// Package logfields defines the logging field names shared across packages.
package logfields

const (
	// LogSubsys is the field denoting the subsystem when logging
	LogSubsys = "subsys"

	// Pattern is the source text of a pattern
	Pattern = "pattern"

	// Rule is the name of a token rule
	Rule = "rule"

	// Path is a file name
	Path = "path"

	// Line is a 1-based input line
	Line = "line"

	// Column is a 1-based input column
	Column = "column"

	// Token is the text of a token
	Token = "token"

	// RunID correlates the log lines of one command invocation
	RunID = "runID"

	// Interval is a polling interval
	Interval = "interval"
)
