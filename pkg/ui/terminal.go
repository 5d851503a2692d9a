package ui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Color functions for terminal output
var (
	Cyan   = colorize("\033[36m%s\033[0m")
	Yellow = colorize("\033[33m%s\033[0m")
	Red    = colorize("\033[31m%s\033[0m")
	Dim    = colorize("\033[2m%s\033[0m")
)

// colorize returns a function that wraps text with ANSI color codes
func colorize(colorString string) func(string) string {
	return func(text string) string {
		return fmt.Sprintf(colorString, text)
	}
}

// Console writes the user-facing lines of a run. Progress, warnings and
// errors go to Err, the diagnostic stream. Planned downloads of a dry run
// go to Out.
type Console struct {
	Out   io.Writer
	Err   io.Writer
	color bool
}

// NewConsole creates a console. Colour is used only when err is a
// terminal and noColor is false.
func NewConsole(out, err io.Writer, noColor bool) *Console {
	return &Console{
		Out:   out,
		Err:   err,
		color: !noColor && isTerminal(err),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (c *Console) paint(fn func(string) string, s string) string {
	if c.color {
		return fn(s)
	}
	return s
}

// Progress announces the post about to be fetched. index is zero based.
func (c *Console) Progress(postID, prefix string, index, total int) {
	fmt.Fprintf(c.Err, "Fetching post %s as %s (%d/%d)\n",
		postID, c.paint(Cyan, prefix), index+1, total)
}

// Warning reports a recoverable problem
func (c *Console) Warning(format string, args ...interface{}) {
	fmt.Fprintln(c.Err, c.paint(Yellow, "Warning: "+fmt.Sprintf(format, args...)))
}

// Error reports a failure that ends the run
func (c *Console) Error(format string, args ...interface{}) {
	fmt.Fprintln(c.Err, c.paint(Red, "Error: "+fmt.Sprintf(format, args...)))
}

// Planned prints a download a dry run would perform
func (c *Console) Planned(url, dest string) {
	fmt.Fprintf(c.Out, "%s => %s\n", url, dest)
}

// Info prints a labelled value to the diagnostic stream
func (c *Console) Info(label, value string) {
	fmt.Fprintf(c.Err, "%s: %s\n", c.paint(Cyan, label), value)
}
