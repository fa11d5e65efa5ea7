package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/ripple/internal/logger"
)

var (
	// ErrNotFound is returned when a lookup by id or date matches nothing
	ErrNotFound = stderrors.New("not found")
	// ErrNotOnboarded is returned by commands that need a completed profile
	ErrNotOnboarded = stderrors.New("onboarding has not been completed")
)

var hints = []struct {
	err  error
	hint string
}{
	{ErrNotOnboarded, "run `ripple onboard` to set up your profile"},
	{ErrNotFound, "ids may be shortened to any unique prefix; list the items to see them"},
}

// Hint returns the follow-up suggestion for the first sentinel err wraps, or "".
func Hint(err error) string {
	for _, h := range hints {
		if stderrors.Is(err, h.err) {
			return h.hint
		}
	}
	return ""
}

// Format formats an error message with a consistent "Error: " prefix, adding
// a hint line when the error wraps a known sentinel
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\nHint: " + hint
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err, "hint", Hint(err))
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
