package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// PreflightError is a user-facing error with a suggested fix.
type PreflightError struct {
	Message  string
	Hint     string
	NextStep string
	Err      error
}

func (e *PreflightError) Error() string {
	return e.Message
}

func (e *PreflightError) Unwrap() error {
	return e.Err
}

var (
	errorLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	hintLabel  = color.New(color.FgYellow).SprintFunc()
	stepLabel  = color.New(color.FgCyan).SprintFunc()
	okLabel    = color.New(color.FgGreen).SprintFunc()
)

func printError(out io.Writer, err error) {
	if err == nil {
		return
	}
	var preflight *PreflightError
	if errors.As(err, &preflight) {
		fmt.Fprintf(out, "%s %s\n", errorLabel("Error:"), preflight.Message)
		if preflight.Hint != "" {
			fmt.Fprintf(out, "%s %s\n", hintLabel("Hint:"), preflight.Hint)
		}
		if preflight.NextStep != "" {
			fmt.Fprintf(out, "%s %s\n", stepLabel("Next:"), preflight.NextStep)
		}
		return
	}
	fmt.Fprintf(out, "%s %s\n", errorLabel("Error:"), err)
}
