package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/devshell-sh/cli/internal/condition"
	"github.com/devshell-sh/cli/internal/errs"
	"github.com/devshell-sh/cli/internal/locale"
	"github.com/devshell-sh/cli/internal/logging"
	"github.com/devshell-sh/cli/internal/output"
)

func unwrapError(err error) (int, error) {
	if err == nil {
		return 0, nil
	}

	var ee errs.Error
	stack := "not provided"
	isErrs := errors.As(err, &ee)
	if isErrs {
		stack = ee.Stack().String()
	}

	_, hasMarshaller := err.(output.Marshaller)

	// Log error if this isn't a user input error
	if !locale.IsInputError(err) {
		logging.Error("Returning error:\n%s\nCreated at:\n%s", errs.Join(err, "\n").Error(), stack)
	}

	// unwrap exit code before we remove un-localized wrapped errors from err variable
	code := errs.UnwrapExitCode(err)

	if locale.HasError(err) {
		err = locale.JoinErrors(err, "\n")
	} else if isErrs && !hasMarshaller {
		logging.Error("MUST ADDRESS: Error does not have localization: %s", errs.Join(err, "\n").Error())

		// If this wasn't built via CI then this is a dev workstation, and we should be more aggressive
		if !condition.BuiltOnCI() {
			panic(fmt.Sprintf("Errors must be localized! Please localize: %s, called at: %s\n", err.Error(), stack))
		}
	}

	return code, err
}

func handlePanics(r interface{}) bool {
	if r == nil {
		return false
	}

	logging.Error("%v - caught panic", r)
	logging.Debug("Panic: %v\n%s", r, string(debug.Stack()))

	fmt.Fprintf(os.Stderr, `An unexpected error occurred while running devshell.
Check the error log for more information.
Your error log is located at: %s`+"\n", logging.FilePath())

	time.Sleep(time.Second) // Give rollbar a second to complete its async request (switching this to sync isnt simple)
	return true
}
