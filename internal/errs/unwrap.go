package errs

import (
	"errors"
)

// Unpack returns the full Unwrap stack of the given error, starting with the error itself
func Unpack(err error) []error {
	var errs []error
	for err != nil {
		errs = append(errs, err)
		err = errors.Unwrap(err)
	}
	return errs
}

// Matches checks if the given error matches the given target, according to errors.As
func Matches(err error, target interface{}) bool {
	return errors.As(err, target)
}

// UnwrapExitCode checks if the given error carries an exit code and
// returns the ExitCode of the process that failed with this error
func UnwrapExitCode(err error) int {
	if err == nil {
		return 0
	}

	var eerr ExitCodeable
	if errors.As(err, &eerr) {
		return eerr.ExitCode()
	}

	return 1
}
