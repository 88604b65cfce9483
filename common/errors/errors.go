package errors

// ExitCodeError pairs an error with the process exit code the binaries
// should terminate with when the error is fatal.
type ExitCodeError struct {
	code ExitCode
	error
}

func NewError(err error, exitCode ExitCode) *ExitCodeError {
	if err == nil {
		return nil
	}
	return &ExitCodeError{exitCode, err}
}

func (e *ExitCodeError) GetExitCode() ExitCode {
	if e == nil {
		return 0
	}
	return e.code
}

// CodeOf extracts the exit code carried by err, defaulting to
// GenericExitCode for plain errors and 0 for nil.
func CodeOf(err error) ExitCode {
	if err == nil {
		return 0
	}
	if ece, ok := err.(*ExitCodeError); ok {
		return ece.GetExitCode()
	}
	return GenericExitCode
}
