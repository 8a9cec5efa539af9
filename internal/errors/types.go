package errors

// Exit codes. Every failure kind currently exits with 1; the constants keep the
// mapping in one place should the kinds ever need distinct codes.
const (
	ExitCodeSuccess      = 0
	ExitCodeGenericError = 1
	ExitCodeEnvironment  = 1
	ExitCodeSelection    = 1
	ExitCodeOperation    = 1
)
