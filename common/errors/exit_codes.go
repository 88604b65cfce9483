package errors

type ExitCode int

// Exit codes for fatal conditions in the analysis binaries. Configuration
// problems and external-tool failures get distinct codes so wrapping
// workflows can tell them apart.
const (
	GenericExitCode    ExitCode = 1
	NoLauncherExitCode ExitCode = 10
	ScorerExitCode     ExitCode = 11
	ParseExitCode      ExitCode = 12
	ConfigExitCode     ExitCode = 13
)
