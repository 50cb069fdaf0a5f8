package errors

type ExitCode int

const (
	GenericFailureExitCode ExitCode = 1
	UsageExitCode                   = 2

	// Controller bootstrap
	ParamsFailureExitCode       = 3
	ConnectivityFailureExitCode = 4

	// Scheduling
	EmptySelectionExitCode      = 5
	StartCommandFailureExitCode = 6

	// 128 + SIGINT
	InterruptedExitCode = 130
)
