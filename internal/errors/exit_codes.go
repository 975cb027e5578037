package errors

type ExitCode int

const (
	ExitSuccess         ExitCode = 0
	ExitGeneralError    ExitCode = 1
	ExitConfigError     ExitCode = 2
	ExitScorecardError  ExitCode = 3
	ExitLLMError        ExitCode = 4
	ExitJudgeError      ExitCode = 5
	ExitIOError         ExitCode = 6
	ExitPartialSuccess  ExitCode = 10
)

func (e ExitCode) Int() int {
	return int(e)
}
