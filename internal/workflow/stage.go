package workflow

import "fmt"

// Stage names the step of the provisioning flow an attempt failed at, so
// batch callers can report "delivery timeout" and "verification rejected"
// as different outcomes.
type Stage string

const (
	StageDomains     Stage = "domains"
	StageRequestCode Stage = "request-code"
	StageAwaitEmail  Stage = "await-email"
	StageVerify      Stage = "verify"
	StageFinalize    Stage = "finalize"
)

// Error is a provisioning failure attributed to a stage. Use errors.As to
// recover the stage and errors.Is to match the underlying cause.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func failed(stage Stage, err error) *Error {
	return &Error{Stage: stage, Err: err}
}
