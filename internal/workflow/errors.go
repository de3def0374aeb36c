package workflow

import "fmt"

// ErrTerminalMissing is returned when a pipeline ran to completion but no
// stage produced its terminal response, which happens when passthrough
// propagated an absent precondition all the way through.
type ErrTerminalMissing struct {
	Pipeline string
}

func (e *ErrTerminalMissing) Error() string {
	return fmt.Sprintf("pipeline %s completed without producing a result; check the request fields", e.Pipeline)
}
