package movement

import "fmt"

// CommandError reports a failed motion command (stand or walk), including
// timeouts while waiting for the robot to finish.
type CommandError struct {
	Op  string
	Err error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s command failed: %v", e.Op, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }
