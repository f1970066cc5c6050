package robot

import "fmt"

// ConnectionError reports a failure to reach the robot daemon.
type ConnectionError struct {
	Host string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to robot at %s: %v", e.Host, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// AuthError reports a failed authentication, including the case where the
// interactive fallback was rejected or unavailable.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// LeaseError reports a failure to acquire or maintain the command lease.
type LeaseError struct {
	Err error
}

func (e *LeaseError) Error() string {
	return fmt.Sprintf("lease error: %v", e.Err)
}

func (e *LeaseError) Unwrap() error { return e.Err }

// SafetyError reports that the robot refused motion for safety reasons,
// such as an active estop.
type SafetyError struct {
	Reason string
}

func (e *SafetyError) Error() string {
	return fmt.Sprintf("safety check failed: %s", e.Reason)
}

// PowerError reports a motor power transition failure.
type PowerError struct {
	Err error
}

func (e *PowerError) Error() string {
	return fmt.Sprintf("power error: %v", e.Err)
}

func (e *PowerError) Unwrap() error { return e.Err }

// SyncError reports a clock synchronization failure.
type SyncError struct {
	Err error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("time sync failed: %v", e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }
