// Package robot manages the lifecycle of a session with a Spot robot:
// connect, authenticate, acquire the command lease, power on, sync clocks,
// and tear everything down again.
//
// A Session is an explicit value passed to each operation. Capability
// clients are fields on the session, assembled by SetupClients after
// authentication. No step retries; each failure is logged, wrapped in a
// step-specific error type, and surfaced to the caller.
package robot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/teslashibe/go-spot/internal/log"
	"github.com/teslashibe/go-spot/pkg/api"
)

// Session timing defaults.
const (
	ConnectTimeout        = 10 * time.Second
	DefaultPowerOnTimeout = 20 * time.Second
	LeaseRetainInterval   = 2 * time.Second
	leaseCallTimeout      = 5 * time.Second
	powerPollInterval     = 500 * time.Millisecond
)

// Session is an authenticated connection to one robot. It owns the command
// lease for its lifetime and must be Disconnected on every exit path.
type Session struct {
	Hostname string

	// Capability clients, populated by SetupClients.
	Command  *api.CommandClient
	State    *api.StateClient
	Lease    *api.LeaseClient
	Power    *api.PowerClient
	Estop    *api.EstopClient
	TimeSync *api.TimeSyncClient

	// ClockSkew is robot clock minus local clock, set by SyncClock.
	ClockSkew time.Duration

	client *api.Client

	lease         api.Lease
	leaseHeld     bool
	keepAliveStop chan struct{}
	keepAliveDone chan struct{}

	closed bool
}

// Connect verifies the robot daemon is reachable and returns a session.
// The session is unauthenticated; callers run Authenticate next.
func Connect(hostname string) (*Session, error) {
	log.Info("connecting to robot", "host", hostname)

	client := api.NewClient(hostname)
	ctx, cancel := context.WithTimeout(context.Background(), ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx); err != nil {
		log.Error("failed to connect", "host", hostname, "error", err)
		return nil, &ConnectionError{Host: hostname, Err: err}
	}

	log.Info("connection established", "host", hostname, "client", client.ClientName)
	return &Session{Hostname: hostname, client: client}, nil
}

// Authenticate exchanges credentials for a bearer token. If the provided
// credentials are rejected and stdin is a terminal, the operator is
// prompted once for a login before the failure is surfaced.
func (s *Session) Authenticate(ctx context.Context, user, pass string) error {
	log.Info("authenticating with robot", "user", user)

	auth := api.NewAuthClient(s.client)
	token, err := auth.GetToken(ctx, user, pass)
	if errors.Is(err, api.ErrInvalidLogin) {
		log.Warn("credentials rejected, falling back to interactive login")
		promptUser, promptPass, promptErr := promptCredentials()
		if promptErr != nil {
			log.Error("authentication failed", "error", err)
			return &AuthError{Err: err}
		}
		token, err = auth.GetToken(ctx, promptUser, promptPass)
	}
	if err != nil {
		log.Error("authentication failed", "error", err)
		return &AuthError{Err: err}
	}

	s.client.SetToken(token)
	log.Info("authentication successful")
	return nil
}

// SetupClients instantiates the capability clients. Requires a prior
// successful Authenticate.
func (s *Session) SetupClients() error {
	if s.client.Token() == "" {
		return &AuthError{Err: fmt.Errorf("session is not authenticated")}
	}

	s.Command = api.NewCommandClient(s.client)
	s.State = api.NewStateClient(s.client)
	s.Lease = api.NewLeaseClient(s.client)
	s.Power = api.NewPowerClient(s.client)
	s.Estop = api.NewEstopClient(s.client)
	s.TimeSync = api.NewTimeSyncClient(s.client)

	log.Info("capability clients ready")
	return nil
}

// AcquireLease takes the command lease and starts the keep-alive loop.
// Must-acquire semantics: fails immediately if another controller holds it.
func (s *Session) AcquireLease(ctx context.Context) error {
	log.Info("acquiring lease")

	lease, err := s.Lease.Acquire(ctx)
	if err != nil {
		log.Error("failed to acquire lease", "error", err)
		return &LeaseError{Err: err}
	}

	s.lease = lease
	s.leaseHeld = true
	s.keepAliveStop = make(chan struct{})
	s.keepAliveDone = make(chan struct{})
	go s.retainLoop()

	log.Info("lease acquired", "resource", lease.Resource)
	return nil
}

// retainLoop beats the lease keep-alive until Disconnect stops it.
func (s *Session) retainLoop() {
	defer close(s.keepAliveDone)

	ticker := time.NewTicker(LeaseRetainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.keepAliveStop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), leaseCallTimeout)
			if err := s.Lease.Retain(ctx, s.lease); err != nil {
				log.Warn("lease retain failed", "error", err)
			}
			cancel()
		}
	}
}

// IsEstopped reports whether the robot's emergency stop is active. Callers
// must check this before powering on; no automatic clearing is attempted.
func (s *Session) IsEstopped(ctx context.Context) (bool, error) {
	status, err := s.Estop.Status(ctx)
	if err != nil {
		return false, &SafetyError{Reason: err.Error()}
	}
	return status.Estopped, nil
}

// PowerOn powers the motors and blocks until the robot reports them on or
// the timeout elapses.
func (s *Session) PowerOn(ctx context.Context, timeout time.Duration) error {
	log.Info("powering on robot")

	if err := s.Power.On(ctx); err != nil {
		log.Error("power on failed", "error", err)
		return &PowerError{Err: err}
	}
	if err := s.waitForPower(ctx, timeout, true); err != nil {
		log.Error("power on failed", "error", err)
		return err
	}

	log.Info("robot powered on")
	return nil
}

// PowerOff safely powers the motors down and blocks until the robot
// reports them off or the timeout elapses.
func (s *Session) PowerOff(ctx context.Context, timeout time.Duration) error {
	log.Info("powering off robot")

	if err := s.Power.Off(ctx); err != nil {
		log.Error("power off failed", "error", err)
		return &PowerError{Err: err}
	}
	if err := s.waitForPower(ctx, timeout, false); err != nil {
		log.Error("power off failed", "error", err)
		return err
	}

	log.Info("robot powered off")
	return nil
}

// waitForPower polls robot state until motors reach the wanted power state.
func (s *Session) waitForPower(ctx context.Context, timeout time.Duration, want bool) error {
	deadline := time.Now().Add(timeout)
	for {
		state, err := s.State.GetRobotState(ctx)
		if err != nil {
			return &PowerError{Err: err}
		}
		if state.MotorsPoweredOn == want {
			return nil
		}
		if time.Now().After(deadline) {
			return &PowerError{Err: fmt.Errorf("timed out after %s waiting for motors powered=%v", timeout, want)}
		}
		select {
		case <-ctx.Done():
			return &PowerError{Err: ctx.Err()}
		case <-time.After(powerPollInterval):
		}
	}
}

// SyncClock estimates the robot/local clock skew and stores it on the
// session. Command deadlines are computed against the robot's clock.
func (s *Session) SyncClock(ctx context.Context) error {
	log.Info("syncing time with robot")

	skew, err := s.TimeSync.Establish(ctx)
	if err != nil {
		log.Error("time sync failed", "error", err)
		return &SyncError{Err: err}
	}

	s.ClockSkew = skew
	log.Info("time synchronized", "skew", skew)
	return nil
}

// RobotNow returns the current time on the robot's clock, using the skew
// from the last SyncClock.
func (s *Session) RobotNow() time.Time {
	return time.Now().Add(s.ClockSkew)
}

// Disconnect releases the lease and shuts the session down. It is
// idempotent and safe to call from any point after Connect, including
// paths that never reached AcquireLease.
func (s *Session) Disconnect() {
	if s.closed {
		return
	}
	s.closed = true

	log.Info("disconnecting from robot", "host", s.Hostname)
	s.releaseLease()
	s.client.Close()
	log.Info("disconnected")
}

// releaseLease stops the keep-alive loop and returns the lease if held.
func (s *Session) releaseLease() {
	if !s.leaseHeld {
		return
	}

	close(s.keepAliveStop)
	<-s.keepAliveDone

	ctx, cancel := context.WithTimeout(context.Background(), leaseCallTimeout)
	defer cancel()
	if err := s.Lease.Return(ctx, s.lease); err != nil {
		log.Warn("failed to return lease", "error", err)
	} else {
		log.Info("lease released")
	}
	s.leaseHeld = false
}
