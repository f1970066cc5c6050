package config

import "testing"

func TestAPIURL(t *testing.T) {
	if got := APIURL("spot.local"); got != "http://spot.local:8000" {
		t.Errorf("APIURL = %q", got)
	}
	// Explicit ports are preserved.
	if got := APIURL("127.0.0.1:9999"); got != "http://127.0.0.1:9999" {
		t.Errorf("APIURL with port = %q", got)
	}
	if got := StreamURL("spot.local"); got != "ws://spot.local:8000" {
		t.Errorf("StreamURL = %q", got)
	}
}

func TestCredentialDefaults(t *testing.T) {
	t.Setenv("SPOT_USER", "")
	t.Setenv("SPOT_PASS", "")

	if got := User(); got != DefaultUser {
		t.Errorf("User = %q, want %q", got, DefaultUser)
	}
	if got := Pass(); got != DefaultPass {
		t.Errorf("Pass = %q, want %q", got, DefaultPass)
	}

	t.Setenv("SPOT_USER", "operator")
	if got := User(); got != "operator" {
		t.Errorf("User = %q, want operator", got)
	}
}
