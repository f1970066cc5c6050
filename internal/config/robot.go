// Package config provides configuration helpers for go-spot commands.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Default robot configuration.
const (
	DefaultRobotPort = "8000"
	DefaultUser      = "admin"
	DefaultPass      = "password"
)

// Load reads a .env file from the working directory if one exists.
// Missing files are not an error; commands call this before reading env vars.
func Load() {
	_ = godotenv.Load()
}

// Hostname returns the robot hostname from SPOT_HOSTNAME env var.
// Falls back to the provided default if not set.
func Hostname(defaultHost string) string {
	if host := os.Getenv("SPOT_HOSTNAME"); host != "" {
		return host
	}
	return defaultHost
}

// User returns the robot username from SPOT_USER env var or default.
func User() string {
	if user := os.Getenv("SPOT_USER"); user != "" {
		return user
	}
	return DefaultUser
}

// Pass returns the robot password from SPOT_PASS env var or default.
func Pass() string {
	if pass := os.Getenv("SPOT_PASS"); pass != "" {
		return pass
	}
	return DefaultPass
}

// APIURL returns the robot HTTP API URL. Hostnames may carry an explicit
// port; otherwise the default daemon port is used.
func APIURL(hostname string) string {
	return fmt.Sprintf("http://%s", hostPort(hostname))
}

// StreamURL returns the robot WebSocket API URL.
func StreamURL(hostname string) string {
	return fmt.Sprintf("ws://%s", hostPort(hostname))
}

func hostPort(hostname string) string {
	if strings.Contains(hostname, ":") {
		return hostname
	}
	return hostname + ":" + DefaultRobotPort
}
