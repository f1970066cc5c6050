// Poweroff - safely power down a Spot robot's motors
//
// The robot sits before cutting motor power. Handy after a demo leaves the
// robot standing.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/teslashibe/go-spot/internal/config"
	"github.com/teslashibe/go-spot/internal/log"
	"github.com/teslashibe/go-spot/pkg/robot"
)

const powerOffTimeout = 30 * time.Second

func main() {
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	config.Load()

	hostname := flag.Arg(0)
	if hostname == "" {
		hostname = config.Hostname("")
	}
	if hostname == "" {
		fmt.Fprintln(os.Stderr, "Usage: poweroff [flags] <hostname>")
		os.Exit(1)
	}

	level := "info"
	if *verbose {
		level = "debug"
	}
	log.Init(level)

	os.Exit(run(hostname))
}

func run(hostname string) int {
	fmt.Println("🔌 Spot Power Off")
	fmt.Printf("Robot: %s\n\n", hostname)

	ctx := context.Background()

	sess, err := robot.Connect(hostname)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return 1
	}
	defer sess.Disconnect()

	if err := sess.Authenticate(ctx, config.User(), config.Pass()); err != nil {
		fmt.Printf("❌ %v\n", err)
		return 1
	}
	if err := sess.SetupClients(); err != nil {
		fmt.Printf("❌ %v\n", err)
		return 1
	}
	if err := sess.AcquireLease(ctx); err != nil {
		fmt.Printf("❌ %v\n", err)
		return 1
	}

	if err := sess.PowerOff(ctx, powerOffTimeout); err != nil {
		fmt.Printf("❌ %v\n", err)
		return 1
	}

	fmt.Println("\n✅ Motors powered off.")
	return 0
}
