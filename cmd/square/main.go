// Square - walk Spot in a closed square path
//
// Connects to the robot, authenticates, acquires the lease, powers on,
// stands, and walks a square of the given side length before returning to
// the start.
//
// Usage:
//
//	square [flags] <hostname>
//	square --side-length 2.0 --velocity 0.3 192.168.80.3
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/teslashibe/go-spot/internal/config"
	"github.com/teslashibe/go-spot/internal/log"
	"github.com/teslashibe/go-spot/pkg/movement"
	"github.com/teslashibe/go-spot/pkg/robot"
)

const (
	totalTime    = 20 * time.Second
	standTimeout = 10 * time.Second
	maxVelocity  = 2.0
)

func main() {
	sideLength := flag.Float64("side-length", 1.0, "Length of each side of the square in meters")
	velocity := flag.Float64("velocity", 0.5, "Maximum walking velocity in m/s")
	batch := flag.Bool("batch", false, "Submit the square as a single trajectory command")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	config.Load()

	hostname := flag.Arg(0)
	if hostname == "" {
		hostname = config.Hostname("")
	}
	if hostname == "" {
		fmt.Fprintln(os.Stderr, "Usage: square [flags] <hostname>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *sideLength <= 0 {
		fmt.Fprintln(os.Stderr, "Error: side-length must be positive")
		os.Exit(1)
	}
	if *velocity <= 0 || *velocity > maxVelocity {
		fmt.Fprintf(os.Stderr, "Error: velocity must be between 0 and %.1f m/s\n", maxVelocity)
		os.Exit(1)
	}

	level := "info"
	if *verbose {
		level = "debug"
	}
	log.Init(level)

	os.Exit(run(hostname, *sideLength, *velocity, *batch))
}

func run(hostname string, sideLength, velocity float64, batch bool) int {
	fmt.Println("🤖 Spot Square Path")
	fmt.Println("===================")
	fmt.Printf("Robot: %s\n", hostname)
	fmt.Printf("Side:  %.2fm  Velocity: %.2fm/s\n\n", sideLength, velocity)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle Ctrl+C once: cancel everything and fall through to cleanup.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n👋 Interrupted, cleaning up...")
		cancel()
	}()

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

	estopped, err := sess.IsEstopped(ctx)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return 1
	}
	if estopped {
		fmt.Println("❌ Robot is estopped! Configure E-Stop before running this example.")
		return 1
	}

	if err := sess.PowerOn(ctx, robot.DefaultPowerOnTimeout); err != nil {
		fmt.Printf("❌ %v\n", err)
		return 1
	}
	if err := sess.SyncClock(ctx); err != nil {
		fmt.Printf("❌ %v\n", err)
		return 1
	}

	walker := movement.NewWalker(sess.Command, movement.ClientStateSource(sess.State), velocity)
	walker.ClockSkew = sess.ClockSkew

	if err := walker.Stand(ctx, standTimeout); err != nil {
		fmt.Printf("❌ %v\n", err)
		return 1
	}

	pose, err := walker.CurrentPose(ctx)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return 1
	}

	plan := movement.PlanSquare(pose, sideLength, totalTime)
	strategy := movement.Incremental
	if batch {
		strategy = movement.Batched
	}

	fmt.Printf("🚶 Walking square (%s)...\n", strategy)
	if err := walker.ExecutePlan(ctx, plan, strategy); err != nil {
		fmt.Printf("❌ %v\n", err)
		return 1
	}

	fmt.Println("\n✅ Square path complete!")
	return 0
}
