// Stand - minimal Spot demo: connect, power on, stand
//
// Useful as a smoke test of the full session path before trying motion.
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

const standTimeout = 10 * time.Second

func main() {
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	config.Load()

	hostname := flag.Arg(0)
	if hostname == "" {
		hostname = config.Hostname("")
	}
	if hostname == "" {
		fmt.Fprintln(os.Stderr, "Usage: stand [flags] <hostname>")
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
	fmt.Println("🤖 Spot Stand Demo")
	fmt.Printf("Robot: %s\n\n", hostname)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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
		fmt.Println("❌ Robot is estopped! Configure E-Stop first.")
		return 1
	}

	if err := sess.PowerOn(ctx, robot.DefaultPowerOnTimeout); err != nil {
		fmt.Printf("❌ %v\n", err)
		return 1
	}

	walker := movement.NewWalker(sess.Command, movement.ClientStateSource(sess.State), 0.5)
	if err := walker.Stand(ctx, standTimeout); err != nil {
		fmt.Printf("❌ %v\n", err)
		return 1
	}

	fmt.Println("\n✅ Robot is standing.")
	return 0
}
