package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/chess10kp/tuicher/internal/config"
	"github.com/chess10kp/tuicher/internal/core"
)

var (
	socketPath = config.DefaultConfig.SocketPath
)

func init() {
	// Try to load config to get custom socket path
	cfg, err := config.LoadConfig("~/.config/tuicher/config.toml")
	if err == nil {
		cfg.ApplyEnv()
		if cfg.SocketPath != "" {
			socketPath = cfg.SocketPath
		}
	}
}

func main() {
	command := "show"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "show":
		if err := core.Ping(socketPath, 2*time.Second); err != nil {
			log.Fatalf("Failed to reach tuicher: %v\nIs tuicher running?", err)
		}
		log.Printf("Activation sent to %s", socketPath)
	case "help", "-h", "--help":
		printUsage()
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("tuicherclient - Raise a running tuicher instance")
	fmt.Println()
	fmt.Println("Usage: tuicherclient [command]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  show        Ask the running instance to show its window (default)")
	fmt.Println("  help        Show this help message")
	fmt.Println()
	fmt.Println("Socket path:", socketPath)
}
