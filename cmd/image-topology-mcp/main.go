package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/image-topology-mcp/internal/config"
	"github.com/ironsheep/image-topology-mcp/internal/server"
	"github.com/ironsheep/image-topology-mcp/internal/topology"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-topology-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-topology-mcp - MCP server for binary image topology")
			fmt.Println()
			fmt.Println("Usage: image-topology-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  IMAGE_TOPOLOGY_LOG_LEVEL=debug         Enable debug logging")
			fmt.Println("  IMAGE_TOPOLOGY_LOG_LEVEL=trace         Also log every thinning pass")
			fmt.Println("  IMAGE_TOPOLOGY_CONFIG=/path/cfg.json   Load default tool parameters")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client.")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	switch os.Getenv("IMAGE_TOPOLOGY_LOG_LEVEL") {
	case "debug":
		topology.SetLogWriters(os.Stderr, os.Stderr, nil)
		log.Printf("Image Topology MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	case "trace":
		topology.SetLogWriters(os.Stderr, os.Stderr, os.Stderr)
		log.Printf("Image Topology MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	default:
		topology.SetLogWriters(os.Stderr, nil, nil)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
