package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/enimda-mcp/internal/config"
	"github.com/ironsheep/enimda-mcp/internal/server"
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
			fmt.Printf("enimda-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("enimda-mcp - MCP server for image border detection")
			fmt.Println()
			fmt.Println("Usage: enimda-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  ENIMDA_CONFIG=/path/config.json    Scan tuning file")
			fmt.Println("  ENIMDA_LOG_LEVEL=debug             Enable debug logging")
			fmt.Println("  ENIMDA_RESIZE=300                  Analysis thumbnail size (0 = full resolution)")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client.")
			return
		}
	}

	// Logs go to stderr (stdout is for MCP protocol)
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	cfg, err := config.FromEnv()
	if err != nil {
		logrus.Fatalf("Configuration error: %v", err)
	}
	logrus.SetLevel(cfg.GetLogLevel())
	logrus.Debugf("ENIMDA MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logrus.StandardLogger())
	if err := srv.Run(ctx); err != nil && err != context.Canceled {
		logrus.Fatalf("Server error: %v", err)
	}
}
