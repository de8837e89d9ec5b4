package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/periodize/internal/engine"
	periodmcp "github.com/claude/periodize/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	remote := flag.String("remote", "", "periodize server URL; empty runs the engine in-process")
	apiKey := flag.String("api-key", os.Getenv("PERIODIZE_AUTH_API_KEY"), "API key for -remote")
	registryPath := flag.String("registry", "", "registry YAML file (default: built-in)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("periodize-mcp", Version)
		return
	}

	// stdout carries the MCP protocol; logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var planner periodmcp.Planner
	if *remote != "" {
		planner = periodmcp.NewHTTPClient(*remote, *apiKey)
		log.Info("remote mode", "server", *remote)
	} else {
		eng, err := engine.Open(*registryPath, engine.Options{})
		if err != nil {
			log.Error("failed to load registry", "path", *registryPath, "error", err)
			os.Exit(1)
		}
		planner = periodmcp.NewLocal(eng)
	}

	s := periodmcp.New(planner, Version, log)
	if err := mcpserver.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
