package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mamaar/ngessentials/internal/cli"
	"github.com/mamaar/ngessentials/internal/mcp"
	"github.com/mamaar/ngessentials/pkg/essentials"
	"github.com/mamaar/ngessentials/pkg/versions"
)

func main() {
	var (
		portFlag     = flag.Int("port", 0, "TCP port to listen on (0 for stdio)")
		debugFlag    = flag.Bool("debug", false, "Enable debug logging")
		versionsFlag = flag.String("versions", "", "YAML file overriding the pinned versions")
		versionFlag  = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Printf("ng-essentials-mcp v%s\n", cli.Version)
		return
	}

	level := slog.LevelInfo
	if *debugFlag {
		level = slog.LevelDebug
	}
	// stdout carries the protocol; logs go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	table := versions.Default()
	if *versionsFlag != "" {
		loaded, err := versions.Load(*versionsFlag)
		if err != nil {
			logger.Error("loading versions", "err", err)
			os.Exit(1)
		}
		table = loaded
	}

	state := mcp.NewServer(essentials.NewEngine(table, nil, logger), logger)
	mcpServer := state.MCPServer("ng-essentials-mcp", cli.Version)

	if *portFlag == 0 {
		if err := server.ServeStdio(mcpServer); err != nil {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
		return
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer)
	logger.Info("starting HTTP server", "port", *portFlag)
	if err := httpServer.Start(fmt.Sprintf(":%d", *portFlag)); err != nil {
		logger.Error("HTTP server failed", "err", err)
		os.Exit(1)
	}
}
