package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dooshek/celebcast/internal/config"
	"github.com/dooshek/celebcast/internal/dbus"
	"github.com/dooshek/celebcast/internal/fileops"
	"github.com/dooshek/celebcast/internal/logger"
	"github.com/dooshek/celebcast/internal/mcpserver"
	"github.com/dooshek/celebcast/internal/notification"
	"github.com/dooshek/celebcast/internal/state"
	"github.com/dooshek/celebcast/internal/stats"
	"github.com/dooshek/celebcast/internal/studio"
	"github.com/dooshek/celebcast/internal/types"
	"github.com/dooshek/celebcast/internal/wsapi"
)

const version = "0.1.0"

func init() {
	// Set custom usage message to show -- prefix
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage of %s:\n", os.Args[0])
		flag.VisitAll(func(f *flag.Flag) {
			fmt.Fprintf(out, "  --%s", f.Name)
			name, usage := flag.UnquoteUsage(f)
			if len(name) > 0 {
				fmt.Fprintf(out, " %s", name)
			}
			fmt.Fprintf(out, "\n    \t%s", usage)
			if f.DefValue != "" && f.DefValue != "false" {
				fmt.Fprintf(out, " (default %q)", f.DefValue)
			}
			fmt.Fprintf(out, "\n")
		})
	}
}

func main() {
	runWizard := flag.Bool("wizard", false, "Run the configuration wizard")
	daemon := flag.Bool("daemon", false, "Run as a D-Bus service")
	listen := flag.String("listen", "", "WebSocket listen address for daemon mode, e.g. 127.0.0.1:8765")
	mcpMode := flag.Bool("mcp", false, "Run as an MCP server over stdio")
	logLevel := flag.String("log-level", "info", "Set log level (debug|info|warn|error)")
	logFilename := flag.String("log-filename", "", "Log to file instead of stdout")
	flag.Parse()

	logger.SetLevel(*logLevel)
	if *mcpMode {
		// stdout carries the protocol
		logger.SetOutput(os.Stderr)
	}
	if *logFilename != "" {
		if err := logger.SetOutputFile(*logFilename); err != nil {
			fmt.Printf("Error setting log file: %v\n", err)
			os.Exit(1)
		}
		defer logger.CloseLogFile()
	}

	if *runWizard {
		if err := config.RunWizard(); err != nil {
			logger.Error("Error running wizard", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	cfg, err := loadConfig(!*mcpMode)
	if err != nil {
		logger.Error("Error loading config", err)
		os.Exit(1)
	}
	if *listen != "" {
		cfg.Server.Listen = *listen
	}

	state.Init(cfg)

	ctrl, player, err := buildStudio(state.Get())
	if err != nil {
		logger.Error("Failed to initialize studio", err)
		logger.Info("💡 Note: You can run `celebcast --wizard` to configure API keys and providers")
		os.Exit(1)
	}
	defer player.Close()

	fileOps, err := fileops.NewDefaultFileOps()
	if err != nil {
		logger.Error("Failed to initialize file operations", err)
		os.Exit(1)
	}
	statsManager := stats.NewStatsManager(fileOps.GetConfigDir())
	ctrl.SetUsageRecorder(statsManager)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Infof("Received signal %v, shutting down...", sig)
		ctrl.StopPlayback()
		cancel()
		if !*mcpMode && !*daemon {
			// the REPL is blocked reading stdin
			player.Close()
			os.Exit(0)
		}
	}()

	switch {
	case *mcpMode:
		err = runMCP(ctx, ctrl)
	case *daemon:
		err = runDaemon(ctx, ctrl, fileOps, statsManager, cfg.Server.Listen)
	default:
		err = runREPL(ctx, ctrl, os.Stdin, os.Stdout)
	}

	ctrl.StopPlayback()
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("celebcast exited with error", err)
		player.Close()
		os.Exit(1)
	}
}

// loadConfig reads the config file and environment. When no key is
// available and interactive is set the wizard runs first.
func loadConfig(interactive bool) (*types.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &types.Config{}
	}
	config.ApplyEnv(cfg)

	if config.HasAnyKey(cfg) || !interactive {
		return cfg, nil
	}

	logger.Info("No API key found. Running setup wizard...")
	if err := config.RunWizard(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	cfg, err = config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &types.Config{}
	}
	config.ApplyEnv(cfg)
	return cfg, nil
}

func runMCP(ctx context.Context, ctrl *studio.Controller) error {
	server := mcpserver.NewServer(mcpserver.Config{
		ServerName:    "celebcast",
		ServerVersion: version,
	}, ctrl)

	logger.Info("📡 MCP server running on stdio")
	return server.Run(ctx)
}

func runDaemon(ctx context.Context, ctrl *studio.Controller, fileOps fileops.FileOps, statsManager *stats.StatsManager, listen string) error {
	if err := fileOps.CheckPID(); err != nil {
		if errors.Is(err, fileops.ErrProcessAlreadyRunning) {
			return fmt.Errorf("another instance of celebcast is already running: %w", err)
		}
		logger.Warnf("Could not check PID file: %v", err)
	}
	if err := fileOps.SavePID(); err != nil {
		return fmt.Errorf("failed to save PID file: %w", err)
	}
	defer fileOps.HandleExit()

	notifier := notification.New()

	server := dbus.NewServer(ctrl, notifier, statsManager)
	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start D-Bus service: %w", err)
	}
	defer server.Close()

	if listen != "" {
		ws := wsapi.NewServer(ctrl)
		go func() {
			if err := ws.Run(ctx, listen); err != nil {
				logger.Error("WebSocket endpoint failed", err)
			}
		}()
	}

	if err := notifier.Notify("📺 Celebcast started", "Studio is ready"); err != nil {
		logger.Warn("Could not send notification")
	}

	<-ctx.Done()
	return nil
}
