// Package main provides the ccdash CLI application.
//
// ccdash reads Claude Code JSONL usage logs and renders a local usage
// dashboard: per-model token totals, estimated costs, and consumption
// measured against a subscription plan's limits.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"
)

// version is set during build time.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes the main application logic.
func run() error {
	// Define global flags.
	configPath := flag.String("config", "", "path to configuration file")
	showVersion := flag.Bool("version", false, "show version information")

	// Parse command.
	flag.Parse()

	// Handle version flag.
	if *showVersion {
		fmt.Printf("ccdash %s\n", version)
		return nil
	}

	// Running without a command renders the default report.
	args := flag.Args()
	if len(args) == 0 {
		return runReportCommand(*configPath, nil)
	}

	command := args[0]

	switch command {
	case "report":
		return runReportCommand(*configPath, args[1:])
	case "watch":
		return runWatchCommand(*configPath, args[1:])
	case "config":
		return runConfigCommand(*configPath, args[1:])
	case "help":
		return showUsage()
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// runReportCommand runs the report command.
func runReportCommand(configPath string, args []string) error {
	// Define report-specific flags.
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	days := fs.Int("days", 0, "reporting window in days (0 uses the configured default)")
	periodName := fs.String("period", "", "preset window (today, week, month, all)")
	plan := fs.String("plan", "", "plan to compare against (pro, max5, max20)")
	format := fs.String("format", "", "output format (dashboard, compact, json)")
	compact := fs.Bool("compact", false, "render the one-line summary")
	dataDir := fs.String("data-dir", "", "Claude Code data directory to scan")
	noCache := fs.Bool("no-cache", false, "parse every file, bypassing the scan cache")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd := &reportCommand{
		days:       *days,
		period:     *periodName,
		plan:       *plan,
		format:     *format,
		compact:    *compact,
		dataDir:    *dataDir,
		noCache:    *noCache,
		configPath: configPath,
	}

	return cmd.Execute()
}

// runWatchCommand runs the watch command.
func runWatchCommand(configPath string, args []string) error {
	// Define watch-specific flags.
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	days := fs.Int("days", 0, "reporting window in days (0 uses the configured default)")
	periodName := fs.String("period", "", "preset window (today, week, month, all)")
	plan := fs.String("plan", "", "plan to compare against (pro, max5, max20)")
	format := fs.String("format", "", "output format (dashboard, compact, json)")
	compact := fs.Bool("compact", false, "render the one-line summary")
	dataDir := fs.String("data-dir", "", "Claude Code data directory to scan")
	noCache := fs.Bool("no-cache", false, "parse every file, bypassing the scan cache")
	interval := fs.Duration("interval", time.Minute, "forced refresh interval between file changes")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd := &watchCommand{
		reportCommand: reportCommand{
			days:       *days,
			period:     *periodName,
			plan:       *plan,
			format:     *format,
			compact:    *compact,
			dataDir:    *dataDir,
			noCache:    *noCache,
			live:       true,
			configPath: configPath,
		},
		interval: *interval,
	}

	return cmd.Execute()
}

// runConfigCommand runs the config command.
func runConfigCommand(configPath string, args []string) error {
	cmd := &configCommand{
		configPath: configPath,
	}
	return cmd.Execute(args)
}

// showUsage displays usage information.
func showUsage() error {
	usage := `ccdash - Claude Code usage dashboard

Usage:
  ccdash [flags] [command] [command flags]

Commands:
  report      Render a usage report (default when no command is given)
  watch       Re-render the report whenever log files change
  config      Configuration management (show, path, init)
  help        Show this help message

Global Flags:
  -config     Path to configuration file
  -version    Show version information

Report Command Flags:
  -days       Reporting window in days (default: 30, 0 covers all records)
  -period     Preset window instead of -days (today, week, month, all)
  -plan       Plan to compare against (pro, max5, max20) (default: pro)
  -format     Output format (dashboard, compact, json) (default: dashboard)
  -compact    Render the one-line summary (with -format json: single-line JSON)
  -data-dir   Claude Code data directory to scan
  -no-cache   Parse every file, bypassing the scan cache

Watch Command Flags:
  Accepts every report flag, plus:
  -interval   Forced refresh interval between file changes (default: 1m)

Examples:
  # Last 30 days dashboard
  ccdash

  # Last 7 days against the max5 plan
  ccdash report -days 7 -plan max5

  # Today only
  ccdash report -period today

  # One line for a status bar
  ccdash report -compact

  # Machine-readable report
  ccdash report -format json

  # Live dashboard, refreshed on log changes
  ccdash watch

  # Configuration management
  ccdash config show
  ccdash config path
  ccdash config init

Version: %s
`

	fmt.Printf(usage, version)
	return nil
}
