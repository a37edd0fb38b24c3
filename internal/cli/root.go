package cli

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/YousefMohassab/hpc-container-maker/internal"
)

// Level of the global logger. Main installs a handler reading this before
// Execute adjusts it from the parsed flags.
var LogLevel = new(slog.LevelVar)

// Represents the root command for the hpccm tool.
var RootCmd struct {
	Quiet bool `short:"q" help:"Suppress informational output."`
	Debug bool `short:"d" help:"Enable debug output."`

	Generate GenerateCmd `cmd:"" help:"Generate a Dockerfile from a manifest."`
	Version  VersionCmd  `cmd:"" help:"Show version information."`
}

// Parses arguments, configures logging, and runs the selected subcommand.
func Execute() error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("Generates reproducible multi-stage container build recipes.\n\n"+
			"Reads a YAML manifest describing the packages to build and emits a\n"+
			"Dockerfile with a build stage and a minimal runtime stage."),
		kong.UsageOnError(),
		kong.Vars{
			"version": internal.VersionString(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger()

	return kongCtx.Run()
}

// Adjusts the global log level based on CLI flags and build-time modes.
func configureLogger() {
	if RootCmd.Debug {
		internal.SetDebug(true)
	}
	if RootCmd.Quiet {
		internal.SetQuiet(true)
	}

	switch {
	case internal.IsDebug():
		LogLevel.Set(slog.LevelDebug)
	case internal.IsQuiet():
		LogLevel.Set(slog.LevelWarn)
	default:
		LogLevel.Set(slog.LevelInfo)
	}
}
