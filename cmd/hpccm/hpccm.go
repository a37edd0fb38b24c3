package main

import (
	"log/slog"
	"os"

	"github.com/YousefMohassab/hpc-container-maker/internal"
	"github.com/YousefMohassab/hpc-container-maker/internal/cli"
)

// The entry point for the hpccm recipe generator.
//
// Initializes logging and executes the root command. If any error occurs
// during execution, it exits with a non-zero code.
func main() {
	slog.SetDefault(logger())

	slog.Debug("build", "version", internal.VersionString())

	if err := cli.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// Creates the logger seeded from build-time linker flags.
//
// The level is reconfigured after flag parsing via cli.Execute. Logs go to
// standard error so generated recipes can stream to standard output.
func logger() *slog.Logger {
	if internal.IsDebug() {
		cli.LogLevel.Set(slog.LevelDebug)
	} else if internal.IsQuiet() {
		cli.LogLevel.Set(slog.LevelWarn)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cli.LogLevel})
	return slog.New(handler).WithGroup(internal.Name)
}
