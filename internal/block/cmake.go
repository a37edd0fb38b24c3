package block

import (
	"fmt"
	"strings"
)

// Generates cmake invocations.
type CMake struct{}

// Returns the command that creates the build directory and runs cmake.
//
// The install prefix, the caller's options, and the source directory are
// passed through in that order. For in-source builds the command changes
// into the source directory and configures ".".
func (CMake) Configure(cfg DriverConfig) string {
	args := []string{"cmake"}
	if cfg.Prefix != "" {
		args = append(args, "-DCMAKE_INSTALL_PREFIX="+cfg.Prefix)
	}
	args = append(args, cfg.Options...)

	if cfg.BuildDirectory == cfg.SourceDirectory {
		args = append(args, ".")
		return fmt.Sprintf("cd %s && %s%s",
			cfg.SourceDirectory, configurePrefix(cfg), strings.Join(args, " "))
	}

	args = append(args, cfg.SourceDirectory)
	return fmt.Sprintf("mkdir -p %s && cd %s && %s%s",
		cfg.BuildDirectory, cfg.BuildDirectory,
		configurePrefix(cfg), strings.Join(args, " "))
}

// Returns the cmake build command for a target, parallelized across the
// available processors.
func (CMake) Build(cfg DriverConfig, target string) string {
	if target == "" {
		target = "all"
	}
	return fmt.Sprintf("cmake --build %s --target %s -- -j$(nproc)",
		cfg.BuildDirectory, target)
}
