package block

import (
	"fmt"
	"strings"
)

// Generates configure/make invocations for autotools-style packages.
type ConfigureMake struct{}

// Returns the command that runs the configure script.
//
// Out-of-source builds create the build directory and invoke the script
// from the source tree (a VPATH build); in-source builds run "./configure"
// in the source directory. The prefix option comes first, then the caller's
// options verbatim.
func (ConfigureMake) Configure(cfg DriverConfig) string {
	var script string
	var cd string
	if cfg.BuildDirectory == cfg.SourceDirectory {
		script = "./configure"
		cd = fmt.Sprintf("cd %s", cfg.SourceDirectory)
	} else {
		script = cfg.SourceDirectory + "/configure"
		cd = fmt.Sprintf("mkdir -p %s && cd %s", cfg.BuildDirectory, cfg.BuildDirectory)
	}

	args := []string{script}
	if cfg.Prefix != "" {
		args = append(args, "--prefix="+cfg.Prefix)
	}
	args = append(args, cfg.Options...)

	return fmt.Sprintf("%s && %s%s", cd, configurePrefix(cfg), strings.Join(args, " "))
}

// Returns the make command for a target, parallelized across the available
// processors. Relies on the shell still being in the build directory from
// the configure command.
func (ConfigureMake) Build(cfg DriverConfig, target string) string {
	if target == "" {
		return "make -j$(nproc)"
	}
	return "make -j$(nproc) " + target
}
