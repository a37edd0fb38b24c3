package block

import "github.com/YousefMohassab/hpc-container-maker/internal/toolchain"

// Build targets understood by [Driver.Build]. The empty target requests the
// default build action.
const (
	TargetCheck   = "check"
	TargetInstall = "install"
)

// Inputs a driver needs to generate its commands. Assembled by the Block;
// drivers treat every field as read-only.
type DriverConfig struct {
	SourceDirectory string   // Absolute source location.
	BuildDirectory  string   // Absolute build location. Equals SourceDirectory for in-source builds.
	Prefix          string   // Install destination. Empty omits the install-prefix option.
	Environment     []string // "KEY=VALUE" assignments prefixed to the configure invocation, in the given order.
	Options         []string // Build-system options, passed through verbatim in the given order.

	Toolchain toolchain.Toolchain // Compiler and flag overrides.
}

// Generates the build-system invocations for one build-system family.
//
// Options and environment assignments pass through unmodified and in their
// original order. Drivers never parse or validate options; they are opaque
// strings whose semantics belong to the underlying build system.
type Driver interface {

	// Returns the command that creates/enters the build directory and
	// configures the build.
	Configure(cfg DriverConfig) string

	// Returns the command for the given build target. An empty target is the
	// default build action; [TargetCheck] and [TargetInstall] select the
	// corresponding build-system invocation.
	Build(cfg DriverConfig, target string) string
}

// Joins environment assignments and toolchain selections into the prefix
// string placed before a configure invocation. Returns "" when there is
// nothing to prefix, otherwise a string with a trailing space.
func configurePrefix(cfg DriverConfig) string {
	env := append([]string{}, cfg.Environment...)
	env = append(env, cfg.Toolchain.Environ()...)
	if len(env) == 0 {
		return ""
	}
	s := ""
	for _, kv := range env {
		s += kv + " "
	}
	return s
}
