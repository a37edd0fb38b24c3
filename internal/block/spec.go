package block

import (
	"github.com/YousefMohassab/hpc-container-maker/internal/toolchain"
)

const (

	// Working directory for source fetch and out-of-tree artifacts.
	workdir = "/var/tmp"

	// Install location used when none is given and an install is performed.
	// Callers are strongly encouraged to use a package-specific prefix
	// instead.
	DefaultPrefix = "/usr/local"

	// Build directory used when none is given.
	defaultBuildDirectory = "build"

	// Library directory (relative to the prefix) used for linker-cache
	// registration when none is given.
	defaultLibdir = "lib"
)

// Requests an in-source build when assigned to [Spec.BuildDirectory].
const InSource = "."

// Describes one package build. A Spec is read once by [New] and never
// modified afterwards.
type Spec struct {

	// Source location. Exactly one of URL or Repository must be set.
	URL        string // Archive URL of the package source.
	Repository string // Git repository of the package source.
	Branch     string // Git branch to clone. Requires Repository.
	Commit     string // Git commit to check out. Requires Repository.
	Recursive  bool   // Initialize and check out submodules. Requires Repository.

	// Source checkout location. Relative paths are resolved against the
	// working directory. Empty derives the location from the source basename.
	Directory string

	// Location for build artifacts, relative to the source directory unless
	// absolute. Empty means "build"; [InSource] builds in the source tree.
	BuildDirectory string

	// Install destination. Empty means [DefaultPrefix] when an install is
	// performed, and no prefix otherwise.
	Prefix string

	// Compiler and flag overrides for the build-system invocation.
	Toolchain toolchain.Toolchain

	// Build-system options, passed through verbatim in the given order.
	Options []string

	// Extra environment set only around the configure invocation. Rendered
	// in sorted key order.
	BuildEnvironment map[string]string

	// Environment exported persistently in the build stage.
	DevelEnvironment map[string]string

	// Environment exported persistently in the runtime stage. Independent of
	// DevelEnvironment; variables are never carried over implicitly.
	RuntimeEnvironment map[string]string

	// Commands run before configuration, in the source directory.
	Preconfigure []string

	// Commands run after install, in the install prefix.
	Postinstall []string

	SkipBuild   bool // Skip the default build step.
	Check       bool // Run the build system's check target.
	SkipInstall bool // Skip the install step.
	Ldconfig    bool // Register the library directory with the dynamic linker cache.

	// Library directory relative to the prefix for linker-cache
	// registration. Empty means "lib".
	Libdir string

	// Extra arguments on the build-stage shell instruction (e.g. cache
	// mount flags). Passed through verbatim.
	RunArguments string

	// Build-system driver. Nil means CMake.
	Driver Driver
}

// Returns a copy of the spec with all defaults applied.
func (s Spec) withDefaults() Spec {
	if s.BuildDirectory == "" {
		s.BuildDirectory = defaultBuildDirectory
	}
	if s.Libdir == "" {
		s.Libdir = defaultLibdir
	}
	if s.Prefix == "" && !s.SkipInstall {
		s.Prefix = DefaultPrefix
	}
	if s.Driver == nil {
		s.Driver = CMake{}
	}
	return s
}
