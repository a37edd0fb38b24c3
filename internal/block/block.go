package block

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/YousefMohassab/hpc-container-maker/internal/instruction"
)

// One fully-derived package build. Created by [New] and immutable
// afterwards: the command list is assembled exactly once, and the emission
// methods only read it.
type Block struct {
	spec     Spec
	source   string // URL or repository, for the leading comment.
	srcDir   string
	buildDir string
	commands []string
	env      exporter
}

// Validates the spec, applies defaults, and derives the complete ordered
// command list.
//
// The command order is fixed and independent of the order fields were set:
// fetch, preconfigure (in the source directory), configure, build, check,
// install, postinstall (in the prefix), linker-cache registration, cleanup.
// Validation failures surface here; nothing is ever emitted from an invalid
// spec.
func New(spec Spec) (*Block, error) {
	dl := newDownloader(spec)
	if err := dl.validate(); err != nil {
		return nil, err
	}

	spec = spec.withDefaults()

	if spec.Ldconfig && spec.Prefix == "" {
		return nil, fmt.Errorf("%w: ldconfig requires an install prefix", ErrUnsupported)
	}
	if spec.Ldconfig && strings.TrimSpace(spec.Libdir) == "" {
		return nil, fmt.Errorf("%w: ldconfig requires a library directory", ErrUnsupported)
	}

	b := &Block{
		spec:   spec,
		source: dl.url,
		env: exporter{
			devel:   spec.DevelEnvironment,
			runtime: spec.RuntimeEnvironment,
		},
	}
	if b.source == "" {
		b.source = dl.repository
	}

	b.srcDir = resolveSourceDirectory(spec, dl)
	b.buildDir = resolveBuildDirectory(spec, b.srcDir)
	b.assemble(dl)

	return b, nil
}

// Fills in the command list. Called exactly once, from [New].
func (b *Block) assemble(dl downloader) {
	spec := b.spec

	// Get the source.
	b.commands = append(b.commands, dl.fetch(workdir))

	// Preconfigure commands run from the source directory.
	if len(spec.Preconfigure) > 0 {
		b.commands = append(b.commands, fmt.Sprintf("cd %s", b.srcDir))
		b.commands = append(b.commands, spec.Preconfigure...)
	}

	// Configure.
	cfg := DriverConfig{
		SourceDirectory: b.srcDir,
		BuildDirectory:  b.buildDir,
		Prefix:          spec.Prefix,
		Environment:     sortedAssignments(spec.BuildEnvironment),
		Options:         spec.Options,
		Toolchain:       spec.Toolchain,
	}
	b.commands = append(b.commands, spec.Driver.Configure(cfg))

	// Build, check, install.
	if !spec.SkipBuild {
		b.commands = append(b.commands, spec.Driver.Build(cfg, ""))
	}
	if spec.Check {
		b.commands = append(b.commands, spec.Driver.Build(cfg, TargetCheck))
	}
	if !spec.SkipInstall {
		b.commands = append(b.commands, spec.Driver.Build(cfg, TargetInstall))
	}

	// Postinstall commands run from the install prefix.
	if len(spec.Postinstall) > 0 {
		b.commands = append(b.commands, fmt.Sprintf("cd %s", spec.Prefix))
		b.commands = append(b.commands, spec.Postinstall...)
	}

	// Register the library directory with the dynamic linker cache.
	if spec.Ldconfig {
		b.commands = append(b.commands, ldcacheStep(path.Join(spec.Prefix, spec.Libdir)))
	}

	b.commands = append(b.commands, cleanupStep(b.cleanupPaths(dl)))
}

// Returns the paths the cleanup step removes: the source directory, the
// downloaded archive (archive sources only), and the build directory only
// when it is absolute. A relative build directory is assumed to be nested
// under the source tree and is covered by removing the source directory.
// Known sharp edge: a relative build directory that is NOT nested under the
// source tree is silently left behind.
func (b *Block) cleanupPaths(dl downloader) []string {
	paths := []string{b.srcDir}
	if dl.url != "" {
		paths = append(paths, path.Join(workdir, path.Base(dl.url)))
	}
	if path.IsAbs(b.spec.BuildDirectory) {
		paths = append(paths, b.spec.BuildDirectory)
	}
	return paths
}

// Returns the build-stage instructions: a comment naming the source, one
// shell instruction carrying the full command list, and the development
// environment export when non-empty.
func (b *Block) BuildStage() []instruction.Instruction {
	ins := []instruction.Instruction{
		instruction.Comment(b.source),
		instruction.Shell{Commands: b.commands, Arguments: b.spec.RunArguments},
	}
	if env := b.env.environment(false); len(env) > 0 {
		ins = append(ins, instruction.Environment{Variables: env})
	}
	return ins
}

// Returns the runtime-stage instructions: a copy of the install prefix from
// the named source stage, a linker-cache re-registration when requested, and
// the runtime environment export when non-empty.
//
// Returns nil when the block has no install prefix; such a build has no
// runtime projection. The projection is a pure function of the spec and may
// be emitted any number of times.
func (b *Block) RuntimeStage(from string) []instruction.Instruction {
	if b.spec.Prefix == "" {
		return nil
	}

	ins := []instruction.Instruction{
		instruction.Comment(b.source),
		instruction.Copy{From: from, Source: b.spec.Prefix, Dest: b.spec.Prefix},
	}
	if b.spec.Ldconfig {
		ins = append(ins, instruction.Shell{
			Commands: []string{ldcacheStep(path.Join(b.spec.Prefix, b.spec.Libdir))},
		})
	}
	if env := b.env.environment(true); len(env) > 0 {
		ins = append(ins, instruction.Environment{Variables: env})
	}
	return ins
}

// Returns the install prefix, or "" when the build installs to no fixed
// location.
func (b *Block) Prefix() string {
	return b.spec.Prefix
}

// Returns the source URL or repository the block builds from.
func (b *Block) Source() string {
	return b.source
}

// Resolves the source checkout location: an explicit directory (joined to
// the working directory when relative), or the location the fetch command
// leaves the source in.
func resolveSourceDirectory(spec Spec, dl downloader) string {
	if spec.Directory != "" {
		if path.IsAbs(spec.Directory) {
			return spec.Directory
		}
		return path.Join(workdir, spec.Directory)
	}
	return dl.sourceDirectory(workdir)
}

// Resolves the build location: the source directory for in-source builds,
// an absolute directory verbatim, or a directory nested under the source
// tree otherwise.
func resolveBuildDirectory(spec Spec, srcDir string) string {
	if spec.BuildDirectory == InSource {
		return srcDir
	}
	if path.IsAbs(spec.BuildDirectory) {
		return spec.BuildDirectory
	}
	return path.Join(srcDir, spec.BuildDirectory)
}

// Renders a mapping as "KEY=VALUE" assignments in sorted key order.
// Mapping iteration order is not deterministic, and these assignments feed
// emitted text.
func sortedAssignments(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+m[k])
	}
	return out
}
