// Package block generates the build and runtime instructions for one
// software package.
//
// A Block is constructed from an immutable Spec describing where the source
// lives, how to configure and build it, and which effects survive into the
// runtime stage. Construction validates the spec, then derives the complete
// ordered shell command list exactly once: fetch, preconfigure, configure,
// build, check, install, postinstall, linker-cache registration, cleanup.
// The command list is never mutated afterwards; emission methods only read
// it.
//
// Each concern is owned by a narrow provider: the downloader resolves the
// source into a fetch command and a source directory, a Driver generates the
// build-system invocations, and small helpers cover linker-cache
// registration, environment exports, and filesystem cleanup. The Block calls
// them in one fixed order, gated by the spec's toggles.
//
// BuildStage returns the full build-stage instructions. RuntimeStage returns
// the minimal projection for a later stage: a copy of the install prefix, an
// optional linker-cache re-registration, and the runtime environment. It
// never re-derives any build work.
//
// For a fixed Spec, repeated emission yields byte-identical instructions.
// Every map feeding emitted text is rendered in sorted key order; this is a
// correctness requirement for reproducible recipes, not a cosmetic one.
package block
