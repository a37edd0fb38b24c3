// Package instruction defines the primitive recipe instructions and their
// Dockerfile rendering.
//
// An instruction is a small immutable value (a comment, a shell invocation,
// an environment export, a cross-stage copy, a stage header) constructed by
// higher layers and rendered to concrete Dockerfile syntax on demand.
// Rendering is a pure string derivation: for a fixed instruction value the
// output is byte-identical across calls, which the recipe layer relies on
// for reproducible output and content digests. Environment variables and
// labels render in sorted key order for the same reason.
package instruction
