// Package recipe assembles instructions into stages and renders a complete
// multi-stage Dockerfile.
//
// A recipe is an ordered sequence of stages. Each stage opens with a FROM
// header (base image, optional stage name and target platform) followed by
// instruction groups; groups render separated by blank lines so each
// package's contribution stays readable in the output.
//
// Rendering is deterministic: for a fixed recipe the output is
// byte-identical across calls. The content digest of the rendered text
// serves as a cache key for upstream recipe-build results.
package recipe
