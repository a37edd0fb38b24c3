// Package manifest loads and validates the YAML description of a recipe:
// base images, an optional target platform, and the ordered list of packages
// to build.
//
// A manifest converts into one block spec per package. Validation happens at
// load time; a manifest that loads successfully always converts into valid
// specs or fails fast with a configuration error from the block layer.
//
// An optional user defaults file (see the paths package) supplies fallback
// base images and platform for manifests that omit them.
package manifest
