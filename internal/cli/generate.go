package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/YousefMohassab/hpc-container-maker/internal/block"
	"github.com/YousefMohassab/hpc-container-maker/internal/instruction"
	"github.com/YousefMohassab/hpc-container-maker/internal/manifest"
	"github.com/YousefMohassab/hpc-container-maker/internal/paths"
	"github.com/YousefMohassab/hpc-container-maker/internal/recipe"
)

// Name of the stage the runtime stage copies installed artifacts from.
const buildStageName = "devel"

// Represents the 'hpccm generate' command.
type GenerateCmd struct {
	File        string `short:"f" default:"hpccm.yaml" help:"Manifest file describing the packages to build." placeholder:"PATH"`
	Output      string `short:"o" help:"Write the Dockerfile to PATH instead of standard output." placeholder:"PATH"`
	SingleStage bool   `help:"Emit only the build stage."`
}

// Executes the generate command.
//
// Loads the manifest (merged over the user defaults file), derives one block
// per package, assembles the build stage and the runtime stage, and renders
// the Dockerfile.
func (c *GenerateCmd) Run(ctx context.Context) error {
	defaults, err := manifest.LoadDefaults(paths.DefaultsFile())
	if err != nil {
		return err
	}

	m, err := manifest.Load(c.File)
	if err != nil {
		return err
	}
	m.ApplyDefaults(defaults)

	if m.Base == "" {
		return fmt.Errorf("%w: no base image (set base in the manifest or the defaults file)",
			manifest.ErrManifest)
	}

	r, err := assemble(m, c.SingleStage)
	if err != nil {
		return err
	}

	if err := c.write(r); err != nil {
		return err
	}

	if cached, err := cacheRecipe(paths.Cache(), r); err != nil {
		slog.Warn("recipe cache write failed", "error", err)
	} else {
		slog.Debug("recipe cached", "path", cached)
	}

	slog.Info("recipe generated",
		"packages", len(m.Packages),
		"digest", r.Digest(),
	)
	return nil
}

// Builds the recipe: a build stage containing every package block in
// manifest order, and a runtime stage projecting each block's installed
// artifacts from it.
func assemble(m *manifest.Manifest, singleStage bool) (*recipe.Recipe, error) {
	platform, err := m.OCIPlatform()
	if err != nil {
		return nil, err
	}

	devel := recipe.NewStage(buildStageName, m.Base)
	devel.SetPlatform(platform)

	blocks := make([]*block.Block, 0, len(m.Packages))
	for _, p := range m.Packages {
		b, err := block.New(p.Spec())
		if err != nil {
			return nil, fmt.Errorf("package %q: %w", p.Name, err)
		}
		slog.Debug("package block derived", "package", p.Name, "source", b.Source())

		devel.Add(b.BuildStage()...)
		blocks = append(blocks, b)
	}

	r := recipe.New()
	r.Add(devel)
	if singleStage {
		finish(devel, m)
		return r, nil
	}

	base := m.RuntimeBase
	if base == "" {
		base = m.Base
	}

	runtime := recipe.NewStage("", base)
	runtime.SetPlatform(platform)
	for _, b := range blocks {
		runtime.Add(b.RuntimeStage(buildStageName)...)
	}
	finish(runtime, m)
	r.Add(runtime)

	return r, nil
}

// Appends the manifest's image metadata (labels, working directory) to the
// final stage.
func finish(s *recipe.Stage, m *manifest.Manifest) {
	var ins []instruction.Instruction
	if len(m.Labels) > 0 {
		ins = append(ins, instruction.Label{Labels: m.Labels})
	}
	if m.Workdir != "" {
		ins = append(ins, instruction.Workdir(m.Workdir))
	}
	s.Add(ins...)
}

// Writes the rendered recipe into the cache directory, keyed by its content
// digest. Returns the cached file path.
func cacheRecipe(dir string, r *recipe.Recipe) (string, error) {
	if err := os.MkdirAll(dir, paths.DefaultDirMode); err != nil {
		return "", err
	}

	path := filepath.Join(dir, r.Digest().Encoded())
	if err := os.WriteFile(path, []byte(r.String()), paths.DefaultFileMode); err != nil {
		return "", err
	}
	return path, nil
}

// Writes the rendered recipe to the output file, or standard output when no
// file is given.
func (c *GenerateCmd) write(r *recipe.Recipe) error {
	if c.Output == "" {
		return r.Render(os.Stdout)
	}

	f, err := os.OpenFile(c.Output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, paths.DefaultFileMode)
	if err != nil {
		return err
	}

	if err := r.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
