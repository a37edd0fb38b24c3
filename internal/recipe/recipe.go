package recipe

import (
	"io"
	"strings"

	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/YousefMohassab/hpc-container-maker/internal/instruction"
)

// One build stage: a FROM header followed by ordered instruction groups.
type Stage struct {
	name     string
	image    string
	platform *ocispec.Platform
	groups   [][]instruction.Instruction
}

// Creates a stage from a base image. An empty name leaves the stage
// anonymous.
func NewStage(name, image string) *Stage {
	return &Stage{name: name, image: image}
}

// Sets the target platform rendered on the FROM header.
func (s *Stage) SetPlatform(p *ocispec.Platform) {
	s.platform = p
}

// Appends one instruction group. Empty groups are dropped.
func (s *Stage) Add(ins ...instruction.Instruction) {
	if len(ins) == 0 {
		return
	}
	s.groups = append(s.groups, ins)
}

// Returns the stage name.
func (s *Stage) Name() string {
	return s.name
}

// Renders the stage: the FROM header, then each instruction group separated
// by a blank line.
func (s *Stage) render(b *strings.Builder) {
	from := instruction.From{Image: s.image, Name: s.name, Platform: s.platform}
	b.WriteString(from.Render())
	b.WriteString("\n")

	for _, group := range s.groups {
		b.WriteString("\n")
		for _, ins := range group {
			b.WriteString(ins.Render())
			b.WriteString("\n")
		}
	}
}

// An ordered sequence of stages forming one Dockerfile.
type Recipe struct {
	stages []*Stage
}

// Creates an empty recipe.
func New() *Recipe {
	return &Recipe{}
}

// Appends a stage. Stages render in the order added.
func (r *Recipe) Add(s *Stage) {
	r.stages = append(r.stages, s)
}

// Returns the rendered Dockerfile. The output is byte-identical across
// calls for a fixed recipe.
func (r *Recipe) String() string {
	var b strings.Builder
	for i, s := range r.stages {
		if i > 0 {
			b.WriteString("\n")
		}
		s.render(&b)
	}
	return b.String()
}

// Writes the rendered Dockerfile.
func (r *Recipe) Render(w io.Writer) error {
	_, err := io.WriteString(w, r.String())
	return err
}

// Returns the content digest of the rendered Dockerfile, usable as a cache
// key for recipe-build results.
func (r *Recipe) Digest() digest.Digest {
	return digest.FromString(r.String())
}
