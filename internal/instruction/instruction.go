package instruction

import (
	"fmt"
	"sort"
	"strings"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// Rendered by every recipe instruction.
type Instruction interface {

	// Returns the Dockerfile representation of the instruction. The result
	// is deterministic for a fixed instruction value.
	Render() string
}

// A comment line. Multi-line text renders as one comment line per line.
type Comment string

// Renders the comment with a "# " prefix on every line.
func (c Comment) Render() string {
	lines := strings.Split(string(c), "\n")
	for i, line := range lines {
		lines[i] = "# " + line
	}
	return strings.Join(lines, "\n")
}

// A shell invocation executing an ordered list of commands.
type Shell struct {
	Commands  []string // Commands chained with "&&" in the given order.
	Arguments string   // Extra RUN arguments (e.g. mount flags). Optional.
}

// Renders the commands as a single RUN instruction.
//
// Commands are chained with "&&" and continued across lines so the emitted
// Dockerfile stays readable while executing in one shell.
func (s Shell) Render() string {
	var b strings.Builder
	b.WriteString("RUN ")
	if s.Arguments != "" {
		b.WriteString(s.Arguments)
		b.WriteString(" ")
	}
	b.WriteString(strings.Join(s.Commands, " && \\\n    "))
	return b.String()
}

// A persistent environment variable export.
type Environment struct {
	Variables map[string]string
}

// Renders the variables as a single ENV instruction in sorted key order.
//
// Values containing whitespace are double-quoted.
func (e Environment) Render() string {
	keys := make([]string, 0, len(e.Variables))
	for k := range e.Variables {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+quote(e.Variables[k]))
	}
	return "ENV " + strings.Join(pairs, " \\\n    ")
}

// A copy of files from an earlier build stage into the current stage.
type Copy struct {
	From   string // Source stage name or index.
	Source string // Path in the source stage.
	Dest   string // Path in the current stage.
}

// Renders the cross-stage copy as a COPY instruction.
func (c Copy) Render() string {
	return fmt.Sprintf("COPY --from=%s %s %s", c.From, c.Source, c.Dest)
}

// A stage header naming the base image.
type From struct {
	Image    string            // Base image reference.
	Name     string            // Stage name. Optional.
	Platform *ocispec.Platform // Target platform. Optional.
}

// Renders the stage header as a FROM instruction.
func (f From) Render() string {
	var b strings.Builder
	b.WriteString("FROM ")
	if f.Platform != nil {
		b.WriteString("--platform=")
		b.WriteString(FormatPlatform(*f.Platform))
		b.WriteString(" ")
	}
	b.WriteString(f.Image)
	if f.Name != "" {
		b.WriteString(" AS ")
		b.WriteString(f.Name)
	}
	return b.String()
}

// Image metadata labels.
type Label struct {
	Labels map[string]string
}

// Renders the labels as a single LABEL instruction in sorted key order.
func (l Label) Render() string {
	keys := make([]string, 0, len(l.Labels))
	for k := range l.Labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+quote(l.Labels[k]))
	}
	return "LABEL " + strings.Join(pairs, " \\\n    ")
}

// The working directory for subsequent instructions.
type Workdir string

// Renders the working directory as a WORKDIR instruction.
func (w Workdir) Render() string {
	return "WORKDIR " + string(w)
}

// Formats an OCI platform as "os/arch" or "os/arch/variant".
func FormatPlatform(p ocispec.Platform) string {
	s := p.OS + "/" + p.Architecture
	if p.Variant != "" {
		s += "/" + p.Variant
	}
	return s
}

// Double-quotes a value when it contains whitespace.
func quote(v string) string {
	if strings.ContainsAny(v, " \t") {
		return `"` + v + `"`
	}
	return v
}
