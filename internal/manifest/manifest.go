package manifest

import (
	"errors"
	"fmt"
	"os"
	"strings"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"gopkg.in/yaml.v2"

	"github.com/YousefMohassab/hpc-container-maker/internal/block"
	"github.com/YousefMohassab/hpc-container-maker/internal/toolchain"
)

var ErrManifest = errors.New("invalid manifest")

// Build systems a package may select.
const (
	BuildSystemCMake     = "cmake"
	BuildSystemAutotools = "autotools"
)

// Describes one recipe: base images, target platform, and the packages to
// build, in order.
type Manifest struct {
	Base        string            `yaml:"base"`         // Base image for the build stage.
	RuntimeBase string            `yaml:"runtime_base"` // Base image for the runtime stage. Empty uses Base.
	Platform    string            `yaml:"platform"`     // Target platform ("os/arch[/variant]"). Optional.
	Labels      map[string]string `yaml:"labels"`       // Metadata labels on the final stage. Optional.
	Workdir     string            `yaml:"workdir"`      // Working directory of the final stage. Optional.
	Packages    []Package         `yaml:"packages"`
}

// Describes one package build in a manifest.
type Package struct {
	Name        string `yaml:"name"`
	BuildSystem string `yaml:"build_system"` // "cmake" (default) or "autotools".

	URL        string `yaml:"url"`
	Repository string `yaml:"repository"`
	Branch     string `yaml:"branch"`
	Commit     string `yaml:"commit"`
	Recursive  bool   `yaml:"recursive"`

	Directory      string `yaml:"directory"`
	BuildDirectory string `yaml:"build_directory"`
	Prefix         string `yaml:"prefix"`

	Options            []string          `yaml:"options"`
	BuildEnvironment   map[string]string `yaml:"build_environment"`
	DevelEnvironment   map[string]string `yaml:"devel_environment"`
	RuntimeEnvironment map[string]string `yaml:"runtime_environment"`

	Preconfigure []string `yaml:"preconfigure"`
	Postinstall  []string `yaml:"postinstall"`

	SkipBuild    bool   `yaml:"skip_build"`
	Check        bool   `yaml:"check"`
	SkipInstall  bool   `yaml:"skip_install"`
	Ldconfig     bool   `yaml:"ldconfig"`
	Libdir       string `yaml:"libdir"`
	RunArguments string `yaml:"run_arguments"`

	Toolchain Toolchain `yaml:"toolchain"`
}

// Compiler and flag selections for a package.
type Toolchain struct {
	CC       string `yaml:"cc"`
	CXX      string `yaml:"cxx"`
	FC       string `yaml:"fc"`
	F77      string `yaml:"f77"`
	CFLAGS   string `yaml:"cflags"`
	CPPFLAGS string `yaml:"cppflags"`
	CXXFLAGS string `yaml:"cxxflags"`
	FFLAGS   string `yaml:"fflags"`
	LDFLAGS  string `yaml:"ldflags"`
}

// Fallback values merged into manifests that omit them. Read from the user
// defaults file.
type Defaults struct {
	Base        string `yaml:"base"`
	RuntimeBase string `yaml:"runtime_base"`
	Platform    string `yaml:"platform"`
}

// Reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifest, err)
	}

	var m Manifest
	if err := yaml.UnmarshalStrict(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifest, err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Reads the user defaults file. A missing file yields empty defaults.
func LoadDefaults(path string) (Defaults, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Defaults{}, nil
	}
	if err != nil {
		return Defaults{}, fmt.Errorf("%w: %v", ErrManifest, err)
	}

	var d Defaults
	if err := yaml.UnmarshalStrict(data, &d); err != nil {
		return Defaults{}, fmt.Errorf("%w: %v", ErrManifest, err)
	}
	return d, nil
}

// Fills empty manifest fields from the defaults.
func (m *Manifest) ApplyDefaults(d Defaults) {
	if m.Base == "" {
		m.Base = d.Base
	}
	if m.RuntimeBase == "" {
		m.RuntimeBase = d.RuntimeBase
	}
	if m.Platform == "" {
		m.Platform = d.Platform
	}
}

// Checks the manifest for structural problems. Source and toggle rules are
// enforced later by the block layer.
func (m *Manifest) Validate() error {
	if len(m.Packages) == 0 {
		return fmt.Errorf("%w: no packages", ErrManifest)
	}
	for i, p := range m.Packages {
		if p.Name == "" {
			return fmt.Errorf("%w: package %d has no name", ErrManifest, i+1)
		}
		switch p.BuildSystem {
		case "", BuildSystemCMake, BuildSystemAutotools:
		default:
			return fmt.Errorf("%w: package %q: unknown build system %q",
				ErrManifest, p.Name, p.BuildSystem)
		}
	}
	if _, err := m.OCIPlatform(); err != nil {
		return err
	}
	return nil
}

// Returns the manifest's target platform, or nil when none is set.
func (m *Manifest) OCIPlatform() (*ocispec.Platform, error) {
	if m.Platform == "" {
		return nil, nil
	}

	parts := strings.Split(m.Platform, "/")
	if len(parts) < 2 || len(parts) > 3 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("%w: platform %q is not os/arch[/variant]", ErrManifest, m.Platform)
	}

	p := &ocispec.Platform{OS: parts[0], Architecture: parts[1]}
	if len(parts) == 3 {
		p.Variant = parts[2]
	}
	return p, nil
}

// Converts the package into a block spec.
func (p Package) Spec() block.Spec {
	spec := block.Spec{
		URL:                p.URL,
		Repository:         p.Repository,
		Branch:             p.Branch,
		Commit:             p.Commit,
		Recursive:          p.Recursive,
		Directory:          p.Directory,
		BuildDirectory:     p.BuildDirectory,
		Prefix:             p.Prefix,
		Options:            p.Options,
		BuildEnvironment:   p.BuildEnvironment,
		DevelEnvironment:   p.DevelEnvironment,
		RuntimeEnvironment: p.RuntimeEnvironment,
		Preconfigure:       p.Preconfigure,
		Postinstall:        p.Postinstall,
		SkipBuild:          p.SkipBuild,
		Check:              p.Check,
		SkipInstall:        p.SkipInstall,
		Ldconfig:           p.Ldconfig,
		Libdir:             p.Libdir,
		RunArguments:       p.RunArguments,
		Toolchain: toolchain.Toolchain{
			CC:       p.Toolchain.CC,
			CXX:      p.Toolchain.CXX,
			FC:       p.Toolchain.FC,
			F77:      p.Toolchain.F77,
			CFLAGS:   p.Toolchain.CFLAGS,
			CPPFLAGS: p.Toolchain.CPPFLAGS,
			CXXFLAGS: p.Toolchain.CXXFLAGS,
			FFLAGS:   p.Toolchain.FFLAGS,
			LDFLAGS:  p.Toolchain.LDFLAGS,
		},
	}
	if p.BuildSystem == BuildSystemAutotools {
		spec.Driver = block.ConfigureMake{}
	}
	return spec
}
