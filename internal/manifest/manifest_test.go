package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/YousefMohassab/hpc-container-maker/internal/block"
)

// Writes a manifest file into a temporary directory.
func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hpccm.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const sample = `
base: nvidia/cuda:12.2.0-devel-ubuntu22.04
runtime_base: nvidia/cuda:12.2.0-runtime-ubuntu22.04
platform: linux/amd64
labels:
  org.opencontainers.image.title: hpc-base
workdir: /workspace
packages:
  - name: gromacs
    url: https://github.com/gromacs/gromacs/archive/v2018.2.tar.gz
    prefix: /usr/local/gromacs
    options:
      - -D CMAKE_BUILD_TYPE=Release
      - -D GMX_MPI=OFF
    ldconfig: true
  - name: openblas
    build_system: autotools
    repository: https://github.com/xianyi/OpenBLAS.git
    branch: v0.3.7
    prefix: /usr/local/openblas
    toolchain:
      cc: gcc-13
      fc: gfortran-13
`

func TestLoad(t *testing.T) {
	m, err := Load(writeManifest(t, sample))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if m.Base != "nvidia/cuda:12.2.0-devel-ubuntu22.04" {
		t.Fatalf("Base = %q", m.Base)
	}
	if len(m.Packages) != 2 {
		t.Fatalf("len(Packages) = %d, want 2", len(m.Packages))
	}
	if m.Labels["org.opencontainers.image.title"] != "hpc-base" {
		t.Fatalf("Labels = %v", m.Labels)
	}
	if m.Workdir != "/workspace" {
		t.Fatalf("Workdir = %q", m.Workdir)
	}

	p, err := m.OCIPlatform()
	if err != nil {
		t.Fatalf("OCIPlatform() error = %v", err)
	}
	if p.OS != "linux" || p.Architecture != "amd64" {
		t.Fatalf("OCIPlatform() = %+v", p)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "no packages",
			content: "base: ubuntu:24.04\n",
		},
		{
			name: "unnamed package",
			content: `
packages:
  - url: https://x/p.tar.gz
`,
		},
		{
			name: "unknown build system",
			content: `
packages:
  - name: p
    url: https://x/p.tar.gz
    build_system: meson
`,
		},
		{
			name: "bad platform",
			content: `
platform: amd64
packages:
  - name: p
    url: https://x/p.tar.gz
`,
		},
		{
			name: "unknown field",
			content: `
packages:
  - name: p
    url: https://x/p.tar.gz
    cmake_opts: [a]
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeManifest(t, tt.content)); !errors.Is(err, ErrManifest) {
				t.Fatalf("Load() error = %v, want ErrManifest", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, ErrManifest) {
		t.Fatalf("Load() error = %v, want ErrManifest", err)
	}
}

func TestPackageSpec(t *testing.T) {
	m, err := Load(writeManifest(t, sample))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cmake := m.Packages[0].Spec()
	if cmake.Driver != nil {
		t.Fatalf("cmake package Driver = %T, want nil (default)", cmake.Driver)
	}
	if cmake.URL == "" || !cmake.Ldconfig {
		t.Fatalf("cmake spec = %+v", cmake)
	}

	auto := m.Packages[1].Spec()
	if _, ok := auto.Driver.(block.ConfigureMake); !ok {
		t.Fatalf("autotools package Driver = %T, want ConfigureMake", auto.Driver)
	}
	if auto.Toolchain.CC != "gcc-13" || auto.Toolchain.FC != "gfortran-13" {
		t.Fatalf("toolchain = %+v", auto.Toolchain)
	}

	// Converted specs construct cleanly.
	for _, p := range m.Packages {
		if _, err := block.New(p.Spec()); err != nil {
			t.Fatalf("block.New(%s) error = %v", p.Name, err)
		}
	}
}

func TestApplyDefaults(t *testing.T) {
	m := &Manifest{Packages: []Package{{Name: "p", URL: "https://x/p.tar.gz"}}}
	m.ApplyDefaults(Defaults{Base: "ubuntu:24.04", RuntimeBase: "ubuntu:24.04", Platform: "linux/arm64"})

	if m.Base != "ubuntu:24.04" || m.RuntimeBase != "ubuntu:24.04" || m.Platform != "linux/arm64" {
		t.Fatalf("defaults not applied: %+v", m)
	}

	// Explicit values win over defaults.
	m.ApplyDefaults(Defaults{Base: "debian:13"})
	if m.Base != "ubuntu:24.04" {
		t.Fatalf("defaults overrode explicit base: %q", m.Base)
	}
}

func TestLoadDefaultsMissingFile(t *testing.T) {
	d, err := LoadDefaults(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadDefaults() error = %v", err)
	}
	if d != (Defaults{}) {
		t.Fatalf("LoadDefaults() = %+v, want zero", d)
	}
}
