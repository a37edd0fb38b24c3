package recipe

import (
	"strings"
	"testing"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/YousefMohassab/hpc-container-maker/internal/instruction"
)

func TestRenderSingleStage(t *testing.T) {
	s := NewStage("devel", "ubuntu:24.04")
	s.Add(
		instruction.Comment("https://x/pkg-1.0.tar.gz"),
		instruction.Shell{Commands: []string{"true"}},
	)

	r := New()
	r.Add(s)

	want := "FROM ubuntu:24.04 AS devel\n" +
		"\n" +
		"# https://x/pkg-1.0.tar.gz\n" +
		"RUN true\n"
	if got := r.String(); got != want {
		t.Fatalf("String() =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderMultiStage(t *testing.T) {
	devel := NewStage("devel", "ubuntu:24.04")
	devel.Add(instruction.Shell{Commands: []string{"make"}})

	runtime := NewStage("", "ubuntu:24.04")
	runtime.Add(instruction.Copy{From: "devel", Source: "/opt/pkg", Dest: "/opt/pkg"})

	r := New()
	r.Add(devel)
	r.Add(runtime)

	want := "FROM ubuntu:24.04 AS devel\n" +
		"\n" +
		"RUN make\n" +
		"\n" +
		"FROM ubuntu:24.04\n" +
		"\n" +
		"COPY --from=devel /opt/pkg /opt/pkg\n"
	if got := r.String(); got != want {
		t.Fatalf("String() =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderPlatform(t *testing.T) {
	s := NewStage("devel", "ubuntu:24.04")
	s.SetPlatform(&ocispec.Platform{OS: "linux", Architecture: "arm64"})

	r := New()
	r.Add(s)

	if !strings.HasPrefix(r.String(), "FROM --platform=linux/arm64 ubuntu:24.04 AS devel\n") {
		t.Fatalf("String() = %q", r.String())
	}
}

func TestEmptyGroupsDropped(t *testing.T) {
	s := NewStage("devel", "ubuntu:24.04")
	s.Add()

	r := New()
	r.Add(s)

	if got := r.String(); got != "FROM ubuntu:24.04 AS devel\n" {
		t.Fatalf("String() = %q", got)
	}
}

func TestDigestStable(t *testing.T) {
	build := func() *Recipe {
		s := NewStage("devel", "ubuntu:24.04")
		s.Add(instruction.Environment{Variables: map[string]string{"B": "2", "A": "1"}})
		r := New()
		r.Add(s)
		return r
	}

	a, b := build(), build()
	if a.Digest() != b.Digest() {
		t.Fatalf("Digest() differs: %s vs %s", a.Digest(), b.Digest())
	}
	if a.Digest() != a.Digest() {
		t.Fatal("Digest() not stable across calls")
	}
	if a.Digest().Algorithm() != "sha256" {
		t.Fatalf("Digest() algorithm = %s, want sha256", a.Digest().Algorithm())
	}
}
