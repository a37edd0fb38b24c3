package instruction

import (
	"testing"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

func TestComment(t *testing.T) {
	got := Comment("https://example.com/pkg-1.0.tar.gz").Render()
	want := "# https://example.com/pkg-1.0.tar.gz"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestCommentMultiline(t *testing.T) {
	got := Comment("first\nsecond").Render()
	want := "# first\n# second"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestShell(t *testing.T) {
	got := Shell{Commands: []string{"a", "b", "c"}}.Render()
	want := "RUN a && \\\n    b && \\\n    c"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestShellSingleCommand(t *testing.T) {
	got := Shell{Commands: []string{"ldconfig"}}.Render()
	if got != "RUN ldconfig" {
		t.Fatalf("Render() = %q, want RUN ldconfig", got)
	}
}

func TestShellArguments(t *testing.T) {
	got := Shell{
		Commands:  []string{"make"},
		Arguments: "--mount=type=cache,target=/ccache",
	}.Render()
	want := "RUN --mount=type=cache,target=/ccache make"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestEnvironmentSortedKeys(t *testing.T) {
	got := Environment{Variables: map[string]string{
		"PATH":            "/opt/pkg/bin:$PATH",
		"LD_LIBRARY_PATH": "/opt/pkg/lib:$LD_LIBRARY_PATH",
	}}.Render()
	want := "ENV LD_LIBRARY_PATH=/opt/pkg/lib:$LD_LIBRARY_PATH \\\n    PATH=/opt/pkg/bin:$PATH"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestEnvironmentQuotesWhitespace(t *testing.T) {
	got := Environment{Variables: map[string]string{"CFLAGS": "-O3 -march=native"}}.Render()
	want := `ENV CFLAGS="-O3 -march=native"`
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestCopy(t *testing.T) {
	got := Copy{From: "devel", Source: "/usr/local/pkg", Dest: "/usr/local/pkg"}.Render()
	want := "COPY --from=devel /usr/local/pkg /usr/local/pkg"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestFrom(t *testing.T) {
	tests := []struct {
		name string
		from From
		want string
	}{
		{
			name: "image only",
			from: From{Image: "ubuntu:24.04"},
			want: "FROM ubuntu:24.04",
		},
		{
			name: "named stage",
			from: From{Image: "ubuntu:24.04", Name: "devel"},
			want: "FROM ubuntu:24.04 AS devel",
		},
		{
			name: "platform",
			from: From{
				Image:    "ubuntu:24.04",
				Name:     "devel",
				Platform: &ocispec.Platform{OS: "linux", Architecture: "arm64"},
			},
			want: "FROM --platform=linux/arm64 ubuntu:24.04 AS devel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.Render(); got != tt.want {
				t.Fatalf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatPlatformVariant(t *testing.T) {
	p := ocispec.Platform{OS: "linux", Architecture: "arm", Variant: "v7"}
	if got := FormatPlatform(p); got != "linux/arm/v7" {
		t.Fatalf("FormatPlatform() = %q, want linux/arm/v7", got)
	}
}

func TestLabel(t *testing.T) {
	got := Label{Labels: map[string]string{"b": "2", "a": "1"}}.Render()
	want := "LABEL a=1 \\\n    b=2"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestWorkdir(t *testing.T) {
	if got := Workdir("/var/tmp").Render(); got != "WORKDIR /var/tmp" {
		t.Fatalf("Render() = %q, want WORKDIR /var/tmp", got)
	}
}
