// Package toolchain selects non-default compilers and flags for a package
// build. A Toolchain is a read-only bag of selections consumed by the
// build-system drivers; empty fields are omitted from the generated
// environment.
package toolchain

// Compiler and flag selections for a build.
type Toolchain struct {
	CC  string // C compiler.
	CXX string // C++ compiler.
	FC  string // Fortran compiler.
	F77 string // Fortran 77 compiler.

	CFLAGS   string
	CPPFLAGS string
	CXXFLAGS string
	FFLAGS   string
	LDFLAGS  string
}

// Returns the non-empty selections as "KEY=VALUE" assignments.
//
// The order is fixed (alphabetical by variable name) so that command
// generation is deterministic.
func (t Toolchain) Environ() []string {
	fields := []struct {
		key string
		val string
	}{
		{"CC", t.CC},
		{"CFLAGS", t.CFLAGS},
		{"CPPFLAGS", t.CPPFLAGS},
		{"CXX", t.CXX},
		{"CXXFLAGS", t.CXXFLAGS},
		{"F77", t.F77},
		{"FC", t.FC},
		{"FFLAGS", t.FFLAGS},
		{"LDFLAGS", t.LDFLAGS},
	}

	var env []string
	for _, f := range fields {
		if f.val != "" {
			env = append(env, f.key+"="+f.val)
		}
	}
	return env
}

// Returns true if no selection is set.
func (t Toolchain) IsZero() bool {
	return t == Toolchain{}
}
