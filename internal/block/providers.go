package block

import (
	"fmt"
	"strings"
)

// Linker configuration fragment the registrar appends library directories to.
const ldconfigFile = "/etc/ld.so.conf.d/hpccm.conf"

// Returns the command that registers a library directory with the dynamic
// linker cache. Pure string derivation; the side effect happens only when
// the command is executed.
func ldcacheStep(directory string) string {
	return fmt.Sprintf(`echo "%s" >> %s && ldconfig`, directory, ldconfigFile)
}

// Returns the command that removes the given paths, batched into a single
// invocation in the given order. The order is stable so recipe output is
// reproducible.
func cleanupStep(paths []string) string {
	return "rm -rf " + strings.Join(paths, " ")
}

// Holds the persistent environment exports for the development and runtime
// stages. The two mappings are independent and never merged: a variable
// defined for the development stage is invisible at runtime unless also
// listed in the runtime mapping.
type exporter struct {
	devel   map[string]string
	runtime map[string]string
}

// Returns the selected mapping: the development mapping by default, the
// runtime mapping when runtime is true. An empty or nil result means no
// environment instruction should be emitted.
func (e exporter) environment(runtime bool) map[string]string {
	if runtime {
		return e.runtime
	}
	return e.devel
}
