// Parses flags and configures logging for the hpccm recipe generator.
//
// The tool accepts the following flags:
//
//	-q, --quiet   Suppress informational output.
//	-d, --debug   Enable debug output.
//
// Flags override build-time defaults set via linker flags. After parsing,
// the global log level is adjusted to reflect the final modes before the
// selected subcommand runs.
package cli
