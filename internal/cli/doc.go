// Parses flags and runs the cruxfile commands.
//
// The CLI accepts the following global flags:
//
//	-q, --quiet       Suppress informational output.
//	-v, --verbose     Enable verbose output.
//	-d, --debug       Enable debug output.
//	-s, --socket      Unix socket path for the daemon.
//	    --address     Containerd socket address.
//	    --namespace   Containerd namespace.
//
// Flags override build-time defaults set via linker flags, and may also be
// set in the JSON configuration file under the user's XDG config
// directory. After parsing, the global logger is reconfigured to reflect
// the final level and verbosity before the command runs.
//
// Commands that take a descriptor read "Cruxfile" in the working directory
// by default, or standard input when given "-".
package cli
