// Package protocol defines the messages exchanged with the cruxfile daemon.
//
// Each connection carries one request and one response. A message is a
// single line of JSON holding an [Envelope]: the command name and a raw
// payload whose type depends on the command. Requests use [CmdResolve],
// [CmdStatus] or [CmdShutdown]; responses use [CmdOK] or [CmdError].
package protocol
