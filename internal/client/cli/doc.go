// Package cli implements the worklog command-line client on cobra.
//
// Every invocation parses its flags, resolves the config, opens the local
// session database and dials the server (see Connect), runs one command,
// and shuts the connection down again. The Session is owned by the App for
// the lifetime of the invocation and handed to the gRPC client explicitly.
package cli
