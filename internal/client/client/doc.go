// Package client is the CLI's connection to the worklog server.
//
// GRPCClient wraps the api stub with the pieces every command needs: the
// access token from the session is attached to each authenticated call, an
// expired token is refreshed once and the call retried, and gRPC statuses
// are mapped to the sentinel errors in this package or in common.
package client
