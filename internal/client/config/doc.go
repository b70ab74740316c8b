// Package config holds the CLI client's settings.
//
// Sources, later ones winning:
//  1. LoadDefaults
//  2. a JSON file named by --config/-c or $WORKLOG_CONFIG
//  3. command-line flags registered with RegisterFlags
//
// JSON keys: server_endpoint_addr, session_db_path, request_timeout
// (a duration string such as "10s" or integer nanoseconds).
package config
