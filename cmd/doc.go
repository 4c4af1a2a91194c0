// Package cmd implements the command-line interface for dockv. It provides
// a hierarchical command structure with operations for running the bundled
// development server and interacting with a store as a client.
//
// The package is organized into several subpackages:
//
//   - kv: Commands for key-value operations (get, set, del, scan, ping, perf)
//   - serve: Commands for starting and configuring the development server
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See dockv -help for a list of all commands.
package cmd
