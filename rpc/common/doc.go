// Package common provides core data structures and utilities shared across
// the document store client. It defines fundamental types, configuration
// structures, and protocol elements used by other packages.
//
// The package focuses on:
//   - Message protocol definition for communication with the remote store
//   - Configuration structure for the connection factory
//   - Named logger factory with consistent formatting
//
// Key Components:
//
//   - Message: Core data structure for all store communication, with a
//     flexible structure that adapts to different operation types. Includes
//     factory methods for creating the various request and response messages.
//
//   - MessageType: Enumeration defining all supported operation types:
//     key-value operations (set, get, delete, scan) and connection lifecycle
//     messages (hello, ping).
//
//   - ClientConfig: Configuration consumed by the connection factory,
//     covering endpoint parameters (network, host, port, database index,
//     password) and connection behavior (heartbeat interval, socket timeout,
//     wire codec).
//
//   - Logger: Named zap loggers sharing a global level, so every package
//     logs with the same format and verbosity.
package common
