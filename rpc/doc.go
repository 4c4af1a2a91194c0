// Package rpc provides the wire layer for talking to the remote key-value
// store. It acts as the communication layer between the connection manager
// and the store, covering framing, serialization and connection setup.
//
// The package is organized into several subpackages:
//
//   - common: Core data structures and utilities used across the wire layer,
//     including the Message protocol, client configuration, and logging.
//
//   - serializer: Message serialization with multiple format options
//     (Binary, JSON, GOB) for converting between Message objects and byte
//     arrays.
//
//   - conn: The single-connection transport: framed synchronous
//     request/response over TCP or Unix sockets, plus the shared connection
//     factory that performs the handshake (database selection and auth).
//
//   - server: A lightweight in-memory store server speaking the same
//     protocol, used for development and tests.
package rpc
