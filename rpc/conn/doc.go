// Package conn implements the transport layer for the store protocol: a
// single persistent socket carrying framed, synchronous request/response
// round-trips.
//
// The package focuses on:
//   - One shared connection factory (Dial) used by the connection manager
//     and any direct consumers, so construction logic exists exactly once
//   - Pluggable socket types (TCP, Unix domain sockets) behind the
//     IConnector interface
//   - The hello handshake that selects the database index and authenticates
//
// Key Components:
//
//   - Conn: A dialed connection. Do performs one round-trip with
//     per-operation deadlines and response validation. Conn is not
//     internally synchronized; the connection manager's lock serializes all
//     access.
//
//   - IConnector: Transport-specific connect/upgrade operations. The TCP
//     connector enables TCP_NODELAY and keepalive; the unix connector needs
//     no tuning.
//
// Wire format per frame: 8-byte request ID, 4-byte payload length, payload.
// The payload is a common.Message encoded by the configured serializer.
package conn
