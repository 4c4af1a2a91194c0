// Package server implements a lightweight in-memory store server speaking
// the same wire protocol the client dials. It exists for development and
// tests: the connection manager, repositories and the CLI can run against a
// real socket without an external store deployment.
//
// The server holds one key table per database index behind a single
// read-write lock. Connections must perform the hello handshake (database
// selection, optional password) before issuing operations; the handshake
// state is per connection.
//
// Usage:
//
//	s := server.NewServer("", serializer.NewJSONSerializer())
//	if err := s.Listen("tcp", "127.0.0.1:0"); err != nil {
//		panic(err)
//	}
//	defer s.Close()
//	addr := s.Addr() // dial this from a client
package server
