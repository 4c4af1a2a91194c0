package common

import (
	"encoding/json"
	"fmt"
)

// --------------------------------------------------------------------------
// Message Structure
// --------------------------------------------------------------------------

// Message represents a single message used for both requests and responses.
// Which fields are used depends on the type of message.
type Message struct {
	// Type of message
	MsgType MessageType `json:"msg_type"`

	// General fields
	Key    string   `json:"key,omitempty"`    // Used for: Set, Get, Delete
	Prefix string   `json:"prefix,omitempty"` // Used for: Scan requests
	Value  []byte   `json:"value"`            // Used for: Set (request), Get (response); no omitempty, an empty value must stay distinct from an absent one
	Keys   []string `json:"keys,omitempty"`   // Used for: Scan responses

	// Handshake only fields
	DB       int    `json:"db,omitempty"`       // Used for: Hello (database index)
	Password string `json:"password,omitempty"` // Used for: Hello (optional auth)

	// Response only fields
	Ok  bool   `json:"ok,omitempty"`  // Used for: Get responses (key found)
	Err string `json:"err,omitempty"` // Empty if no error, otherwise contains the error message

	// Meta information
	Meta []byte `json:"meta,omitempty"` // Unused, reserved for additional adapters
}

// --------------------------------------------------------------------------
// Message Factory Functions
// --------------------------------------------------------------------------

// NewHelloRequest creates a new Hello request (sent once after dialing)
func NewHelloRequest(db int, password string) *Message {
	return &Message{
		MsgType:  MsgTHello,
		DB:       db,
		Password: password,
	}
}

// NewHelloResponse creates a new Hello response
func NewHelloResponse(err error) *Message {
	msg := &Message{
		MsgType: MsgTHello,
	}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewSetRequest creates a new Set request
func NewSetRequest(key string, value []byte) *Message {
	return &Message{
		MsgType: MsgTKVSet,
		Key:     key,
		Value:   value,
	}
}

// NewSetResponse creates a new Set response
func NewSetResponse(err error) *Message {
	msg := &Message{
		MsgType: MsgTKVSet,
	}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewGetRequest creates a new Get request
func NewGetRequest(key string) *Message {
	return &Message{
		MsgType: MsgTKVGet,
		Key:     key,
	}
}

// NewGetResponse creates a new Get response
func NewGetResponse(value []byte, ok bool, err error) *Message {
	msg := &Message{
		MsgType: MsgTKVGet,
		Ok:      ok,
		Value:   value,
	}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewDeleteRequest creates a new Delete request
func NewDeleteRequest(key string) *Message {
	return &Message{
		MsgType: MsgTKVDelete,
		Key:     key,
	}
}

// NewDeleteResponse creates a new Delete response
func NewDeleteResponse(err error) *Message {
	msg := &Message{
		MsgType: MsgTKVDelete,
	}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewScanRequest creates a new Scan request for all keys with the given prefix
func NewScanRequest(prefix string) *Message {
	return &Message{
		MsgType: MsgTKVScan,
		Prefix:  prefix,
	}
}

// NewScanResponse creates a new Scan response
func NewScanResponse(keys []string, err error) *Message {
	msg := &Message{
		MsgType: MsgTKVScan,
		Keys:    keys,
	}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewPingRequest creates a new Ping request
func NewPingRequest() *Message {
	return &Message{
		MsgType: MsgTPing,
	}
}

// NewPingResponse creates a new Ping response
func NewPingResponse(err error) *Message {
	msg := &Message{
		MsgType: MsgTPing,
	}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewErrorResponse creates a new Error response
func NewErrorResponse(err string) *Message {
	return &Message{
		MsgType: MsgTError,
		Err:     err,
	}
}

// --------------------------------------------------------------------------
// Message Type Definition
// --------------------------------------------------------------------------

// MessageType defines the type of message used in the store protocol.
type MessageType uint8

// String returns the string representation of a MessageType.
func (t MessageType) String() string {
	switch t {
	case MsgTHello:
		return "hello"
	case MsgTPing:
		return "ping"
	case MsgTKVSet:
		return "set"
	case MsgTKVGet:
		return "get"
	case MsgTKVDelete:
		return "delete"
	case MsgTKVScan:
		return "scan"
	case MsgTError:
		return "error"
	case MsgTSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// MarshalJSON implements the json.Marshaller interface for MessageType.
// This allows MessageType to be serialized as a string in JSON.
func (t MessageType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for MessageType.
// This allows MessageType to be deserialized from a string in JSON.
func (t *MessageType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	// Convert string back to MessageType
	switch s {
	case "hello":
		*t = MsgTHello
	case "ping":
		*t = MsgTPing
	case "set":
		*t = MsgTKVSet
	case "get":
		*t = MsgTKVGet
	case "delete":
		*t = MsgTKVDelete
	case "scan":
		*t = MsgTKVScan
	case "error":
		*t = MsgTError
	case "success":
		*t = MsgTSuccess
	default:
		return fmt.Errorf("unknown message type: %s", s)
	}

	return nil
}

// --------------------------------------------------------------------------
// Message Type Constants
// --------------------------------------------------------------------------

const (
	// General message types

	MsgTUnknown MessageType = iota
	MsgTSuccess             // Indicates a successful operation
	MsgTError               // Indicates an error occurred

	// Connection lifecycle operations

	MsgTHello // Handshake: select database index, optional auth
	MsgTPing  // Liveness probe

	// Store operations

	MsgTKVSet    // Set a key-value pair
	MsgTKVGet    // Get a value by key
	MsgTKVDelete // Delete a key-value pair
	MsgTKVScan   // List all keys with a given prefix
)
