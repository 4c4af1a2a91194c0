package conn

import (
	"fmt"
	"net"
	"time"

	"github.com/dockv/dockv/rpc/common"
	"github.com/dockv/dockv/rpc/serializer"
)

var logger = common.GetLogger("conn")

// Conn is a single persistent connection to the remote store. It performs
// synchronous request/response round-trips: one request is written, its
// response is read before the next request may be sent.
//
// Conn is NOT safe for concurrent use. The connection manager serializes
// access with its own lock; direct consumers must do the same.
type Conn struct {
	netConn       net.Conn
	serializer    serializer.ISerializer
	timeout       time.Duration
	endpoint      string
	nextRequestID uint64
}

// Dial builds a connection from configuration: it resolves the connector for
// the configured network, establishes and upgrades the socket, and performs
// the hello handshake (database selection and optional auth).
//
// This is the single factory shared by the connection manager and any direct
// consumers, so all connections are constructed identically.
func Dial(config common.ClientConfig, ser serializer.ISerializer) (*Conn, error) {
	connector, err := connectorFor(config.Network)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(config.SocketTimeoutSec) * time.Second
	endpoint := config.Endpoint()

	// Establish the socket
	netConn, err := connector.Connect(endpoint, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", endpoint, err)
	}

	// Apply protocol-specific settings
	if err := connector.UpgradeConnection(netConn, config); err != nil {
		netConn.Close()
		return nil, fmt.Errorf("failed to upgrade connection to %s: %w", endpoint, err)
	}

	c := &Conn{
		netConn:    netConn,
		serializer: ser,
		timeout:    timeout,
		endpoint:   endpoint,
	}

	// Handshake: select database, authenticate. A refusal is a
	// configuration error and fails the dial.
	if _, err := c.Do(common.NewHelloRequest(config.DB, config.Password)); err != nil {
		netConn.Close()
		return nil, fmt.Errorf("handshake with %s failed: %w", endpoint, err)
	}

	logger.Debugf("Connection established to %s (%s, db %d)", endpoint, connector.GetName(), config.DB)

	return c, nil
}

// --------------------------------------------------------------------------
// Round-Trip
// --------------------------------------------------------------------------

// Do sends a request and waits for its response. It checks that the response
// correlates with the request, is not an error response, and has the
// expected message type.
func (c *Conn) Do(req *common.Message) (*common.Message, error) {
	// Serialize the request
	reqBytes, err := c.serializer.Serialize(*req)
	if err != nil {
		return nil, err
	}

	c.nextRequestID++
	requestID := c.nextRequestID

	// Write the request frame
	if c.timeout > 0 {
		c.netConn.SetWriteDeadline(time.Now().Add(c.timeout))
	}
	if err := WriteFrame(c.netConn, requestID, reqBytes); err != nil {
		return nil, fmt.Errorf("error writing request: %w", err)
	}

	// Read the response frame
	if c.timeout > 0 {
		c.netConn.SetReadDeadline(time.Now().Add(c.timeout))
	}
	respID, respBytes, err := ReadFrame(c.netConn, nil)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	// Responses are read in lock step, an ID mismatch means the stream is
	// out of sync and the connection can no longer be trusted
	if respID != requestID {
		return nil, fmt.Errorf("response ID %d does not match request ID %d", respID, requestID)
	}

	// Deserialize the response
	resp := &common.Message{}
	if err := c.serializer.Deserialize(respBytes, resp); err != nil {
		return nil, fmt.Errorf("error deserializing response: %w", err)
	}

	// Check if the response is an error response
	if resp.MsgType == common.MsgTError || resp.Err != "" {
		return nil, fmt.Errorf("store error: %s", resp.Err)
	}

	// Check if the type of the response is the expected type
	if resp.MsgType != req.MsgType {
		return nil, fmt.Errorf("unexpected message type: %s, expected %s", resp.MsgType, req.MsgType)
	}

	return resp, nil
}

// Close closes the underlying socket.
func (c *Conn) Close() error {
	return c.netConn.Close()
}

// Endpoint returns the remote address this connection was dialed to.
func (c *Conn) Endpoint() string {
	return c.endpoint
}
