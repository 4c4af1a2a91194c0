package conn

import (
	"fmt"
	"net"
	"time"

	"github.com/dockv/dockv/rpc/common"
)

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IConnector defines the interface for transport-specific connection operations
type IConnector interface {
	// Connect establishes a single connection to the given endpoint
	Connect(endpoint string, timeout time.Duration) (net.Conn, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies protocol-specific settings to an established connection
	UpgradeConnection(conn net.Conn, config common.ClientConfig) error
}

// connectorFor returns the connector for the configured network type
func connectorFor(network string) (IConnector, error) {
	switch network {
	case "", "tcp":
		return &tcpConnector{}, nil
	case "unix":
		return &unixConnector{}, nil
	default:
		return nil, fmt.Errorf("invalid network %q: must be tcp or unix", network)
	}
}

// -----------------------------------------------------------
// TCP Connector
// -----------------------------------------------------------

// tcpConnector implements the IConnector interface for TCP sockets
type tcpConnector struct{}

func (c *tcpConnector) GetName() string {
	return "tcp"
}

func (c *tcpConnector) Connect(endpoint string, timeout time.Duration) (net.Conn, error) {
	return net.DialTimeout("tcp", endpoint, timeout)
}

func (c *tcpConnector) UpgradeConnection(conn net.Conn, config common.ClientConfig) error {
	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		return fmt.Errorf("expected TCP connection, got %T", conn)
	}

	// Small request/response messages, latency matters more than throughput
	if err := tcpConn.SetNoDelay(true); err != nil {
		return err
	}
	if err := tcpConn.SetKeepAlive(true); err != nil {
		return err
	}
	return nil
}

// -----------------------------------------------------------
// Unix Socket Connector
// -----------------------------------------------------------

// unixConnector implements the IConnector interface for Unix sockets
type unixConnector struct{}

func (c *unixConnector) GetName() string {
	return "unix"
}

func (c *unixConnector) Connect(endpoint string, timeout time.Duration) (net.Conn, error) {
	return net.DialTimeout("unix", endpoint, timeout)
}

func (c *unixConnector) UpgradeConnection(conn net.Conn, config common.ClientConfig) error {
	// No socket options to tune for unix domain sockets
	return nil
}
