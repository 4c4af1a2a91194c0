package common

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Client configuration struct
// --------------------------------------------------------------------------

// Default values applied by Validate for unset optional fields.
const (
	DefaultHeartbeatIntervalSec = 10
	DefaultSocketTimeoutSec     = 5
)

// ClientConfig holds all parameters needed to build a store connection.
// It is consumed by the connection factory (rpc/conn) and shared between
// the connection manager and any direct consumers.
type ClientConfig struct {
	// Network is the socket type to dial: "tcp" or "unix".
	// For "unix", Host is the socket path and Port is ignored.
	Network string

	// Store endpoint parameters
	Host     string
	Port     int
	DB       int    // database index, selected during the handshake
	Password string // optional, empty means no auth

	// Connection behavior
	HeartbeatIntervalSec int // seconds between liveness probes
	SocketTimeoutSec     int // per-operation read/write deadline

	// Serializer selects the wire codec: "json", "gob" or "binary"
	Serializer string

	// Logging configuration
	LogLevel string
}

// Validate applies defaults and checks required fields.
func (c *ClientConfig) Validate() error {
	if c.Network == "" {
		c.Network = "tcp"
	}
	if c.Network != "tcp" && c.Network != "unix" {
		return fmt.Errorf("invalid network %q: must be tcp or unix", c.Network)
	}
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.Network == "tcp" && (c.Port <= 0 || c.Port > 65535) {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.DB < 0 {
		return fmt.Errorf("invalid database index %d", c.DB)
	}
	if c.HeartbeatIntervalSec <= 0 {
		c.HeartbeatIntervalSec = DefaultHeartbeatIntervalSec
	}
	if c.SocketTimeoutSec <= 0 {
		c.SocketTimeoutSec = DefaultSocketTimeoutSec
	}
	if c.Serializer == "" {
		c.Serializer = "json"
	}
	return nil
}

// Endpoint returns the dialable address for the configured network.
func (c *ClientConfig) Endpoint() string {
	if c.Network == "unix" {
		return c.Host
	}
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// String returns a formatted string representation of the configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// Store endpoint
	addSection("Store Connection")
	addField("Network", c.Network)
	addField("Endpoint", c.Endpoint())
	addField("Database", strconv.Itoa(c.DB))
	if c.Password != "" {
		addField("Password", "********")
	}

	// Connection behavior
	addSection("Connection Behavior")
	addField("Heartbeat Interval", fmt.Sprintf("%d sec", c.HeartbeatIntervalSec))
	addField("Socket Timeout", fmt.Sprintf("%d sec", c.SocketTimeoutSec))
	addField("Serializer", c.Serializer)

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}
