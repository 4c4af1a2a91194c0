package client

import (
	"fmt"
	"sync"
	"time"

	"github.com/VictoriaMetrics/metrics"

	"github.com/dockv/dockv/rpc/common"
	"github.com/dockv/dockv/rpc/conn"
	"github.com/dockv/dockv/rpc/serializer"
)

var logger = common.GetLogger("client")

// --------------------------------------------------------------------------
// Metrics
// --------------------------------------------------------------------------

var reconnectsTotal = metrics.NewCounter(`dockv_client_reconnects_total`)

// establishedTotal counts connection-established notices, one per episode
var establishedTotal = metrics.NewCounter(`dockv_client_connections_established_total`)

// opRequests counts round-trips per operation
func opRequests(op string) *metrics.Counter {
	return metrics.GetOrCreateCounter(fmt.Sprintf(`dockv_client_requests_total{op=%q}`, op))
}

// opErrors counts swallowed failures per operation
func opErrors(op string) *metrics.Counter {
	return metrics.GetOrCreateCounter(fmt.Sprintf(`dockv_client_errors_total{op=%q}`, op))
}

// --------------------------------------------------------------------------
// Types
// --------------------------------------------------------------------------

// RawDocument is one scanned entry: the full store key and the raw
// serialized payload. Typed decoding happens in the repository layer.
type RawDocument struct {
	Key   string
	Value []byte
}

// Client owns a single connection to the remote store and is the only
// component that talks to it. All primitive operations are serialized by one
// lock, so at most one store round-trip is in flight per Client and no
// operation can observe the connection mid-replacement.
//
// Connectivity and protocol errors never escape this boundary: they are
// logged and surfaced to callers as absent results. A background heartbeat
// goroutine probes liveness every HeartbeatIntervalSec seconds and replaces
// a dead connection through the shared factory.
type Client struct {
	config     common.ClientConfig
	serializer serializer.ISerializer

	mu   sync.Mutex
	conn *conn.Conn

	// recovered reports whether the current connectivity episode has
	// already been announced. Cleared on reconnect so the recovery notice
	// fires exactly once per failure episode.
	recovered bool

	stopCh    chan struct{}
	doneCh    chan struct{}
	closeOnce sync.Once
}

// New validates the configuration and creates a connection manager. The
// initial connection attempt happens eagerly; if it fails the error is
// logged and the heartbeat loop keeps retrying, so a store that is down at
// startup does not fail construction. Configuration errors do.
func New(config common.ClientConfig) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	ser, err := serializer.ForName(config.Serializer)
	if err != nil {
		return nil, err
	}

	c := &Client{
		config:     config,
		serializer: ser,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}

	// Eager initial dial. Transient failures are the heartbeat's job.
	if cn, err := conn.Dial(config, ser); err != nil {
		logger.Warnf("Initial connection to %s failed: %v", config.Endpoint(), err)
	} else {
		c.conn = cn
	}

	go c.heartbeat()

	return c, nil
}

// Config returns a copy of the configuration this manager was built from.
func (c *Client) Config() common.ClientConfig {
	return c.config
}

// --------------------------------------------------------------------------
// Primitive Operations
// --------------------------------------------------------------------------

// Set writes value under key. It reports false if the write was swallowed
// due to a connectivity or protocol failure.
func (c *Client) Set(key string, value []byte) bool {
	if _, err := c.do("set", common.NewSetRequest(key, value)); err != nil {
		logger.Errorf("Set failed for key '%s': %v", key, err)
		return false
	}
	logger.Debugf("Set key '%s'", key)
	return true
}

// Get reads the value for key. The boolean is false if the key is missing
// or the read failed.
func (c *Client) Get(key string) ([]byte, bool) {
	resp, err := c.do("get", common.NewGetRequest(key))
	if err != nil {
		logger.Errorf("Get failed for key '%s': %v", key, err)
		return nil, false
	}
	if !resp.Ok {
		logger.Debugf("Get: key '%s' not found", key)
		return nil, false
	}
	return resp.Value, true
}

// Delete removes key. Failures are logged and swallowed.
func (c *Client) Delete(key string) {
	if _, err := c.do("delete", common.NewDeleteRequest(key)); err != nil {
		logger.Errorf("Delete failed for key '%s': %v", key, err)
		return
	}
	logger.Debugf("Deleted key '%s'", key)
}

// ScanByKeyBase collects all documents whose key starts with base+":". It
// lists the matching keys in one round-trip, then fetches each key
// individually. A key that vanishes between listing and fetching is logged
// and skipped; a transport failure aborts the scan and returns whatever was
// collected so far. The result is never nil.
//
// The per-key fetches each take the client lock separately, so writers may
// interleave with a running scan. This is deliberate best-effort behavior.
func (c *Client) ScanByKeyBase(base string) []RawDocument {
	docs := make([]RawDocument, 0)

	resp, err := c.do("scan", common.NewScanRequest(base+":"))
	if err != nil {
		logger.Errorf("Scan failed for key base '%s': %v", base, err)
		return docs
	}

	for _, key := range resp.Keys {
		r, err := c.do("get", common.NewGetRequest(key))
		if err != nil {
			logger.Errorf("Scan aborted at key '%s': %v", key, err)
			return docs
		}
		if !r.Ok {
			logger.Warnf("Scan: key '%s' vanished before fetch, skipping", key)
			continue
		}
		docs = append(docs, RawDocument{Key: key, Value: r.Value})
	}

	logger.Debugf("Scan collected %d documents for key base '%s'", len(docs), base)
	return docs
}

// IsConnected issues a liveness probe. It returns false on any failure and
// never panics.
func (c *Client) IsConnected() bool {
	if _, err := c.do("ping", common.NewPingRequest()); err != nil {
		logger.Errorf("Liveness probe failed: %v", err)
		return false
	}
	return true
}

// Close stops the heartbeat loop and closes the connection. It is
// idempotent and safe to call concurrently.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopCh)
	})
	<-c.doneCh

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// do executes one store round-trip under the client lock. It is the single
// choke point every primitive operation funnels through: callers translate
// a returned error into an absent result, never into a panic or a propagated
// infrastructure error.
func (c *Client) do(op string, req *common.Message) (*common.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	opRequests(op).Inc()

	if c.conn == nil {
		opErrors(op).Inc()
		return nil, fmt.Errorf("not connected to store")
	}

	resp, err := c.conn.Do(req)
	if err != nil {
		opErrors(op).Inc()
		return nil, err
	}
	return resp, nil
}

// reconnect replaces the stored connection with a freshly dialed one.
// Callers must hold c.mu.
func (c *Client) reconnect() error {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}

	cn, err := conn.Dial(c.config, c.serializer)
	if err != nil {
		return err
	}

	c.conn = cn
	reconnectsTotal.Inc()
	return nil
}

// heartbeat probes liveness every HeartbeatIntervalSec seconds and heals a
// dead connection. The lock is held only across the reconnect step, never
// across the sleep. The loop runs until Close.
func (c *Client) heartbeat() {
	defer close(c.doneCh)

	interval := time.Duration(c.config.HeartbeatIntervalSec) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Infof("Heartbeat started with interval %v", interval)

	for {
		select {
		case <-c.stopCh:
			logger.Infof("Heartbeat stopped")
			return
		case <-ticker.C:
		}

		if !c.IsConnected() {
			logger.Warnf("Store connection lost, reconnecting...")

			c.mu.Lock()
			if err := c.reconnect(); err != nil {
				c.mu.Unlock()
				logger.Errorf("Reconnect to %s failed: %v", c.config.Endpoint(), err)
				continue
			}
			c.recovered = false
			c.mu.Unlock()
		}

		c.mu.Lock()
		if !c.recovered {
			logger.Infof("Store connection established to %s", c.config.Endpoint())
			establishedTotal.Inc()
			c.recovered = true
		}
		c.mu.Unlock()
	}
}
