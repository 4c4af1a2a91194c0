package server

import (
	"fmt"
	"net"
	"sort"
	"strings"
	"sync"

	"github.com/dockv/dockv/rpc/common"
	"github.com/dockv/dockv/rpc/conn"
	"github.com/dockv/dockv/rpc/serializer"
)

var logger = common.GetLogger("server")

// Server is a lightweight in-memory store speaking the wire protocol. It
// exists for development and tests: the client, repository and CLI can run
// against a real socket without an external store.
//
// Each database index is an independent key table. Connections must perform
// the hello handshake before issuing operations.
type Server struct {
	password   string
	serializer serializer.ISerializer

	mu  sync.RWMutex
	dbs map[int]map[string][]byte

	listener net.Listener
	connMu   sync.Mutex
	conns    map[net.Conn]struct{}
	wg       sync.WaitGroup
	closed   bool
}

// NewServer creates a new in-memory store server. An empty password
// disables authentication.
func NewServer(password string, ser serializer.ISerializer) *Server {
	return &Server{
		password:   password,
		serializer: ser,
		dbs:        make(map[int]map[string][]byte),
		conns:      make(map[net.Conn]struct{}),
	}
}

// Listen binds the server to the given address and starts accepting
// connections in the background.
func (s *Server) Listen(network, address string) error {
	listener, err := net.Listen(network, address)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	s.listener = listener

	logger.Infof("Store server listening on %s (%s)", listener.Addr(), network)

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// Addr returns the listener address (useful with port 0 in tests).
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Close stops the listener, closes all open connections and waits for the
// handler goroutines to exit.
func (s *Server) Close() error {
	s.connMu.Lock()
	if s.closed {
		s.connMu.Unlock()
		return nil
	}
	s.closed = true
	for netConn := range s.conns {
		netConn.Close()
	}
	s.connMu.Unlock()

	err := s.listener.Close()
	s.wg.Wait()
	return err
}

// --------------------------------------------------------------------------
// Connection Handling
// --------------------------------------------------------------------------

func (s *Server) acceptLoop() {
	defer s.wg.Done()

	for {
		netConn, err := s.listener.Accept()
		if err != nil {
			// Listener closed during shutdown
			return
		}

		s.connMu.Lock()
		if s.closed {
			s.connMu.Unlock()
			netConn.Close()
			return
		}
		s.conns[netConn] = struct{}{}
		s.connMu.Unlock()

		s.wg.Add(1)
		go s.handleConnection(netConn)
	}
}

// handleConnection serves one client connection until it is closed.
// Per-connection state: the selected database and auth status from the
// hello handshake.
func (s *Server) handleConnection(netConn net.Conn) {
	defer s.wg.Done()
	defer func() {
		netConn.Close()
		s.connMu.Lock()
		delete(s.conns, netConn)
		s.connMu.Unlock()
	}()

	greeted := false
	db := 0

	for {
		requestID, reqBytes, err := conn.ReadFrame(netConn, nil)
		if err != nil {
			// Connection closed or broken
			return
		}

		var req common.Message
		var resp *common.Message

		if err := s.serializer.Deserialize(reqBytes, &req); err != nil {
			resp = common.NewErrorResponse(fmt.Sprintf("malformed request: %v", err))
		} else if req.MsgType == common.MsgTHello {
			resp = s.handleHello(&req, &greeted, &db)
		} else if !greeted {
			resp = common.NewErrorResponse("handshake required")
		} else {
			resp = s.handleRequest(&req, db)
		}

		respBytes, err := s.serializer.Serialize(*resp)
		if err != nil {
			logger.Errorf("Failed to serialize response: %v", err)
			return
		}

		if err := conn.WriteFrame(netConn, requestID, respBytes); err != nil {
			logger.Errorf("Failed to write response: %v", err)
			return
		}
	}
}

// --------------------------------------------------------------------------
// Request Handling
// --------------------------------------------------------------------------

// handleHello validates credentials and selects the database for this
// connection
func (s *Server) handleHello(req *common.Message, greeted *bool, db *int) *common.Message {
	if s.password != "" && req.Password != s.password {
		return common.NewHelloResponse(fmt.Errorf("invalid password"))
	}
	if req.DB < 0 {
		return common.NewHelloResponse(fmt.Errorf("invalid database index %d", req.DB))
	}
	*greeted = true
	*db = req.DB
	return common.NewHelloResponse(nil)
}

// handleRequest dispatches a store operation against the selected database
func (s *Server) handleRequest(req *common.Message, db int) *common.Message {
	switch req.MsgType {
	case common.MsgTPing:
		return common.NewPingResponse(nil)

	case common.MsgTKVSet:
		s.mu.Lock()
		table := s.table(db)
		value := make([]byte, len(req.Value))
		copy(value, req.Value)
		table[req.Key] = value
		s.mu.Unlock()
		return common.NewSetResponse(nil)

	case common.MsgTKVGet:
		s.mu.RLock()
		value, ok := s.dbs[db][req.Key]
		s.mu.RUnlock()
		return common.NewGetResponse(value, ok, nil)

	case common.MsgTKVDelete:
		s.mu.Lock()
		delete(s.dbs[db], req.Key)
		s.mu.Unlock()
		return common.NewDeleteResponse(nil)

	case common.MsgTKVScan:
		s.mu.RLock()
		var keys []string
		for key := range s.dbs[db] {
			if strings.HasPrefix(key, req.Prefix) {
				keys = append(keys, key)
			}
		}
		s.mu.RUnlock()
		sort.Strings(keys)
		return common.NewScanResponse(keys, nil)

	default:
		return common.NewErrorResponse(
			fmt.Sprintf("unsupported message type: %s", req.MsgType),
		)
	}
}

// table returns the key table for a database index, creating it lazily.
// Callers must hold s.mu for writing. Read paths index s.dbs directly and
// tolerate a missing table (a nil map simply has no keys).
func (s *Server) table(db int) map[string][]byte {
	table, ok := s.dbs[db]
	if !ok {
		table = make(map[string][]byte)
		s.dbs[db] = table
	}
	return table
}
