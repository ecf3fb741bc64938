package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	log "github.com/sirupsen/logrus"
)

// Server holds the state for a server.
// I put everything global to a server in an instance of struct rather than
// have global variables.
type Server struct {
	Config Config

	// Registered nick to the owning session's outbound queue.
	clients *clientRegistry

	// Channel name to its members.
	channels *channelRegistry

	// Live sessions by client id. Only used to tear everything down at
	// shutdown; steady-state routing goes through the registries above.
	mu       sync.Mutex
	sessions map[uint64]*Client

	// When we close this channel, this indicates that we're shutting down.
	// Other goroutines can check if this channel is closed.
	ShutdownChan chan struct{}

	shutdownOnce sync.Once

	// TCP listener.
	Listener net.Listener

	// WaitGroup to ensure all goroutines clean up before we end.
	WG sync.WaitGroup
}

func main() {
	if err := newRootCommand(runServer).Execute(); err != nil {
		os.Exit(1)
	}
}

func runServer(args Args) error {
	log.SetLevel(log.InfoLevel)
	if args.Debug {
		log.SetLevel(log.DebugLevel)
	}

	server, err := newServer(args)
	if err != nil {
		return err
	}

	if err := server.start(); err != nil {
		return err
	}

	log.Info("Server shutdown cleanly.")
	return nil
}

func newServer(args Args) (*Server, error) {
	s := &Server{
		Config:   defaultConfig(),
		clients:  newClientRegistry(),
		channels: newChannelRegistry(),
		sessions: make(map[uint64]*Client),

		// shutdown() closes this channel.
		ShutdownChan: make(chan struct{}),
	}

	s.Config.ListenHost = args.ListenHost
	s.Config.ListenPort = args.ListenPort

	if args.ConfigFile != "" {
		if err := s.checkAndParseConfig(args.ConfigFile); err != nil {
			return nil, fmt.Errorf("configuration problem: %s", err)
		}
	}

	return s, nil
}

// start starts up the server.
//
// We open the TCP port, start the acceptor goroutine, and block until
// shutdown. Shutdown happens on SIGINT/SIGTERM or a call to shutdown().
func (s *Server) start() error {
	ln, err := net.Listen("tcp", net.JoinHostPort(s.Config.ListenHost,
		strconv.Itoa(int(s.Config.ListenPort))))
	if err != nil {
		return fmt.Errorf("unable to listen: %s", err)
	}
	s.Listener = ln

	log.Infof("iris started. Listening on %s", ln.Addr())

	s.WG.Add(1)
	go s.acceptConnections()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-signalChan:
		log.Infof("Received signal: %s", sig)
		s.shutdown()
	case <-s.ShutdownChan:
	}

	signal.Stop(signalChan)

	s.WG.Wait()

	return nil
}

// shutdown starts server shutdown. Safe to call from any goroutine, and
// more than once.
func (s *Server) shutdown() {
	s.shutdownOnce.Do(func() {
		log.Info("Server shutdown initiated.")

		// Closing ShutdownChan indicates to other goroutines that we're
		// shutting down.
		close(s.ShutdownChan)

		if s.Listener != nil {
			if err := s.Listener.Close(); err != nil {
				log.Errorf("Problem closing TCP listener: %s", err)
			}
		}

		// Close every live session's connection. Each session then runs its
		// normal teardown: quit fan-out, registry cleanup, writer drain.
		s.mu.Lock()
		sessions := make([]*Client, 0, len(s.sessions))
		for _, c := range s.sessions {
			sessions = append(sessions, c)
		}
		s.mu.Unlock()

		for _, c := range sessions {
			c.close()
		}
	})
}

// acceptConnections accepts TCP connections and starts a session for each.
// It never blocks on session work.
func (s *Server) acceptConnections() {
	defer s.WG.Done()

	id := uint64(0)

	for {
		if s.isShuttingDown() {
			break
		}

		conn, err := s.Listener.Accept()
		if err != nil {
			if s.isShuttingDown() {
				break
			}
			log.Errorf("Failed to accept connection: %s", err)
			continue
		}

		s.startSession(id, conn)

		// Handle rollover of uint64. Unlikely to happen (outside abuse) but.
		if id+1 == 0 {
			log.Fatalf("Unique ids rolled over!")
		}
		id++
	}

	log.Info("Connection accepter shutting down.")
}

// startSession constructs a session for the connection and spawns its
// reader and writer goroutines.
func (s *Server) startSession(id uint64, conn net.Conn) *Client {
	client := NewClient(s, id, conn)

	client.logger().Info("Connection established")

	s.mu.Lock()
	s.sessions[id] = client
	s.mu.Unlock()

	// Shutdown may have snapshotted the session table before we appeared
	// in it. Recheck now that we're registered so nobody is missed.
	if s.isShuttingDown() {
		client.close()
	}

	s.WG.Add(1)
	go client.readLoop()
	s.WG.Add(1)
	go client.writeLoop()

	return client
}

func (s *Server) forgetSession(c *Client) {
	s.mu.Lock()
	delete(s.sessions, c.ID)
	s.mu.Unlock()
}

// Return true if the server is shutting down.
func (s *Server) isShuttingDown() bool {
	// No messages get sent to this channel, so if we receive a message on
	// it, then we know the channel was closed.
	select {
	case <-s.ShutdownChan:
		return true
	default:
		return false
	}
}
