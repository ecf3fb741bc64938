package main

import (
	"fmt"
	"net"
	"sync"

	"github.com/horgh/irc"
	log "github.com/sirupsen/logrus"
)

// sessionState tracks where a session is in its lifetime.
type sessionState int

const (
	// stateLogin means the client must still complete NICK+USER. Only
	// NICK, USER, and QUIT are acted on.
	stateLogin sessionState = iota

	// stateSteady means the client registered and commands are dispatched.
	stateSteady

	// stateClosing means teardown has begun.
	stateClosing
)

// Client holds state about a single client connection.
//
// Each client has two goroutines: readLoop drives the state machine off the
// connection, writeLoop drains the outbound queue onto it. Peers reach the
// client only through its queue, via the registries.
type Client struct {
	// Conn holds the TCP connection to the client.
	Conn Conn

	// Queue is the client's outbound queue, drained by writeLoop.
	Queue *queue

	// A unique id. Internal to this server only.
	ID uint64

	// Server references the main server the client is connected to.
	Server *Server

	// Only the readLoop goroutine touches state, nick, and user.
	state sessionState

	// Set during login by NICK and USER. Once set they never change; nick
	// doubles as the registry key after registration. user is the real
	// name.
	nick string
	user string

	// Closed when writeLoop exits. Teardown waits on this before closing
	// the connection so pending replies drain first.
	writerDone chan struct{}

	closeOnce sync.Once
}

// NewClient creates a Client.
func NewClient(s *Server, id uint64, conn net.Conn) *Client {
	return &Client{
		Conn:       NewConn(conn),
		Queue:      newQueue(),
		ID:         id,
		Server:     s,
		writerDone: make(chan struct{}),
	}
}

func (c *Client) String() string {
	return fmt.Sprintf("%d %s", c.ID, c.Conn.RemoteAddr())
}

func (c *Client) logger() *log.Entry {
	return log.WithField("client", c.String())
}

// readLoop endlessly reads from the client's TCP connection, parses each
// protocol message, and feeds it to the state machine. When the loop exits,
// for any reason, it runs session teardown.
func (c *Client) readLoop() {
	defer c.Server.WG.Done()

	for {
		if c.Server.isShuttingDown() {
			break
		}

		line, err := c.Conn.Read()
		if err != nil {
			c.logger().Infof("Connection lost: %s", err)
			break
		}

		m, err := irc.ParseMessage(line)
		if err != nil {
			// A single malformed line doesn't cut the client off. Tell them
			// and carry on.
			c.logger().Errorf("Invalid message: %s", err)
			c.messageFromServer("ERROR", []string{err.Error()})
			continue
		}

		c.logger().Debugf("Received message: %s", m)

		if c.state == stateLogin {
			if !c.handleLoginMessage(m) {
				break
			}
			continue
		}

		c.handleMessage(m)

		if c.state == stateClosing {
			break
		}
	}

	c.tearDown()

	c.logger().Debug("Reader shutting down.")
}

// writeLoop endlessly drains the client's outbound queue and writes each
// line to the TCP connection. It is the only goroutine writing to the
// connection, so clients see events in enqueue order.
func (c *Client) writeLoop() {
	defer c.Server.WG.Done()
	defer close(c.writerDone)

	for {
		evt := c.Queue.next()
		if evt.terminate {
			break
		}

		if err := c.Conn.Write(evt.line); err != nil {
			// Abandon the queue. Whatever is still on it is for a client
			// that can no longer hear us.
			c.logger().Errorf("Unable to write: %s", err)
			break
		}
	}

	c.logger().Debug("Writer shutting down.")
}

// handleLoginMessage drives the login state machine. It returns false when
// the session should end.
func (c *Client) handleLoginMessage(m irc.Message) bool {
	switch m.Command {
	case "NICK":
		c.nickCommand(m)
	case "USER":
		c.userCommand(m)
	case "QUIT":
		// Quitting before registration. We never entered the registries,
		// so there is no fan-out to do.
		return false
	default:
		c.logger().Warnf("Expected NICK or USER command... ignoring: %s",
			m.Command)
		return true
	}

	if c.nick != "" && c.user != "" {
		c.completeRegistration()
	}

	return true
}

// completeRegistration claims the nick and promotes the session to steady
// state.
//
// The claim can fail: another session may have raced us to the same nick
// after our NICK command checked it. In that case the client gets a 436 and
// stays in login with its pending nick reset, free to pick another.
func (c *Client) completeRegistration() {
	if !c.Server.clients.tryClaim(c.nick, c.Queue) {
		nick := c.nick
		c.nick = ""

		// 436 ERR_NICKCOLLISION
		c.messageFromServer("436", []string{nick, "Nickname collision KILL"})
		return
	}

	c.state = stateSteady

	// 001 RPL_WELCOME
	c.messageFromServer("001", []string{
		fmt.Sprintf("Hi %s, welcome to IRC", c.user),
	})

	c.motd()

	c.logger().Infof("%s (%s) joined", c.user, c.nick)
}

// quit removes the client from every channel it is in, telling the
// remaining members, then releases the nick. It runs exactly once per
// registered session, whether for an explicit QUIT or a dropped connection.
func (c *Client) quit(reason string) {
	// Channels first, then clients. We never hold both registry locks at
	// once; this order is the same for every session, so concurrent quits
	// cannot deadlock.
	cuts := c.Server.channels.removeAll(c.nick)

	// The fan-out is per channel: a peer sharing several channels with us
	// hears one QUIT for each of them.
	for _, cut := range cuts {
		c.logger().Infof("User %s quit and left channel %s", c.nick, cut.name)

		for _, q := range cut.remaining {
			c.messageUser(q, "QUIT", []string{reason})
		}
	}

	c.Server.clients.release(c.nick)

	c.state = stateClosing
}

// tearDown runs session teardown: the quit fan-out if the session was
// registered and hasn't already quit, then writer termination, and finally
// closing the connection once the writer has drained.
func (c *Client) tearDown() {
	if c.state == stateSteady {
		// The connection dropped without a QUIT. Same fan-out.
		c.quit("Connection lost")
	}
	c.state = stateClosing

	c.Queue.terminate()

	// Close the connection only after the writer has delivered everything
	// queued before the terminate.
	<-c.writerDone
	c.close()

	c.Server.forgetSession(c)

	c.logger().Info("Connection finished")
}

// close closes the TCP connection. Safe to call more than once; shutdown
// and teardown can race here.
func (c *Client) close() {
	c.closeOnce.Do(func() {
		if err := c.Conn.Close(); err != nil {
			c.logger().Debugf("Problem closing connection: %s", err)
		}
	})
}
