package main

import (
	"bufio"
	"fmt"
	"net"

	"github.com/pkg/errors"
)

// Conn is a connection to a client.
type Conn struct {
	conn net.Conn
	rw   *bufio.ReadWriter
}

// NewConn initializes a Conn struct
func NewConn(conn net.Conn) Conn {
	return Conn{
		conn: conn,
		rw:   bufio.NewReadWriter(bufio.NewReader(conn), bufio.NewWriter(conn)),
	}
}

// Close closes the underlying connection
func (c Conn) Close() error {
	return c.conn.Close()
}

// RemoteAddr returns the remote network address.
func (c Conn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Read reads a line from the connection.
func (c Conn) Read() (string, error) {
	line, err := c.rw.ReadString('\n')
	if err != nil {
		return line, errors.Wrap(err, "error reading")
	}

	return line, nil
}

// Write writes a string to the connection
func (c Conn) Write(s string) error {
	sz, err := c.rw.WriteString(s)
	if err != nil {
		return errors.Wrap(err, "error writing")
	}

	if sz != len(s) {
		return fmt.Errorf("short write")
	}

	if err := c.rw.Flush(); err != nil {
		return errors.Wrap(err, "flush error")
	}

	return nil
}
