package main

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Drive a session over real TCP and make sure shutdown takes everything
// down: listener, sessions, goroutines.
func TestServerShutdown(t *testing.T) {
	s := newTestServer(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s.Listener = ln

	s.WG.Add(1)
	go s.acceptConnections()

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	tc := &testClient{t: t, conn: conn, r: bufio.NewReader(conn)}
	tc.login("alice", "Alice")

	s.shutdown()

	// The session gets torn down and its connection closed.
	tc.expectEOF()

	done := make(chan struct{})
	go func() {
		s.WG.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(testTimeout):
		t.Fatal("goroutines did not exit after shutdown")
	}

	require.False(t, s.clients.taken("alice"))

	// Calling shutdown again is harmless.
	s.shutdown()
}

func TestStartBindFailure(t *testing.T) {
	// Occupy a port, then ask the server to bind it.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()

	addr := ln.Addr().(*net.TCPAddr)

	s, err := newServer(Args{
		ListenHost: "127.0.0.1",
		ListenPort: uint16(addr.Port),
	})
	require.NoError(t, err)

	require.Error(t, s.start())
}
