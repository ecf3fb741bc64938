package main

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	tests := []struct {
		args    []string
		host    string
		port    uint16
		wantErr bool
	}{
		{nil, "127.0.0.1", 6991, false},
		{[]string{"0.0.0.0"}, "0.0.0.0", 6991, false},
		{[]string{"10.0.0.1", "6667"}, "10.0.0.1", 6667, false},
		{[]string{"::1", "6667"}, "::1", 6667, false},
		{[]string{"not-an-ip"}, "", 0, true},
		{[]string{"127.0.0.1", "notaport"}, "", 0, true},
		{[]string{"127.0.0.1", "99999"}, "", 0, true},
		{[]string{"127.0.0.1", "6667", "extra"}, "", 0, true},
	}

	for _, test := range tests {
		var got Args
		ran := false

		cmd := newRootCommand(func(a Args) error {
			got = a
			ran = true
			return nil
		})
		cmd.SetArgs(test.args)
		cmd.SetOut(io.Discard)
		cmd.SetErr(io.Discard)

		err := cmd.Execute()
		if test.wantErr {
			require.Error(t, err, "args %v", test.args)
			continue
		}

		require.NoError(t, err, "args %v", test.args)
		require.True(t, ran)
		require.Equal(t, test.host, got.ListenHost)
		require.Equal(t, test.port, got.ListenPort)
	}
}

func TestRootCommandFlags(t *testing.T) {
	var got Args

	cmd := newRootCommand(func(a Args) error {
		got = a
		return nil
	})
	cmd.SetArgs([]string{"--config", "/etc/iris.conf", "--debug"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	require.NoError(t, cmd.Execute())
	require.Equal(t, "/etc/iris.conf", got.ConfigFile)
	require.True(t, got.Debug)
	require.Equal(t, defaultListenHost, got.ListenHost)
	require.Equal(t, uint16(defaultListenPort), got.ListenPort)
}
