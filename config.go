package main

import (
	"fmt"
	"strconv"

	"github.com/horgh/config"
)

// Config holds a server's configuration.
type Config struct {
	ListenHost string
	ListenPort uint16

	// Appears as the prefix on server-sourced replies.
	ServerName string

	// Message of the day. Blank means we send none. May contain newlines;
	// each line goes out as its own 372.
	MOTD string

	MaxNickLength    int
	MaxChannelLength int
}

const defaultServerName = "iris.local"

// 50 from RFC, for both.
const defaultMaxNickLength = 50
const defaultMaxChannelLength = 50

func defaultConfig() Config {
	return Config{
		ListenHost:       defaultListenHost,
		ListenPort:       defaultListenPort,
		ServerName:       defaultServerName,
		MaxNickLength:    defaultMaxNickLength,
		MaxChannelLength: defaultMaxChannelLength,
	}
}

// checkAndParseConfig loads the configuration file and applies it on top of
// the defaults. Every key is optional. Unknown keys are an error so typos
// don't silently configure nothing.
func (s *Server) checkAndParseConfig(file string) error {
	configMap, err := config.ReadStringMap(file)
	if err != nil {
		return err
	}

	for key, value := range configMap {
		switch key {
		case "server-name":
			s.Config.ServerName = value

		case "motd":
			s.Config.MOTD = value

		case "max-nick-length":
			n, err := strconv.ParseInt(value, 10, 32)
			if err != nil || n <= 0 {
				return fmt.Errorf("max nick length is not valid: %s", value)
			}
			s.Config.MaxNickLength = int(n)

		case "max-channel-length":
			n, err := strconv.ParseInt(value, 10, 32)
			if err != nil || n <= 0 {
				return fmt.Errorf("max channel length is not valid: %s", value)
			}
			s.Config.MaxChannelLength = int(n)

		default:
			return fmt.Errorf("unknown configuration key: %s", key)
		}
	}

	return nil
}
