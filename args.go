package main

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"
)

const defaultListenHost = "127.0.0.1"
const defaultListenPort = 6991

// Args are command line arguments.
type Args struct {
	ListenHost string
	ListenPort uint16
	ConfigFile string
	Debug      bool
}

// newRootCommand builds the CLI. The listen IP and port are optional
// positional arguments.
func newRootCommand(run func(Args) error) *cobra.Command {
	args := Args{
		ListenHost: defaultListenHost,
		ListenPort: defaultListenPort,
	}

	cmd := &cobra.Command{
		Use:          "iris [ip] [port]",
		Short:        "iris is a small IRC style chat relay server.",
		Args:         cobra.MaximumNArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, positional []string) error {
			if len(positional) >= 1 {
				if net.ParseIP(positional[0]) == nil {
					return fmt.Errorf("invalid listen IP: %s", positional[0])
				}
				args.ListenHost = positional[0]
			}

			if len(positional) >= 2 {
				port, err := strconv.ParseUint(positional[1], 10, 16)
				if err != nil {
					return fmt.Errorf("invalid port: %s: %s", positional[1], err)
				}
				args.ListenPort = uint16(port)
			}

			return run(args)
		},
	}

	cmd.Flags().StringVar(&args.ConfigFile, "config", "",
		"Optional configuration file.")
	cmd.Flags().BoolVar(&args.Debug, "debug", false, "Enable debug logging.")

	return cmd
}
