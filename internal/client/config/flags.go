package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/stgmsg/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   host:port of the relay server (empty = discover via mDNS)
//	-w int      mDNS browse timeout in seconds
//	-k string   shared secret for message key derivation
//
// The function filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-w", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port of the relay server")
	browseTimeout := fs.Int("w", int(cfg.BrowseTimeout.Seconds()), "mDNS browse timeout (in seconds)")
	fs.StringVar(&cfg.SharedSecret, "k", cfg.SharedSecret, "shared secret for message encryption")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.BrowseTimeout = time.Duration(*browseTimeout) * time.Second
}
