package cli

import (
	"context"
	"log"
)

// Discover re-runs mDNS resolution and reconnects to the chosen server. The
// current session, if any, is dropped.
func (a *App) Discover(ctx context.Context) error {

	addr, err := a.chooseServer(ctx)
	if err != nil {
		log.Printf("Discovery failed: %v\n", err)
		return err
	}

	a.config.ServerEndpointAddr = addr
	if err := a.connect(ctx); err != nil {
		log.Printf("Reconnect failed: %v\n", err)
		return err
	}

	printlnFn("Connected to " + addr)
	return nil
}
