// Package discovery advertises relay servers on the local network over mDNS
// and lets clients enumerate them without a configured address. It is the
// Go side of the zeroconf service type "_stgmsg._tcp".
package discovery

import (
	"context"
	"fmt"
	"sync"

	"github.com/grandcat/zeroconf"

	"github.com/dmitrijs2005/stgmsg/internal/common"
	"github.com/dmitrijs2005/stgmsg/internal/logging"
)

// Beacon advertises a single server instance. It runs on its own lifecycle,
// decoupled from request handling: the owning app starts it in a goroutine
// and must guarantee Stop on every exit path so no stale record lingers
// beyond the mDNS TTL.
type Beacon struct {
	name   string
	port   int
	logger logging.Logger

	mu  sync.Mutex
	srv *zeroconf.Server
}

func NewBeacon(name string, port int, logger logging.Logger) *Beacon {
	return &Beacon{
		name:   name,
		port:   port,
		logger: logger.With("module", "discovery_beacon"),
	}
}

// Advertise registers the service record and keeps it published until the
// context is cancelled or Stop is called. Re-advertising under the same name
// replaces the prior registration.
func (b *Beacon) Advertise(ctx context.Context) error {
	b.mu.Lock()
	if b.srv != nil {
		b.srv.Shutdown()
		b.srv = nil
	}

	srv, err := zeroconf.Register(b.name, common.ServiceType, common.ServiceDomain, b.port, []string{"txtv=1"}, nil)
	if err != nil {
		b.mu.Unlock()
		return fmt.Errorf("%w: %v", common.ErrDiscoveryUnavailable, err)
	}
	b.srv = srv
	b.mu.Unlock()

	b.logger.Info(ctx, "Advertising service", "name", b.name, "port", b.port)

	go func() {
		<-ctx.Done()
		b.Stop()
	}()

	return nil
}

// Stop withdraws the advertisement. Safe to call multiple times and safe to
// call on a beacon that never advertised.
func (b *Beacon) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.srv == nil {
		return
	}
	b.srv.Shutdown()
	b.srv = nil
	b.logger.Info(context.Background(), "Advertisement withdrawn", "name", b.name)
}
