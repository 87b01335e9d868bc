package discovery

import (
	"context"
	"fmt"
	"time"

	"github.com/grandcat/zeroconf"

	"github.com/dmitrijs2005/stgmsg/internal/common"
)

// ServiceRecord is a discovered server's network location. It is transient
// client-side state, valid only while the record keeps being refreshed
// within the liveness window.
type ServiceRecord struct {
	Name     string
	Host     string
	Port     int
	LastSeen time.Time
}

func (r ServiceRecord) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Browse enumerates relay servers visible on the local network, blocking the
// calling goroutine for at most timeout. It is restartable and returns an
// empty slice when nothing was found. A resolver that cannot be constructed
// (no usable network) yields common.ErrDiscoveryUnavailable.
func Browse(ctx context.Context, timeout time.Duration) ([]ServiceRecord, error) {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDiscoveryUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	if err := resolver.Browse(ctx, common.ServiceType, common.ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDiscoveryUnavailable, err)
	}

	var records []ServiceRecord
	for entry := range entries {
		rec, ok := entryToRecord(entry, time.Now())
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

func entryToRecord(entry *zeroconf.ServiceEntry, now time.Time) (ServiceRecord, bool) {
	if entry == nil || len(entry.AddrIPv4) == 0 {
		return ServiceRecord{}, false
	}
	return ServiceRecord{
		Name:     entry.Instance,
		Host:     entry.AddrIPv4[0].String(),
		Port:     entry.Port,
		LastSeen: now,
	}, true
}
