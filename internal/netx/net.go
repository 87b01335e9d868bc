// Package netx contains small networking helpers shared by the server and
// the discovery beacon.
package netx

import (
	"net"
)

// LocalIP returns the first non-loopback IPv4 address of this host.
//
// It opens a UDP "connection" to a public address to let the kernel pick the
// outbound interface; no packet is actually sent. If that fails (machine is
// offline), it falls back to scanning the interface list.
func LocalIP() (net.IP, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err == nil {
		defer conn.Close()
		if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
			if ip := addr.IP.To4(); ip != nil && !ip.IsLoopback() {
				return ip, nil
			}
		}
	}

	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil, err
	}
	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if !ok {
			continue
		}
		if ip := ipnet.IP.To4(); ip != nil && !ip.IsLoopback() {
			return ip, nil
		}
	}

	// Loopback is better than nothing: the relay stays reachable locally.
	return net.IPv4(127, 0, 0, 1), nil
}
