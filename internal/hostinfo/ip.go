// Package hostinfo identifies the machine the service runs on.
package hostinfo

import (
	"fmt"
	"net"
)

// probeAddr is only used to pick a route. UDP "connect" sends no packets.
const probeAddr = "8.8.8.8:80"

// OutboundIP returns the local address the host would use to reach the
// internet.
func OutboundIP() (string, error) {
	return outboundIP(probeAddr)
}

func outboundIP(addr string) (string, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return "", fmt.Errorf("resolve outbound ip: %w", err)
	}
	defer conn.Close()

	local, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return "", fmt.Errorf("resolve outbound ip: unexpected local address %T", conn.LocalAddr())
	}
	return local.IP.String(), nil
}
