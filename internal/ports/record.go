// Package ports lists the sockets a host is listening on together with the
// processes that own them.
package ports

import (
	"errors"
	"strconv"
)

type Protocol string

const (
	ProtocolTCP Protocol = "TCP"
	ProtocolUDP Protocol = "UDP"
)

var ErrUnsupportedPlatform = errors.New("port enumeration is not supported on this platform")

// Record is a single socket owned by a process. PID 0 with an empty
// ProcessName means the owner is not visible to the current user.
type Record struct {
	Protocol    Protocol
	Port        int
	PID         int
	ProcessName string
}

// Cells returns the record as table cells in column order.
func (r Record) Cells() []string {
	return []string{string(r.Protocol), strconv.Itoa(r.Port), strconv.Itoa(r.PID), r.ProcessName}
}
