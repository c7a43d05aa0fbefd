package ports

import (
	"context"
	"fmt"
	goruntime "runtime"

	"github.com/shirou/gopsutil/v3/common"
	psnet "github.com/shirou/gopsutil/v3/net"
	psproc "github.com/shirou/gopsutil/v3/process"
)

// tcpListen is the status gopsutil reports for a listening TCP socket.
const tcpListen = "LISTEN"

// Options tunes where the enumerator reads socket tables from.
type Options struct {
	// ProcRoot points the linux backend at another procfs mount, e.g. a
	// host /proc bind-mounted into a container. Empty means /proc.
	ProcRoot string
	// GOOS overrides runtime.GOOS, mostly for tests.
	GOOS string
}

type (
	connectionsFunc func(ctx context.Context, kind string) ([]psnet.ConnectionStat, error)
	processNameFunc func(ctx context.Context, pid int32) (string, error)
)

// Enumerator produces the current set of listening sockets. It keeps no
// state between calls; every Enumerate queries the OS again.
type Enumerator struct {
	procRoot string
	goos     string

	connections connectionsFunc
	processName processNameFunc
}

func NewEnumerator(opts Options) *Enumerator {
	if opts.GOOS == "" {
		opts.GOOS = goruntime.GOOS
	}
	return &Enumerator{
		procRoot:    opts.ProcRoot,
		goos:        opts.GOOS,
		connections: psnet.ConnectionsWithContext,
		processName: lookupProcessName,
	}
}

func lookupProcessName(ctx context.Context, pid int32) (string, error) {
	p, err := psproc.NewProcessWithContext(ctx, pid)
	if err != nil {
		return "", err
	}
	return p.NameWithContext(ctx)
}

// supported lists the platforms where gopsutil can map sockets to pids.
func supported(goos string) bool {
	switch goos {
	case "linux", "darwin", "freebsd", "openbsd", "windows":
		return true
	}
	return false
}

// Enumerate returns every TCP socket in LISTEN state followed by every UDP
// socket bound to a local port.
//
// When an owning process cannot be resolved the walk stops and the records
// collected so far are returned along with the error, so callers can still
// show a partial table.
func (e *Enumerator) Enumerate(ctx context.Context) ([]Record, error) {
	records := []Record{}
	if !supported(e.goos) {
		return records, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, e.goos)
	}

	if e.procRoot != "" {
		ctx = context.WithValue(ctx, common.EnvKey, common.EnvMap{common.HostProcEnvKey: e.procRoot})
	}

	names := map[int32]string{}
	queries := []struct {
		kind     string
		protocol Protocol
	}{
		{"tcp", ProtocolTCP},
		{"udp", ProtocolUDP},
	}

	for _, q := range queries {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		conns, err := e.connections(ctx, q.kind)
		if err != nil {
			return records, fmt.Errorf("list %s sockets: %w", q.protocol, err)
		}

		for _, c := range conns {
			if !keep(q.protocol, c) {
				continue
			}

			rec := Record{Protocol: q.protocol, Port: int(c.Laddr.Port)}
			if c.Pid > 0 {
				name, cached := names[c.Pid]
				if !cached {
					name, err = e.processName(ctx, c.Pid)
					if err != nil {
						return records, fmt.Errorf("resolve process %d for %s port %d: %w", c.Pid, q.protocol, rec.Port, err)
					}
					names[c.Pid] = name
				}
				rec.PID = int(c.Pid)
				rec.ProcessName = name
			}

			records = append(records, rec)
		}
	}
	return records, nil
}

// keep drops sockets without a local port, which were created but never
// bound, and TCP sockets that are not listening.
func keep(protocol Protocol, c psnet.ConnectionStat) bool {
	if c.Laddr.Port == 0 {
		return false
	}
	if protocol == ProtocolTCP && c.Status != tcpListen {
		return false
	}
	return true
}
