package probe

import (
	"context"
	"time"

	probing "github.com/prometheus-community/pro-bing"
	"github.com/sirupsen/logrus"
)

// Pinger checks whether a host answers a reachability probe within a
// bounded timeout. The verdict is a plain boolean: host-unreachable and
// probe-mechanism failures both report false, the cause is only logged.
type Pinger interface {
	Probe(ctx context.Context, host string, timeout time.Duration) bool
}

// ICMPPinger probes hosts with a single ICMP echo request
type ICMPPinger struct {
	logger *logrus.Entry

	// Privileged switches to raw ICMP sockets; the default UDP mode
	// works without CAP_NET_RAW on Linux.
	Privileged bool
}

// NewICMPPinger creates an ICMP pinger
func NewICMPPinger(logger *logrus.Entry) *ICMPPinger {
	return &ICMPPinger{
		logger: logger.WithField("component", "probe"),
	}
}

// Probe sends one echo request to host and waits at most timeout
func (p *ICMPPinger) Probe(ctx context.Context, host string, timeout time.Duration) bool {
	pinger, err := probing.NewPinger(host)
	if err != nil {
		p.logger.Debugf("Probe setup failed for %s: %v", host, err)
		return false
	}

	pinger.Count = 1
	pinger.Timeout = timeout
	pinger.SetPrivileged(p.Privileged)

	if err := pinger.RunWithContext(ctx); err != nil {
		p.logger.Debugf("Probe failed for %s: %v", host, err)
		return false
	}

	reachable := pinger.Statistics().PacketsRecv > 0
	p.logger.Debugf("Probe of %s: reachable=%v", host, reachable)
	return reachable
}
