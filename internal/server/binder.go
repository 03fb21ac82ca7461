package server

import (
	"net"

	"github.com/sirupsen/logrus"
)

// Bind walks the candidate addresses in order and returns the first listener
// that binds successfully, short-circuiting every remaining candidate. One
// candidate string may expand to several concrete addresses (multiple
// DNS/hosts results); they are tried in resolution order. A candidate that
// fails to resolve is skipped with a warning; a concrete address that fails
// to bind is skipped the same way. When every candidate fails, Bind returns
// nil and the caller must terminate startup cleanly.
func Bind(candidates []string, logger *logrus.Logger) net.Listener {
	for _, candidate := range candidates {
		addrs, err := expandCandidate(candidate)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"action": "bind_resolve_failed",
				"addr":   candidate,
				"error":  err.Error(),
			}).Warn("no socket address found for candidate")
			continue
		}

		for _, addr := range addrs {
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				logger.WithFields(logrus.Fields{
					"action":   "bind_failed",
					"addr":     candidate,
					"resolved": addr,
					"error":    err.Error(),
				}).Warn("failed to bind address")
				continue
			}

			logger.WithFields(logrus.Fields{
				"action":   "listening",
				"addr":     candidate,
				"resolved": ln.Addr().String(),
			}).Info("listener acquired")
			return ln
		}
	}

	return nil
}

// expandCandidate resolves one candidate string into zero or more concrete
// host:port addresses. An empty host (":8080") binds the wildcard address
// directly without a lookup.
func expandCandidate(candidate string) ([]string, error) {
	host, port, err := net.SplitHostPort(candidate)
	if err != nil {
		return nil, err
	}
	if host == "" {
		return []string{candidate}, nil
	}

	ips, err := net.LookupHost(host)
	if err != nil {
		return nil, err
	}

	addrs := make([]string, 0, len(ips))
	for _, ip := range ips {
		addrs = append(addrs, net.JoinHostPort(ip, port))
	}
	return addrs, nil
}
