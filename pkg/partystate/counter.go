// Package partystate holds the small pieces of mutable state a single
// party exclusively owns during a session: per-direction message
// counters and secret-buffer bookkeeping. Nothing here is shared
// between the Initiator and Responder; all inter-party coupling goes
// through pkg/channel.
package partystate

import "sync"

// Counters tracks the two independent, monotonically increasing
// per-direction sequence counters used to authenticate frames. They
// are never transmitted on the wire; both parties derive them by
// counting messages sent and received.
type Counters struct {
	mu   sync.Mutex
	send uint64
	recv uint64
}

// NextSend returns the next outbound sequence number and advances it.
func (c *Counters) NextSend() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.send
	c.send++
	return v
}

// NextRecv returns the next expected inbound sequence number and
// advances it. Callers use this to compute the expected authenticator
// for the next inbound frame before verifying it.
func (c *Counters) NextRecv() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.recv
	c.recv++
	return v
}
