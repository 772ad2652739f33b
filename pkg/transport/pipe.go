// Package transport supplies the byte-stream collaborator that
// pkg/channel authenticates on top of: an in-memory duplex pipe for
// tests and the in-process two-party demo, and a thin TCP helper for
// real deployments. Neither is part of the cryptographic core; both
// exist so the same channel code runs unmodified in-process or over a
// socket, behind a common net.Conn-shaped interface.
package transport

import "net"

// NewInMemoryPair returns two connected net.Conn endpoints backed by
// an in-memory pipe, one for each party. Writes on one side become
// available to Read on the other; this is the transport used by
// pkg/qkd.RunPair for in-process end-to-end tests.
func NewInMemoryPair() (a, b net.Conn) {
	return net.Pipe()
}
