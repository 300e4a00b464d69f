// Copyright © 2025 The srcscope authors

package ast

import "github.com/minio/highwayhash"

var hashKey = []byte("0123456789ABCDEF0123456789ABCDEF")

// ID returns a stable 64-bit identity for the node derived from its kind and
// qualified path.  The identity survives reopening the node from another
// file, which makes it usable as a lookup key across the whole run.
func (n *Node) ID() uint64 {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		// The key above is a valid 32 byte constant; New64 cannot fail.
		panic(err)
	}
	_, _ = h.Write([]byte(n.Kind.String()))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(n.Path))
	return h.Sum64()
}
