// Copyright © 2025 The srcscope authors

package deps

import (
	"encoding/binary"

	"github.com/minio/highwayhash"
)

var hashKey = []byte("srcscope-depgraph-fingerprint-00")

// Fingerprint returns a stable hash of the graph's shape.  Two runs over
// the same sources produce the same fingerprint, which makes it cheap to
// detect whether the dependency structure of a project changed.
func (g *Graph) Fingerprint() uint64 {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		// the key is a 32-byte constant
		panic(err)
	}
	var buf [8]byte
	writeID := func(id uint64) {
		binary.BigEndian.PutUint64(buf[:], id)
		h.Write(buf[:])
	}
	for _, t := range g.Types {
		writeID(t.ID())
	}
	for _, r := range g.Rels {
		writeID(r.From.ID())
		writeID(r.To.ID())
		writeID(uint64(r.Kind))
	}
	return h.Sum64()
}
