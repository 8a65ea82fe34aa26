package skiplist

import (
	"sync/atomic"
	"unsafe"
)

const (
	// maxTowerHeight caps the forward-link tower of any node. Config.MaxHeight
	// may tune the effective maximum downward but never above this.
	maxTowerHeight = 20

	maxNodeSize = int(unsafe.Sizeof(node{}))
	linkSize    = int(unsafe.Sizeof((*node)(nil)))
)

// node is laid out directly in arena memory: a fixed header followed by a
// tower of forward links truncated to the node's height. The struct declares
// the tower at its full cap, but each node is allocated only large enough
// for the links it owns, so slots at or above height must never be touched.
//
// key and height are immutable after construction. Tower slots are written
// with plain stores only while the node is still unreachable; once published
// they are accessed through atomic loads and stores exclusively.
type node struct {
	keyPtr *byte
	keyLen uint32
	height uint32
	tower  [maxTowerHeight]*node
}

func (n *node) key() []byte {
	return unsafe.Slice(n.keyPtr, n.keyLen)
}

// next loads the forward link at level with acquire semantics, pairing with
// the release store in setNext so a fully constructed node is observed.
func (n *node) next(level int) *node {
	return (*node)(atomic.LoadPointer((*unsafe.Pointer)(unsafe.Pointer(&n.tower[level]))))
}

// setNext publishes the forward link at level with release semantics.
func (n *node) setNext(level int, x *node) {
	atomic.StorePointer((*unsafe.Pointer)(unsafe.Pointer(&n.tower[level])), unsafe.Pointer(x))
}

// nextRelaxed reads a link with a plain load. Valid only on the writer, which
// is the sole mutator of tower slots.
func (n *node) nextRelaxed(level int) *node {
	return n.tower[level]
}

// setNextRelaxed writes a link with a plain store. Valid only while the node
// is unreachable by readers.
func (n *node) setNextRelaxed(level int, x *node) {
	n.tower[level] = x
}

// nodeSize returns the allocation size for a node of the given height: the
// full struct minus the unused tail of the tower.
func nodeSize(height int) int {
	return maxNodeSize - (maxTowerHeight-height)*linkSize
}
