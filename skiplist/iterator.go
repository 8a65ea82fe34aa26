package skiplist

// Iterator is a read-only cursor over the list in key order. It holds no
// locks and may be used concurrently with the writer; keys inserted after a
// seek may or may not be observed by that pass.
//
// A fresh iterator is invalid until positioned by Seek, SeekToFirst or
// SeekToLast. Next and Prev require a valid iterator.
type Iterator struct {
	list *SkipList
	node *node
}

// Valid reports whether the iterator is positioned at an element.
func (it *Iterator) Valid() bool {
	return it.node != nil
}

// Key returns the key at the current position. The returned slice aliases
// arena memory and must not be modified. Calling Key on an invalid iterator
// panics.
func (it *Iterator) Key() []byte {
	if !it.Valid() {
		panic("skiplist: Key called on invalid iterator")
	}
	return it.node.key()
}

// Next advances to the successor on level 0, invalidating the iterator past
// the last element.
func (it *Iterator) Next() {
	it.node = it.node.next(0)
}

// Prev moves to the predecessor. Nodes carry no back links, so the
// predecessor is found by searching from the head; the iterator becomes
// invalid before the first element.
func (it *Iterator) Prev() {
	it.node = it.list.findLessThan(it.node.key())
	if it.node == it.list.head {
		it.node = nil
	}
}

// Seek positions the iterator at the first element with key >= target, or
// invalidates it if no such element exists.
func (it *Iterator) Seek(target []byte) {
	it.node = it.list.findGreaterOrEqual(target, nil)
}

// SeekToFirst positions the iterator at the smallest element, or invalidates
// it if the list is empty.
func (it *Iterator) SeekToFirst() {
	it.node = it.list.head.next(0)
}

// SeekToLast positions the iterator at the largest element, or invalidates
// it if the list is empty.
func (it *Iterator) SeekToLast() {
	it.node = it.list.findLast()
	if it.node == it.list.head {
		it.node = nil
	}
}
