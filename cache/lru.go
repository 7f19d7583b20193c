package cache

// lruNode is an element of lruList.
type lruNode[K any] struct {
	key        K
	prev, next *lruNode[K]
}

// lruList is an intrusive doubly linked list ordered from most to least
// recently used. The root node is a sentinel: root.next is the newest
// entry and root.prev the oldest.
type lruList[K any] struct {
	root lruNode[K]
	len  int
}

func newLRUList[K any]() *lruList[K] {
	l := &lruList[K]{}
	l.Clear()
	return l
}

// Len returns the number of nodes.
func (l *lruList[K]) Len() int { return l.len }

// Clear removes every node.
func (l *lruList[K]) Clear() {
	l.root.next = &l.root
	l.root.prev = &l.root
	l.len = 0
}

func (l *lruList[K]) insertFront(n *lruNode[K]) {
	n.prev = &l.root
	n.next = l.root.next
	l.root.next.prev = n
	l.root.next = n
	l.len++
}

func (l *lruList[K]) unlink(n *lruNode[K]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next = nil, nil
	l.len--
}

// PushFront adds key as the most recently used entry.
func (l *lruList[K]) PushFront(key K) *lruNode[K] {
	n := &lruNode[K]{key: key}
	l.insertFront(n)
	return n
}

// MoveToFront marks n as most recently used. Nil and detached nodes are
// ignored.
func (l *lruList[K]) MoveToFront(n *lruNode[K]) {
	if n == nil || n.next == nil || l.root.next == n {
		return
	}
	l.unlink(n)
	l.insertFront(n)
}

// Remove detaches n. Nil and detached nodes are ignored.
func (l *lruList[K]) Remove(n *lruNode[K]) {
	if n == nil || n.next == nil {
		return
	}
	l.unlink(n)
}

// Oldest returns the least recently used key.
func (l *lruList[K]) Oldest() (K, bool) {
	if l.len == 0 {
		var zero K
		return zero, false
	}
	return l.root.prev.key, true
}

// RemoveOldest detaches and returns the least recently used key.
func (l *lruList[K]) RemoveOldest() (K, bool) {
	if l.len == 0 {
		var zero K
		return zero, false
	}
	n := l.root.prev
	l.unlink(n)
	return n.key, true
}
