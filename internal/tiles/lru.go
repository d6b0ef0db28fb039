package tiles

// residentNode is a node in the texture residency list.
// It stores the tile key for O(1) deletion from the resident map.
type residentNode struct {
	key  Key
	prev *residentNode
	next *residentNode
}

// residencyList orders resident tile textures by last use.
// The head is the most recently used, the tail the next to evict.
// The list is not thread-safe; Manager only touches it on the render thread.
type residencyList struct {
	head *residentNode
	tail *residentNode
	len  int
}

// Len returns the number of resident textures.
func (l *residencyList) Len() int {
	return l.len
}

// PushFront adds a tile as most recently used and returns its node.
func (l *residencyList) PushFront(key Key) *residentNode {
	node := &residentNode{key: key}
	l.linkFront(node)
	return node
}

// MoveToFront marks an existing node as most recently used.
func (l *residencyList) MoveToFront(node *residentNode) {
	if node == nil || node == l.head {
		return
	}
	l.unlink(node)
	l.linkFront(node)
}

// RemoveOldest removes and returns the least recently used tile.
// Returns false if the list is empty.
func (l *residencyList) RemoveOldest() (Key, bool) {
	if l.tail == nil {
		return Key{}, false
	}
	node := l.tail
	l.unlink(node)
	return node.key, true
}

// Clear removes all nodes.
func (l *residencyList) Clear() {
	l.head = nil
	l.tail = nil
	l.len = 0
}

func (l *residencyList) linkFront(node *residentNode) {
	node.prev = nil
	node.next = l.head
	if l.head != nil {
		l.head.prev = node
	}
	l.head = node
	if l.tail == nil {
		l.tail = node
	}
	l.len++
}

// unlink removes a node from the list and clears its links.
func (l *residencyList) unlink(node *residentNode) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}

	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}

	node.prev = nil
	node.next = nil
	l.len--
}
