// Package containers implements generic intrusive data structures shared
// across the search components: a binary heap whose items know their own
// position so that decrease-key and arbitrary removal run in O(log n).
package containers

// Item is embedded (or implemented) by anything stored in a Heap. The heap
// maintains the index via SetHeapIndex on every push and swap, and sets it
// to -1 when the item is popped or removed; callers never set it directly.
type Item interface {
	HeapIndex() int
	SetHeapIndex(i int)
}

// Less reports whether a should be popped before b. Implementations encode
// the full tie-break chain for the node kind (see internal/lowlevel,
// internal/epea, internal/cbs).
type Less[T Item] func(a, b T) bool

// Heap is a binary min-heap over items of type T, ordered by a Less
// function supplied at construction. Each item's HeapIndex is kept in sync
// so DecreaseKey and Remove can locate it without a linear scan.
type Heap[T Item] struct {
	items []T
	less  Less[T]
}

// New creates an empty heap using less for ordering.
func New[T Item](less Less[T]) *Heap[T] {
	return &Heap[T]{less: less}
}

// Len returns the number of items in the heap.
func (h *Heap[T]) Len() int { return len(h.items) }

// Peek returns the minimum item without removing it. Panics if empty.
func (h *Heap[T]) Peek() T {
	if len(h.items) == 0 {
		panic("containers: Peek on empty heap")
	}
	return h.items[0]
}

// Push inserts an item and restores the heap invariant.
func (h *Heap[T]) Push(x T) {
	x.SetHeapIndex(len(h.items))
	h.items = append(h.items, x)
	h.siftUp(len(h.items) - 1)
}

// Pop removes and returns the minimum item. Panics if empty.
func (h *Heap[T]) Pop() T {
	if len(h.items) == 0 {
		panic("containers: Pop on empty heap")
	}
	min := h.items[0]
	last := len(h.items) - 1
	h.swap(0, last)
	min.SetHeapIndex(-1)
	h.items = h.items[:last]
	if last > 0 {
		h.siftDown(0)
	}
	return min
}

// DecreaseKey re-heapifies after x's key has been lowered in place
// (x.HeapIndex() must still be valid and point at x's current slot).
func (h *Heap[T]) DecreaseKey(x T) {
	h.siftUp(x.HeapIndex())
}

// Fix re-heapifies after x's key changed in either direction.
func (h *Heap[T]) Fix(x T) {
	i := x.HeapIndex()
	if !h.siftUp(i) {
		h.siftDown(i)
	}
}

// Remove deletes x from the heap in O(log n). x must currently be a member.
func (h *Heap[T]) Remove(x T) {
	i := x.HeapIndex()
	last := len(h.items) - 1
	if i != last {
		h.swap(i, last)
	}
	x.SetHeapIndex(-1)
	h.items = h.items[:last]
	if i < len(h.items) {
		if !h.siftUp(i) {
			h.siftDown(i)
		}
	}
}

func (h *Heap[T]) swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.items[i].SetHeapIndex(i)
	h.items[j].SetHeapIndex(j)
}

// siftUp bubbles the item at i toward the root; reports whether it moved.
func (h *Heap[T]) siftUp(i int) bool {
	moved := false
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(h.items[i], h.items[parent]) {
			break
		}
		h.swap(i, parent)
		i = parent
		moved = true
	}
	return moved
}

// siftDown pushes the item at i toward the leaves; reports whether it moved.
func (h *Heap[T]) siftDown(i int) bool {
	n := len(h.items)
	moved := false
	for {
		left, right := 2*i+1, 2*i+2
		smallest := i
		if left < n && h.less(h.items[left], h.items[smallest]) {
			smallest = left
		}
		if right < n && h.less(h.items[right], h.items[smallest]) {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.swap(i, smallest)
		i = smallest
		moved = true
	}
	return moved
}
