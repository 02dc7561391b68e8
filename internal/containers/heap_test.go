package containers

import (
	"math/rand"
	"sort"
	"testing"
)

type intItem struct {
	v   int
	idx int
}

func (n *intItem) HeapIndex() int      { return n.idx }
func (n *intItem) SetHeapIndex(i int)  { n.idx = i }

func lessInt(a, b *intItem) bool { return a.v < b.v }

func TestHeapSortsAscending(t *testing.T) {
	h := New(lessInt)
	values := []int{5, 1, 9, 3, 7, 2, 8, 0, 6, 4}
	for _, v := range values {
		h.Push(&intItem{v: v})
	}

	sorted := append([]int{}, values...)
	sort.Ints(sorted)

	for _, want := range sorted {
		got := h.Pop()
		if got.v != want {
			t.Fatalf("got %d, want %d", got.v, want)
		}
	}
	if h.Len() != 0 {
		t.Fatalf("expected empty heap, len=%d", h.Len())
	}
}

func TestHeapDecreaseKey(t *testing.T) {
	h := New(lessInt)
	a := &intItem{v: 10}
	b := &intItem{v: 20}
	c := &intItem{v: 30}
	h.Push(a)
	h.Push(b)
	h.Push(c)

	c.v = 1
	h.DecreaseKey(c)

	if got := h.Pop(); got != c {
		t.Fatalf("expected c to be minimum after decrease-key, got v=%d", got.v)
	}
}

func TestHeapRemoveArbitrary(t *testing.T) {
	h := New(lessInt)
	items := make([]*intItem, 0, 20)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		it := &intItem{v: rng.Intn(100)}
		items = append(items, it)
		h.Push(it)
	}

	// Remove a handful of items from the middle and verify the rest still
	// pop in sorted order.
	toRemove := []*intItem{items[3], items[7], items[11]}
	remaining := map[*intItem]bool{}
	for _, it := range items {
		remaining[it] = true
	}
	for _, it := range toRemove {
		h.Remove(it)
		delete(remaining, it)
	}

	var want []int
	for it := range remaining {
		want = append(want, it.v)
	}
	sort.Ints(want)

	var got []int
	for h.Len() > 0 {
		got = append(got, h.Pop().v)
	}
	sort.Ints(got)

	if len(got) != len(want) {
		t.Fatalf("len mismatch: got %d want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("mismatch at %d: got %d want %d", i, got[i], want[i])
		}
	}
}

func TestHeapFixAfterIncrease(t *testing.T) {
	h := New(lessInt)
	a := &intItem{v: 1}
	b := &intItem{v: 2}
	h.Push(a)
	h.Push(b)

	a.v = 100
	h.Fix(a)

	if got := h.Pop(); got != b {
		t.Fatalf("expected b first after fixing a upward, got v=%d", got.v)
	}
}
