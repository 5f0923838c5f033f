package runtime

import "container/heap"

// entry is a frontier item. seq is the insertion counter used to break ties
// between equal f-scores, so the ordering is total and deterministic.
type entry[S any] struct {
	f     float64
	seq   uint64
	key   string
	state S
}

// queue implements heap.Interface over frontier entries.
type queue[S any] []*entry[S]

func (q queue[S]) Len() int { return len(q) }

func (q queue[S]) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].seq < q[j].seq
}

func (q queue[S]) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue[S]) Push(x any) {
	*q = append(*q, x.(*entry[S]))
}

func (q *queue[S]) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil // avoid memory leak
	*q = old[:n-1]
	return item
}

// frontier is a min-priority queue on f with FIFO tie-breaking.
// A state may have several stale entries; callers skip them on pop.
type frontier[S any] struct {
	items queue[S]
	seq   uint64
}

func (fr *frontier[S]) Len() int { return fr.items.Len() }

func (fr *frontier[S]) push(f float64, key string, state S) {
	heap.Push(&fr.items, &entry[S]{f: f, seq: fr.seq, key: key, state: state})
	fr.seq++
}

func (fr *frontier[S]) pop() *entry[S] {
	return heap.Pop(&fr.items).(*entry[S])
}
