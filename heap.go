package logmerge

// sourceHeap is a min-heap of active source states ordered by the timestamp
// of their current head entry. Equal timestamps fall back to the stable
// source index so extraction order is deterministic.
type sourceHeap []*sourceState

func (h sourceHeap) Len() int { return len(h) }

func (h sourceHeap) Less(i, j int) bool {
	ti, tj := h[i].head.Timestamp, h[j].head.Timestamp
	if ti.Equal(tj) {
		return h[i].index < h[j].index
	}
	return ti.Before(tj)
}

func (h sourceHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *sourceHeap) Push(x any) { *h = append(*h, x.(*sourceState)) }

func (h *sourceHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}
