package logmerge

import (
	"container/heap"
	"testing"
	"time"

	"github.com/creastat/logmerge/core"
)

func TestSourceHeapOrdering(t *testing.T) {
	h := &sourceHeap{}
	heap.Init(h)
	for i, ts := range []int64{9, 3, 7, 1, 5} {
		heap.Push(h, &sourceState{
			index: i,
			head:  core.Entry{Timestamp: time.Unix(ts, 0)},
		})
	}

	var got []int64
	for h.Len() > 0 {
		st := heap.Pop(h).(*sourceState)
		got = append(got, st.head.Timestamp.Unix())
	}
	want := []int64{1, 3, 5, 7, 9}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pop order = %v, want %v", got, want)
		}
	}
}

func TestSourceHeapTieBreakBySourceIndex(t *testing.T) {
	h := &sourceHeap{}
	heap.Init(h)
	ts := time.Unix(42, 0)
	for _, idx := range []int{2, 0, 1} {
		heap.Push(h, &sourceState{index: idx, head: core.Entry{Timestamp: ts}})
	}

	for want := 0; h.Len() > 0; want++ {
		st := heap.Pop(h).(*sourceState)
		if st.index != want {
			t.Fatalf("popped index %d, want %d", st.index, want)
		}
	}
}
