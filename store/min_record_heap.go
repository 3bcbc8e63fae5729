package store

import "container/heap"

// heapEntry is the head of one shard's sorted run during a merge.
type heapEntry struct {
	record Record
	run    int
	pos    int
}

type MinRecordHeap []heapEntry

func (h MinRecordHeap) Len() int {
	return len(h)
}

func (h MinRecordHeap) Less(i, j int) bool {
	return h[i].record.Key < h[j].record.Key
}

func (h MinRecordHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *MinRecordHeap) Push(val interface{}) {
	*h = append(*h, val.(heapEntry))
}

func (h *MinRecordHeap) Pop() interface{} {
	heapDerefrenced := *h

	size := len(heapDerefrenced)
	val := heapDerefrenced[size-1]
	*h = heapDerefrenced[:size-1]

	return val
}

// mergeRuns k-way merges runs that are each sorted by key into one sorted slice.
func mergeRuns(runs [][]Record) []Record {
	h := &MinRecordHeap{}
	total := 0
	for i, run := range runs {
		total += len(run)
		if len(run) > 0 {
			*h = append(*h, heapEntry{record: run[0], run: i})
		}
	}
	heap.Init(h)

	merged := make([]Record, 0, total)
	for h.Len() > 0 {
		top := heap.Pop(h).(heapEntry)
		merged = append(merged, top.record)
		if next := top.pos + 1; next < len(runs[top.run]) {
			heap.Push(h, heapEntry{record: runs[top.run][next], run: top.run, pos: next})
		}
	}
	return merged
}
