package routing

import (
	"container/heap"
	"math"
)

// PriorityQueueItem is one heap entry. Index is maintained by the heap
// so DecreaseKey can Fix in place instead of pushing duplicates.
type PriorityQueueItem struct {
	NodeID   int64
	Priority float64
	Index    int
}

type PriorityQueue []*PriorityQueueItem

func (pq PriorityQueue) Len() int { return len(pq) }

func (pq PriorityQueue) Less(i, j int) bool {
	return pq[i].Priority < pq[j].Priority
}

func (pq PriorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *PriorityQueue) Push(x interface{}) {
	item := x.(*PriorityQueueItem)
	item.Index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.Index = -1
	*pq = old[:n-1]
	return item
}

// ComputeShortestPathsFrom runs Dijkstra from the source and returns the
// full distance and predecessor maps, so many destination queries can
// share a single pass.
func (g *Graph) ComputeShortestPathsFrom(sourceID int64) (map[int64]float64, map[int64]int64) {
	distances := make(map[int64]float64)
	previous := make(map[int64]int64)

	if _, ok := g.Nodes[sourceID]; !ok {
		return distances, previous
	}

	items := make(map[int64]*PriorityQueueItem)

	pq := &PriorityQueue{}
	heap.Init(pq)

	start := &PriorityQueueItem{NodeID: sourceID, Priority: 0}
	heap.Push(pq, start)
	items[sourceID] = start
	distances[sourceID] = 0

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*PriorityQueueItem)
		current := item.NodeID
		delete(items, current)

		node, ok := g.Nodes[current]
		if !ok {
			continue
		}

		for neighborID, edgeDist := range node.Neighbors {
			tentative := distances[current] + edgeDist

			old, seen := distances[neighborID]
			if seen && tentative >= old {
				continue
			}

			distances[neighborID] = tentative
			previous[neighborID] = current

			if existing, inQueue := items[neighborID]; inQueue {
				// decrease-key
				existing.Priority = tentative
				heap.Fix(pq, existing.Index)
			} else {
				entry := &PriorityQueueItem{NodeID: neighborID, Priority: tentative}
				heap.Push(pq, entry)
				items[neighborID] = entry
			}
		}
	}

	return distances, previous
}

// FindShortestPath returns the node id sequence from start to end, or
// nil when no path exists. Unreachable is an expected outcome, not an
// error.
func (g *Graph) FindShortestPath(startID, endID int64) []int64 {
	if startID == endID {
		if _, ok := g.Nodes[startID]; ok {
			return []int64{startID}
		}
		return nil
	}

	_, previous := g.ComputeShortestPathsFrom(startID)
	return ReconstructPath(startID, endID, previous)
}

// ReconstructPath walks predecessor links from end back to start.
// Returns nil if end was never reached.
func ReconstructPath(startID, endID int64, previous map[int64]int64) []int64 {
	if startID == endID {
		return []int64{startID}
	}
	if _, ok := previous[endID]; !ok {
		return nil
	}

	var path []int64
	current := endID
	for {
		path = append(path, current)
		if current == startID {
			break
		}
		prev, ok := previous[current]
		if !ok {
			return nil
		}
		current = prev
	}

	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// PathDistance sums the distance map entry for the end of a path, or
// +Inf when absent.
func PathDistance(endID int64, distances map[int64]float64) float64 {
	if d, ok := distances[endID]; ok {
		return d
	}
	return math.Inf(1)
}
