// Package search implements the iterative beam search tree-search driver
// (C6) described in spec.md §4.5: a bounded-width best-first search over
// internal/branching.Scheme, run repeatedly at growing queue sizes by
// internal/orchestrator's strategy workers.
package search

import (
	"container/heap"
	"context"

	"github.com/fontanf/packingsolver-go/internal/branching"
)

// nodeQueue is a bounded max-size priority queue ordered by ascending
// guide value (lower is better, so the queue pops the *worst* node first
// when it must evict to respect QueueSize — this is the classic beam-
// search trim rule).
type nodeQueue struct {
	nodes []*branching.Node
	guide branching.GuideFunc
}

func (q *nodeQueue) Len() int { return len(q.nodes) }
func (q *nodeQueue) Less(i, j int) bool {
	return q.guide(q.nodes[i]) > q.guide(q.nodes[j]) // max-heap on guide value
}
func (q *nodeQueue) Swap(i, j int) { q.nodes[i], q.nodes[j] = q.nodes[j], q.nodes[i] }
func (q *nodeQueue) Push(x any)    { q.nodes = append(q.nodes, x.(*branching.Node)) }
func (q *nodeQueue) Pop() any {
	old := q.nodes
	n := len(old)
	item := old[n-1]
	q.nodes = old[:n-1]
	return item
}

// BeamResult is one beam search's outcome.
type BeamResult struct {
	Best         *branching.Node
	Optimal      bool
	NodesVisited int
}

// Beam runs a single bounded-width best-first search from root, exploring
// at most queueSize nodes concurrently resident in the frontier, using
// guide to rank candidates (the lowest guide value is expanded first) and
// directions to constrain new-bin openings. It stops when ctx is done or
// the frontier empties; Optimal is set only when the frontier emptied
// without any node having been trimmed to respect queueSize.
func Beam(ctx context.Context, scheme *branching.Scheme, guide branching.GuideFunc, directions []branching.Direction, queueSize int) BeamResult {
	explored := &nodeQueue{guide: guide}
	heap.Init(explored)
	heap.Push(explored, scheme.Root())

	var best *branching.Node
	dominanceBuckets := make(map[string][]*branching.Node)
	result := BeamResult{}
	trimmed := false

	for explored.Len() > 0 {
		select {
		case <-ctx.Done():
			result.Best = best
			return result
		default:
		}

		bi := 0
		for i := 1; i < explored.Len(); i++ {
			if guide(explored.nodes[i]) < guide(explored.nodes[bi]) {
				bi = i
			}
		}
		n := heap.Remove(explored, bi).(*branching.Node)
		result.NodesVisited++

		if dominatedByBucket(n, dominanceBuckets) {
			continue
		}
		addToBucket(n, dominanceBuckets)

		children := scheme.Children(n, directions)
		if len(children) == 0 {
			if best == nil || isBetterLeaf(scheme, n, best) {
				best = n
			}
			continue
		}

		for _, c := range children {
			heap.Push(explored, c)
		}
		for explored.Len() > queueSize {
			heap.Pop(explored)
			trimmed = true
		}
	}

	result.Best = best
	result.Optimal = !trimmed
	return result
}

func isBetterLeaf(scheme *branching.Scheme, a, b *branching.Node) bool {
	sa := scheme.ToSolution(a)
	sb := scheme.ToSolution(b)
	return sa.Better(sb)
}

func bucketKey(n *branching.Node) string {
	key := make([]byte, 0, len(n.ItemCopies)*4)
	for _, c := range n.ItemCopies {
		key = append(key, byte(c), byte(c>>8), byte(c>>16), byte(c>>24))
	}
	return string(key)
}

func dominatedByBucket(n *branching.Node, buckets map[string][]*branching.Node) bool {
	for _, existing := range buckets[bucketKey(n)] {
		if branching.Dominates(existing, n) {
			return true
		}
	}
	return false
}

func addToBucket(n *branching.Node, buckets map[string][]*branching.Node) {
	key := bucketKey(n)
	buckets[key] = append(buckets[key], n)
}
