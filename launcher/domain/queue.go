package domain

import (
	"fmt"
)

// HostQueue is the ordered list of nodes to start on one compute host, with
// a cursor marking how many of them have been started.
type HostQueue struct {
	ComputeId string
	Nodes     []Node
	cursor    int
}

func NewHostQueue(computeId string, nodes ...Node) *HostQueue {
	return &HostQueue{ComputeId: computeId, Nodes: nodes}
}

// Head returns the next node to start, false once the queue is exhausted.
func (q *HostQueue) Head() (Node, bool) {
	if q.Done() {
		return Node{}, false
	}
	return q.Nodes[q.cursor], true
}

// Advance moves the cursor past the head node.
func (q *HostQueue) Advance() {
	if !q.Done() {
		q.cursor++
	}
}

func (q *HostQueue) Done() bool {
	return q.cursor >= len(q.Nodes)
}

// Started returns the nodes the cursor has moved past.
func (q *HostQueue) Started() []Node {
	return q.Nodes[:q.cursor]
}

func (q *HostQueue) Remaining() int {
	return len(q.Nodes) - q.cursor
}

func (q *HostQueue) String() string {
	names := make([]string, len(q.Nodes))
	for i, n := range q.Nodes {
		names[i] = n.Name
	}
	return fmt.Sprintf("%s: %v (%d/%d started)", q.ComputeId, names, q.cursor, len(q.Nodes))
}
