// Package route provides the representation of routes between two nodes of a
// network.
package route

import (
	"fmt"
	"strings"
)

// Route is an ordered sequence of node IDs going from a source node to a
// target node. It respects the following invariants:
//
//   - Minimum length: 1 (a node routed to itself)
//   - Source node: first element of the sequence
//   - Target node: last element of the sequence
//
// A Route is never modified once created and can be shared freely.
type Route struct {
	nodes []int
}

// New returns a route visiting the given nodes in order. The nodes are copied
// so the caller may reuse the slice. New panics if no node is given.
func New(nodes ...int) Route {
	if len(nodes) == 0 {
		panic("route: a route needs at least one node")
	}
	r := Route{nodes: make([]int, len(nodes))}
	copy(r.nodes, nodes)
	return r
}

// Source returns the first node of the route.
func (r Route) Source() int {
	return r.nodes[0]
}

// Target returns the last node of the route.
func (r Route) Target() int {
	return r.nodes[len(r.nodes)-1]
}

// Length returns the length of the route in terms of nodes.
func (r Route) Length() int {
	return len(r.nodes)
}

// Hops returns the number of links traversed by the route.
func (r Route) Hops() int {
	if len(r.nodes) == 0 {
		return 0
	}
	return len(r.nodes) - 1
}

// Node returns the node at position pos starting from 0 (the source) and
// ending at Length()-1 (the target).
func (r Route) Node(pos int) int {
	return r.nodes[pos]
}

// Nodes returns the sequence of nodes in the route (including the route's
// source and target).
//
// Important: the slice is a view on the route's internal structure and should
// only be used in read-only operations.
func (r Route) Nodes() []int {
	return r.nodes
}

// Reverse returns the same route walked from its target to its source.
func (r Route) Reverse() Route {
	rev := Route{nodes: make([]int, len(r.nodes))}
	for i, n := range r.nodes {
		rev.nodes[len(r.nodes)-1-i] = n
	}
	return rev
}

// Connects returns true if the route goes from u to v or from v to u.
func (r Route) Connects(u int, v int) bool {
	if len(r.nodes) == 0 {
		return false
	}
	s, t := r.Source(), r.Target()
	return (s == u && t == v) || (s == v && t == u)
}

// Linker is implemented by graphs that can tell whether two nodes are
// directly linked.
type Linker interface {
	HasEdge(u int, v int) bool
}

// Walks returns true if every pair of consecutive nodes in the route is
// linked in g.
func (r Route) Walks(g Linker) bool {
	for i := 1; i < len(r.nodes); i++ {
		if !g.HasEdge(r.nodes[i-1], r.nodes[i]) {
			return false
		}
	}
	return true
}

// String returns a string representation of the route as a sequence of nodes
// separated by " -> ". For example: "1 -> 2 -> 3".
func (r Route) String() string {
	if len(r.nodes) == 0 {
		return ""
	}
	sb := strings.Builder{}
	for i := 0; i < len(r.nodes)-1; i++ {
		sb.WriteString(fmt.Sprintf("%d -> ", r.nodes[i]))
	}
	sb.WriteString(fmt.Sprintf("%d", r.nodes[len(r.nodes)-1]))
	return sb.String()
}
