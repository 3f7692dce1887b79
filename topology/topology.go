// Package topology builds the undirected graph of an offloading network and
// precomputes the routes between its vehicles and its infrastructure nodes.
package topology

import (
	"fmt"
	"slices"
	"sort"

	"github.com/offloadnet/offloading-net/model"
)

// Arc is one direction of an undirected link. From and To are node indices
// (see Topology.Nodes) and Link is the index of the link in Topology.Links.
type Arc struct {
	From int
	To   int
	Link int
}

// Topology represents the topology of a network as an undirected graph. Each
// link is stored once in Links and traversable in both directions through
// two arcs (a self loop only has one).
//
// Nodes are stored densely: Nodes lists the node IDs in increasing order and
// every other field refers to a node by its index in Nodes.
type Topology struct {
	Nodes []int

	// Nexts[i] lists the arcs leaving node Nodes[i], ordered by destination.
	Nexts [][]int
	Arcs  []Arc
	Links []model.Link
}

// NewTopology creates a new topology with the specified links. Node IDs must
// be non-negative. Links joining the same two nodes are merged: only the first
// one is kept.
func NewTopology(links []model.Link) (*Topology, error) {
	ids := make([]int, 0, 2*len(links))
	for i, l := range links {
		if l.Original < 0 || l.Connected < 0 {
			return nil, fmt.Errorf("link %d has a negative node ID: (%d, %d)", i, l.Original, l.Connected)
		}
		ids = append(ids, l.Original, l.Connected)
	}
	sort.Ints(ids)
	ids = slices.Compact(ids)

	t := &Topology{
		Nodes: ids,
		Nexts: make([][]int, len(ids)),
		Arcs:  make([]Arc, 0, 2*len(links)),
		Links: make([]model.Link, 0, len(links)),
	}

	seen := make(map[Pair]bool, len(links))
	for _, l := range links {
		p := NewPair(l.Endpoints())
		if seen[p] {
			continue
		}
		seen[p] = true

		li := len(t.Links)
		t.Links = append(t.Links, l)
		from, _ := t.Index(l.Original)
		to, _ := t.Index(l.Connected)
		t.addArc(from, to, li)
		if from != to {
			t.addArc(to, from, li)
		}
	}

	// Indices follow IDs so sorting by index also sorts by ID.
	for u := range t.Nexts {
		nexts := t.Nexts[u]
		sort.Slice(nexts, func(i, j int) bool {
			return t.Arcs[nexts[i]].To < t.Arcs[nexts[j]].To
		})
	}

	return t, nil
}

func (t *Topology) addArc(from int, to int, link int) {
	t.Nexts[from] = append(t.Nexts[from], len(t.Arcs))
	t.Arcs = append(t.Arcs, Arc{From: from, To: to, Link: link})
}

// Index returns the index of the node with the given ID. The second returned
// value is false if no link has the node as endpoint.
func (t *Topology) Index(id int) (int, bool) {
	i := sort.SearchInts(t.Nodes, id)
	if i < len(t.Nodes) && t.Nodes[i] == id {
		return i, true
	}
	return -1, false
}

// HasNode returns true if the node is the endpoint of at least one link.
func (t *Topology) HasNode(id int) bool {
	_, ok := t.Index(id)
	return ok
}

// NumNodes returns the number of nodes that are the endpoint of at least one
// link.
func (t *Topology) NumNodes() int {
	return len(t.Nodes)
}

// NumEdges returns the number of distinct links in the topology.
func (t *Topology) NumEdges() int {
	return len(t.Links)
}

// Neighbors returns the IDs of the nodes directly linked to u in increasing
// order.
func (t *Topology) Neighbors(u int) []int {
	i, ok := t.Index(u)
	if !ok {
		return nil
	}
	ns := make([]int, len(t.Nexts[i]))
	for k, a := range t.Nexts[i] {
		ns[k] = t.Nodes[t.Arcs[a].To]
	}
	return ns
}

// HasEdge returns true if u and v are directly linked.
func (t *Topology) HasEdge(u int, v int) bool {
	i, ok := t.Index(u)
	if !ok {
		return false
	}
	j, ok := t.Index(v)
	if !ok {
		return false
	}
	nexts := t.Nexts[i]
	k := sort.Search(len(nexts), func(k int) bool {
		return t.Arcs[nexts[k]].To >= j
	})
	return k < len(nexts) && t.Arcs[nexts[k]].To == j
}

// Pair is an unordered pair of nodes stored in canonical order (A <= B).
type Pair struct {
	A int
	B int
}

// NewPair returns the canonical pair made of u and v.
func NewPair(u int, v int) Pair {
	if u > v {
		u, v = v, u
	}
	return Pair{A: u, B: v}
}

func (p Pair) String() string {
	return fmt.Sprintf("(%d, %d)", p.A, p.B)
}

// Partition splits the nodes into vehicles (sources) and infrastructure nodes
// (targets). The ID of a node is its position in nodeTypes plus one.
func Partition(nodeTypes []int) (sources []int, targets []int) {
	sources = []int{}
	targets = []int{}
	for i, typ := range nodeTypes {
		if typ == model.TypeVehicle {
			sources = append(sources, i+1)
		} else {
			targets = append(targets, i+1)
		}
	}
	return sources, targets
}
