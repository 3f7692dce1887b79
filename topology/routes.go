package topology

import (
	"fmt"

	"github.com/offloadnet/offloading-net/model"
	"github.com/offloadnet/offloading-net/route"
	"github.com/rhartert/sparsesets"
	"github.com/rhartert/yagh"
)

// NoRouteError is returned when two nodes that must be routed are not
// connected in the topology.
type NoRouteError struct {
	From int
	To   int
}

func (e *NoRouteError) Error() string {
	return fmt.Sprintf("no route between node %d and node %d", e.From, e.To)
}

// RouteTable holds one shortest route per pair of (vehicle, infrastructure)
// nodes. Routes are kept in the order their pairs were generated so that they
// can be indexed by position.
type RouteTable struct {
	pairs  []Pair
	routes []route.Route
	index  map[Pair]int
}

// Len returns the number of routes in the table.
func (rt *RouteTable) Len() int {
	return len(rt.routes)
}

// At returns the i-th route. Each route goes from the smallest node of its
// pair to the largest.
func (rt *RouteTable) At(i int) route.Route {
	return rt.routes[i]
}

// Pair returns the pair of nodes joined by the i-th route.
func (rt *RouteTable) Pair(i int) Pair {
	return rt.pairs[i]
}

// All returns the routes in pair order.
func (rt *RouteTable) All() []route.Route {
	routes := make([]route.Route, len(rt.routes))
	copy(routes, rt.routes)
	return routes
}

// Pairs returns the pairs of the table in the order they were generated.
func (rt *RouteTable) Pairs() []Pair {
	pairs := make([]Pair, len(rt.pairs))
	copy(pairs, rt.pairs)
	return pairs
}

// Lookup returns the route from u to v. The second returned value is false if
// the pair is not part of the table.
func (rt *RouteTable) Lookup(u int, v int) (route.Route, bool) {
	i, ok := rt.index[NewPair(u, v)]
	if !ok {
		return route.Route{}, false
	}
	r := rt.routes[i]
	if r.Source() != u {
		return r.Reverse(), true
	}
	return r, true
}

// PrecomputeRoutes builds the undirected graph of links and computes the
// shortest route between every vehicle and every infrastructure node.
//
// Pairs are generated as the product of vehicles and infrastructure nodes
// (vehicles first), each pair being sorted so that (u, v) and (v, u) are the
// same pair. A pair is only routed once. Routes minimize the number of hops;
// among routes of equal length, the lexicographically smallest sequence of
// nodes is chosen.
//
// A *NoRouteError is returned if any pair is not connected.
func PrecomputeRoutes(links []model.Link, nodeTypes []int) (*RouteTable, error) {
	t, err := NewTopology(links)
	if err != nil {
		return nil, fmt.Errorf("error building topology: %w", err)
	}
	return PrecomputeRoutesOn(t, nodeTypes)
}

// PrecomputeRoutesOn is PrecomputeRoutes on an already built topology.
func PrecomputeRoutesOn(t *Topology, nodeTypes []int) (*RouteTable, error) {
	if t == nil {
		return nil, fmt.Errorf("topology is nil")
	}

	sources, targets := Partition(nodeTypes)
	nPairs := len(sources) * len(targets)
	rt := &RouteTable{
		pairs:  make([]Pair, 0, nPairs),
		routes: make([]route.Route, 0, nPairs),
		index:  make(map[Pair]int, nPairs),
	}
	for _, s := range sources {
		for _, d := range targets {
			p := NewPair(s, d)
			if _, ok := rt.index[p]; ok {
				continue
			}
			rt.index[p] = len(rt.pairs)
			rt.pairs = append(rt.pairs, p)
		}
	}

	rf := newRouteFinder(t)
	for _, p := range rt.pairs {
		r, err := rf.shortestRoute(p.A, p.B)
		if err != nil {
			return nil, err
		}
		rt.routes = append(rt.routes, r)
	}

	return rt, nil
}

// distances holds the hop count from every node index to a root node. Nodes
// that cannot reach the root are absent from reached and their hop count is
// meaningless.
type distances struct {
	hops    []int
	reached *sparsesets.Set
}

// routeFinder computes shortest routes and caches the distances to each
// target it has already seen.
type routeFinder struct {
	topo  *Topology
	cache map[int]*distances
}

func newRouteFinder(t *Topology) *routeFinder {
	return &routeFinder{
		topo:  t,
		cache: map[int]*distances{},
	}
}

// shortestRoute returns the lexicographically smallest route among the
// shortest routes from src to dst.
//
// The hop count from every node to dst is computed first. The route is then
// built from src by always moving to the smallest neighbor that is one hop
// closer to dst.
func (rf *routeFinder) shortestRoute(src int, dst int) (route.Route, error) {
	if src == dst {
		return route.New(src), nil
	}
	si, okSrc := rf.topo.Index(src)
	di, okDst := rf.topo.Index(dst)
	if !okSrc || !okDst {
		return route.Route{}, &NoRouteError{From: src, To: dst}
	}

	dist := rf.distancesTo(di)
	if !dist.reached.Contains(si) {
		return route.Route{}, &NoRouteError{From: src, To: dst}
	}

	nodes := make([]int, 1, dist.hops[si]+1)
	nodes[0] = src
	for u := si; u != di; {
		for _, a := range rf.topo.Nexts[u] { // ordered by destination
			if v := rf.topo.Arcs[a].To; dist.hops[v] == dist.hops[u]-1 {
				u = v
				break
			}
		}
		nodes = append(nodes, rf.topo.Nodes[u])
	}

	return route.New(nodes...), nil
}

func (rf *routeFinder) distancesTo(root int) *distances {
	if d, ok := rf.cache[root]; ok {
		return d
	}
	d := hopsTo(rf.topo, root)
	rf.cache[root] = d
	return d
}

// hopsTo computes the number of hops from every node index to the node of
// index root with Dijkstra's algorithm where each arc costs one hop. Links
// being undirected, the distance from root to a node is also the distance
// from that node to root.
//
// With unit costs, nodes leave the heap by non-decreasing hop count so the
// first time a node is reached its hop count is final.
func hopsTo(t *Topology, root int) *distances {
	nNodes := len(t.Nexts)
	d := &distances{
		hops:    make([]int, nNodes),
		reached: sparsesets.New(nNodes),
	}

	h := yagh.New[int](nNodes)
	h.Put(root, 0)
	d.reached.Insert(root)

	for h.Size() > 0 {
		entry := h.Pop()
		u, c := entry.Elem, entry.Cost

		for _, a := range t.Nexts[u] {
			v := t.Arcs[a].To
			if d.reached.Contains(v) {
				continue
			}
			d.reached.Insert(v)
			d.hops[v] = c + 1
			h.Put(v, c+1)
		}
	}

	return d
}
