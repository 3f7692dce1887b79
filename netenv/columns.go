package netenv

import "github.com/offloadnet/offloading-net/model"

// The accessors below return column views of the tables. Each call returns a
// fresh slice that the caller owns.

func column[T any, V any](rows []T, get func(T) V) []V {
	vs := make([]V, len(rows))
	for i, r := range rows {
		vs[i] = get(r)
	}
	return vs
}

// Links returns the links in table order.
func (env *Environment) Links() []model.Link {
	return append([]model.Link(nil), env.links...)
}

// Nodes returns the nodes in table order.
func (env *Environment) Nodes() []model.Node {
	return append([]model.Node(nil), env.nodes...)
}

// Applications returns the applications in table order.
func (env *Environment) Applications() []model.Application {
	return append([]model.Application(nil), env.apps...)
}

// LinkPairs returns the endpoints of every link.
func (env *Environment) LinkPairs() [][2]int {
	return column(env.links, func(l model.Link) [2]int { return [2]int{l.Original, l.Connected} })
}

// LinkRates returns the bitrate of every link.
func (env *Environment) LinkRates() []float64 {
	return column(env.links, func(l model.Link) float64 { return l.Bitrate })
}

// LinkDelays returns the propagation delay of every link.
func (env *Environment) LinkDelays() []float64 {
	return column(env.links, func(l model.Link) float64 { return l.Delay })
}

// NodeTypes returns the type of every node, indexed by node ID - 1.
func (env *Environment) NodeTypes() []int {
	return column(env.nodes, func(n model.Node) int { return n.Type })
}

// NodeClocks returns the clock frequency of every node, indexed by node ID - 1.
func (env *Environment) NodeClocks() []float64 {
	return column(env.nodes, func(n model.Node) float64 { return n.Clock })
}

// NodeCores returns the number of cores of every node, indexed by node ID - 1.
func (env *Environment) NodeCores() []int {
	return column(env.nodes, func(n model.Node) int { return n.Cores })
}

// AppIDs returns the identifier of every application.
func (env *Environment) AppIDs() []int {
	return column(env.apps, func(a model.Application) int { return a.ID })
}

// AppCosts returns the computation cost of every application.
func (env *Environment) AppCosts() []float64 {
	return column(env.apps, func(a model.Application) float64 { return a.Cost })
}

// AppDataIn returns the input data size of every application.
func (env *Environment) AppDataIn() []float64 {
	return column(env.apps, func(a model.Application) float64 { return a.DataIn })
}

// AppDataOut returns the output data size of every application.
func (env *Environment) AppDataOut() []float64 {
	return column(env.apps, func(a model.Application) float64 { return a.DataOut })
}

// AppMaxDelays returns the maximum tolerated delay of every application.
func (env *Environment) AppMaxDelays() []float64 {
	return column(env.apps, func(a model.Application) float64 { return a.MaxDelay })
}

// AppRates returns the request rate of every application.
func (env *Environment) AppRates() []float64 {
	return column(env.apps, func(a model.Application) float64 { return a.Rate })
}

// AppInfo returns the description of every application.
func (env *Environment) AppInfo() []string {
	return column(env.apps, func(a model.Application) string { return a.Info })
}
