// Package model defines the static records describing an offloading network:
// its links, its nodes and the applications that can be offloaded.
package model

// TypeVehicle is the node type of mobile nodes (vehicles). Every other type
// denotes a fixed infrastructure node.
const TypeVehicle = 4

// Link is an undirected connection between two nodes.
type Link struct {
	Original  int
	Connected int
	Bitrate   float64
	Delay     float64
}

// Endpoints returns the identifiers of both ends of the link.
func (l Link) Endpoints() (int, int) {
	return l.Original, l.Connected
}

// Node describes a computing node. IDs start at 1 and follow the order in
// which nodes are listed.
type Node struct {
	ID    int
	Type  int
	Clock float64
	Cores int
}

// IsVehicle returns true if the node is a mobile node.
func (n Node) IsVehicle() bool {
	return n.Type == TypeVehicle
}

// IsNetwork returns true if the node belongs to the fixed network, that is
// its type is strictly lower than TypeVehicle.
func (n Node) IsNetwork() bool {
	return n.Type < TypeVehicle
}

// Application is a kind of task that vehicles can offload to the network.
type Application struct {
	ID       int
	Cost     float64
	DataIn   float64
	DataOut  float64
	MaxDelay float64
	Rate     float64
	Info     string
}
