// Package netenv builds the static parameters of a computation offloading
// environment: the network topology, its nodes, the applications and the
// routes between vehicles and infrastructure nodes.
//
// An Environment is built once by the host and is read-only afterwards; it can
// be shared between goroutines.
package netenv

import (
	"fmt"
	"log/slog"

	"github.com/offloadnet/offloading-net/config"
	"github.com/offloadnet/offloading-net/logging"
	"github.com/offloadnet/offloading-net/model"
	"github.com/offloadnet/offloading-net/parser"
	"github.com/offloadnet/offloading-net/route"
	"github.com/offloadnet/offloading-net/topology"
)

// Environment holds the parameters of an offloading network.
type Environment struct {
	topologyName string
	links        []model.Link
	nodes        []model.Node
	apps         []model.Application
	graph        *topology.Topology
	routes       *topology.RouteTable
}

type options struct {
	logger *slog.Logger
}

// Option configures how an Environment is built.
type Option func(*options)

// WithLogger sets the logger used while building the environment.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) *options {
	o := &options{logger: logging.Noop()}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logging.Noop()
	}
	return o
}

// Build reads the tables located by cfg and builds the environment. Missing
// values of cfg are set to their default. Any error is fatal: no environment
// is returned with partial data.
func Build(cfg config.Config, opts ...Option) (*Environment, error) {
	o := newOptions(opts)

	config.ApplyDefaults(&cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	tables, err := config.Resolve(cfg)
	if err != nil {
		return nil, fmt.Errorf("error resolving topology: %w", err)
	}
	o.logger.Info("topology selected",
		slog.String("topology", tables.Topology),
		slog.Bool("default", tables.FellBack))

	links, err := parser.ReadLinks(tables.Links)
	if err != nil {
		return nil, fmt.Errorf("error reading links table %s: %w", tables.Links, err)
	}
	nodes, err := parser.ReadNodes(tables.Nodes)
	if err != nil {
		return nil, fmt.Errorf("error reading nodes table %s: %w", tables.Nodes, err)
	}
	apps, err := parser.ReadApplications(tables.Applications)
	if err != nil {
		return nil, fmt.Errorf("error reading applications table %s: %w", tables.Applications, err)
	}

	return FromTables(tables.Topology, links, nodes, apps, opts...)
}

// FromTables builds the environment from tables that are already loaded. The
// slices are copied.
func FromTables(name string, links []model.Link, nodes []model.Node, apps []model.Application, opts ...Option) (*Environment, error) {
	o := newOptions(opts)

	env := &Environment{
		topologyName: name,
		links:        append([]model.Link(nil), links...),
		nodes:        append([]model.Node(nil), nodes...),
		apps:         append([]model.Application(nil), apps...),
	}

	graph, err := topology.NewTopology(env.links)
	if err != nil {
		return nil, fmt.Errorf("error building topology %s: %w", name, err)
	}
	env.graph = graph

	routes, err := topology.PrecomputeRoutesOn(graph, env.NodeTypes())
	if err != nil {
		return nil, fmt.Errorf("error precomputing routes of topology %s: %w", name, err)
	}
	env.routes = routes

	o.logger.Debug("environment built",
		slog.String("topology", name),
		slog.Int("links", len(env.links)),
		slog.Int("edges", graph.NumEdges()),
		slog.Int("nodes", env.NumNodes()),
		slog.Int("network_nodes", env.NumNetworkNodes()),
		slog.Int("applications", len(env.apps)),
		slog.Int("routes", routes.Len()))

	return env, nil
}

// TopologyName returns the name of the links table the environment was built
// from.
func (env *Environment) TopologyName() string {
	return env.topologyName
}

// Graph returns the undirected graph of the network. It must not be modified.
func (env *Environment) Graph() *topology.Topology {
	return env.graph
}

// Routes returns the precomputed routes.
func (env *Environment) Routes() *topology.RouteTable {
	return env.routes
}

// Route returns the precomputed route from u to v, if any.
func (env *Environment) Route(u int, v int) (route.Route, bool) {
	return env.routes.Lookup(u, v)
}

// NumNodes returns the number of nodes, vehicles included.
func (env *Environment) NumNodes() int {
	return len(env.nodes)
}

// NumNetworkNodes returns the number of nodes of the fixed network, that is
// nodes whose type is lower than model.TypeVehicle.
func (env *Environment) NumNetworkNodes() int {
	n := 0
	for _, node := range env.nodes {
		if node.IsNetwork() {
			n++
		}
	}
	return n
}
