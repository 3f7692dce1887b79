package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/offloadnet/offloading-net/config"
	"github.com/offloadnet/offloading-net/logging"
	"github.com/offloadnet/offloading-net/netenv"
)

var flagConfigFile = flag.String(
	"config",
	"",
	"Path to the YAML config file (optional)",
)

var flagEnvDir = flag.String(
	"env_dir",
	"",
	"Directory holding the environment's tables (overrides the config file)",
)

var flagTopology = flag.String(
	"topology",
	"",
	"Name of the links table (overrides the topology selector)",
)

var flagLogLevel = flag.String(
	"log_level",
	"",
	"Log level: debug, info, warn or error (overrides the config file)",
)

var flagPrintRoutes = flag.Bool(
	"routes",
	false,
	"Print every precomputed route",
)

func validateFlags() error {
	if *flagConfigFile != "" {
		if _, err := os.Stat(*flagConfigFile); err != nil {
			return fmt.Errorf("cannot access config file: %s", err)
		}
	}
	if *flagEnvDir != "" {
		info, err := os.Stat(*flagEnvDir)
		if err != nil {
			return fmt.Errorf("cannot access environment directory: %s", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", *flagEnvDir)
		}
	}
	return nil
}

func loadConfig() config.Config {
	cfg := config.Default()
	if *flagConfigFile != "" {
		var err error
		if cfg, err = config.Load(*flagConfigFile); err != nil {
			log.Fatalf("Error reading config file: %s", err)
		}
	}
	if *flagEnvDir != "" {
		cfg.EnvDir = *flagEnvDir
	}
	if *flagTopology != "" {
		cfg.Topology = *flagTopology
	}
	if *flagLogLevel != "" {
		cfg.Log.Level = *flagLogLevel
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Error validating config: %s", err)
	}
	return cfg
}

func main() {
	flag.Parse()
	if err := validateFlags(); err != nil {
		log.Fatalf("Error validating flags: %s", err)
	}

	cfg := loadConfig()
	logger := logging.New(cfg.Log, os.Stderr)

	start := time.Now()
	env, err := netenv.Build(cfg, netenv.WithLogger(logger))
	if err != nil {
		log.Fatalf("Error building environment: %s", err)
	}

	fmt.Printf("topology:           %s\n", env.TopologyName())
	fmt.Printf("nodes:              %d\n", env.NumNodes())
	fmt.Printf("network nodes:      %d\n", env.NumNetworkNodes())
	fmt.Printf("links:              %d\n", env.Graph().NumEdges())
	fmt.Printf("applications:       %d\n", len(env.AppIDs()))
	fmt.Printf("routes:             %d\n", env.Routes().Len())
	fmt.Printf("build time (ms):    %v\n", time.Since(start).Milliseconds())

	if !*flagPrintRoutes {
		return
	}
	rt := env.Routes()
	for i := 0; i < rt.Len(); i++ {
		r := rt.At(i)
		fmt.Printf("%v\t%d hops\t%s\n", rt.Pair(i), r.Hops(), r)
	}
}
