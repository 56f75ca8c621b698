// protoq is a small query client for a protocol-plugin daemon. It connects
// to the daemon's socket, loads a configuration and input file, runs a query
// specification and prints the result, mirroring what the monitoring server
// does on a scheduled cycle.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	json "github.com/goccy/go-json"

	"protod.szuro.net/pkg/protocol"
	"protod.szuro.net/pkg/rpc"
)

func main() {

	socket := flag.String("s", "/run/protod/unity.sock", "Socket of the protocol daemon")
	configPath := flag.String("c", "", "Path of the raw config file (JSON)")
	inputPath := flag.String("i", "", "Path of the input file (JSON)")
	queryArg := flag.String("q", "", "Query spec (JSON), e.g. '{\"Disks\":[\"name\"]}'")
	show := flag.Bool("show", false, "Describe the query instead of running it")
	tables := flag.Bool("tables", false, "List the tables the input defines")
	fields := flag.Bool("fields", false, "List the fields the input defines")
	flag.Parse()

	conn, err := net.Dial("unix", *socket)
	if err != nil {
		fatalf("cannot connect to %s: %v", *socket, err)
	}
	defer conn.Close()
	client := rpc.NewClient(conn, nil)

	name, err := client.Protocol()
	if err != nil {
		fatalf("protocol request failed: %v", err)
	}
	version, err := client.Version()
	if err != nil {
		fatalf("version request failed: %v", err)
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", name, version)

	if *inputPath == "" {
		fatalf("an input file is required")
	}
	input, err := os.ReadFile(*inputPath)
	if err != nil {
		fatalf("cannot read input: %v", err)
	}
	inputRef, err := client.LoadInputs([]json.RawMessage{input})
	if err != nil {
		fatalf("load_inputs failed: %v", err)
	}
	defer client.UnloadInputs(inputRef)

	switch {
	case *tables:
		specs, err := client.GetTables(inputRef)
		if err != nil {
			fatalf("get_tables failed: %v", err)
		}
		dump(specs)
		return
	case *fields:
		specs, err := client.GetFields(inputRef)
		if err != nil {
			fatalf("get_fields failed: %v", err)
		}
		dump(specs)
		return
	}

	var qry protocol.QuerySpec
	if err := json.Unmarshal([]byte(*queryArg), &qry); err != nil {
		fatalf("cannot parse query spec: %v", err)
	}

	if *show {
		desc, err := client.ShowQueries(qry, inputRef, "")
		if err != nil {
			fatalf("show_queries failed: %v", err)
		}
		fmt.Print(desc)
		return
	}

	if *configPath == "" {
		fatalf("a config file is required to run queries")
	}
	config, err := os.ReadFile(*configPath)
	if err != nil {
		fatalf("cannot read config: %v", err)
	}
	configRef, err := client.LoadConfig(config)
	if err != nil {
		fatalf("load_config failed: %v", err)
	}
	defer client.UnloadConfig(configRef)

	result, err := client.RunQueries(qry, inputRef, configRef)
	if err != nil {
		fatalf("run_queries failed: %v", err)
	}
	dump(result)
}

func dump(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatalf("cannot encode result: %v", err)
	}
	fmt.Println(string(out))
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
