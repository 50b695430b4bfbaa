package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tcgxnet "github.com/oshifan/hocgsim/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "host":
		runHost(os.Args[2:])
	case "join":
		runJoin(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  hocgsim host [--loadout FILE] [--port P] [--seed N]")
	fmt.Println("  hocgsim join [--loadout FILE] [--addr ADDR]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  host    Start a match server and play as Player One")
	fmt.Println("  join    Connect to a match server and play as Player Two")
}

func runHost(args []string) {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	loadoutFile := fs.String("loadout", "loadout.yaml", "path to this player's loadout file")
	port := fs.String("port", "9000", "TCP port to listen on")
	seed := fs.Int64("seed", 1, "match RNG seed")
	fs.Parse(args)

	srv := &tcgxnet.Server{
		LoadoutFile: *loadoutFile,
		Port:        *port,
		Seed:        *seed,
	}

	if err := srv.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runJoin(args []string) {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	loadoutFile := fs.String("loadout", "loadout.yaml", "path to this player's loadout file")
	addr := fs.String("addr", "localhost:9000", "server address to connect to")
	fs.Parse(args)

	if err := tcgxnet.Connect(context.Background(), *addr, *loadoutFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
