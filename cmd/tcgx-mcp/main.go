package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	hocgmcp "github.com/oshifan/hocgsim/internal/mcp"
)

func main() {
	loadoutFile := flag.String("loadout", "loadout.yaml", "path to Claude's loadout YAML file")
	port := flag.String("port", "9999", "TCP port for human player connection")
	flag.Parse()

	hocgmcp.SetClaudeLoadoutFile(*loadoutFile)
	hocgmcp.SetPort(*port)

	s := server.NewMCPServer("hocgsim", "1.0.0")
	hocgmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
