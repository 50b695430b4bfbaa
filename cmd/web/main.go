package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/oshifan/hocgsim/internal/catalog"
	"github.com/oshifan/hocgsim/internal/web"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port to listen on")
	loadoutFile := flag.String("loadout", "loadout.yaml", "path to a loadout YAML file to browse")
	flag.Parse()

	cat, err := catalog.New(catalog.Builtin())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	srv, err := web.NewServer(cat, *loadoutFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("hocgsim web UI listening on http://localhost:%d", *port)
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
