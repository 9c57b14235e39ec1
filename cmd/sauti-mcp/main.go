// Command sauti-mcp exposes the sauti demo core as MCP tools over stdio.
// Sessions and records live in memory and are gone when the process exits.
package main

import (
	"fmt"
	"os"

	"github.com/sauti-app/sauti/internal/db"
	"github.com/sauti-app/sauti/internal/mcpserver"
)

func main() {
	store, err := db.OpenMemory()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sauti-mcp: open store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	srv := mcpserver.New(store)
	if err := srv.ServeStdio(); err != nil {
		fmt.Fprintf(os.Stderr, "sauti-mcp: %v\n", err)
		os.Exit(1)
	}
}
