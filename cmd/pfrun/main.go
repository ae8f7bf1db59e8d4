// Command pfrun is a headless smoke-test CLI for the tile grid module: it
// loads a PFMAP file into a session.Session and exercises navigation and
// selection against it, printing what it finds.
package main

import "github.com/permafrost-go/tilegrid/cmd/pfrun/cmd"

func main() {
	cmd.Execute()
}
