// Command subpubdemo wires a Broker end to end for manual testing: start a
// local broker, optionally bridged to Redis, subscribe, and publish.
package main

import (
	"fmt"
	"os"

	"github.com/kestrelbus/subpub/cmd/subpubdemo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
