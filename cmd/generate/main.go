// Command generate runs the listing generators once against a listing JSON
// document and prints the payload the HTTP API would return.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
