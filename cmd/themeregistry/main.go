// themeregistry - build, import and serve shadcn-style theme registries
//
// themeregistry copies registry items into a static tree, generates a
// light/dark theme stylesheet and serves items over HTTP.
package main

import (
	"os"

	"github.com/jmylchreest/themeregistry/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
