package main

import (
	"github.com/vigor-health/vigor/internal/api"
	"github.com/vigor-health/vigor/internal/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	api.Version = version
	cli.Execute(version)
}
