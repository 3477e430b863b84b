// Package mapdata loads area definitions from YAML map files.
package mapdata

import "embed"

// dataFS holds the built-in world shipped with the binary.
//
//go:embed *.yaml
var dataFS embed.FS

// DefaultWorld is the embedded map file used when no path is configured.
const DefaultWorld = "world.yaml"
