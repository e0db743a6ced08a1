// Package config holds globally available configuration values which are
// either set by compiled-in defaults, read from a TOML config file, or set
// by the embedding host.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// ConfFile is the path to the config file read by Setup. Relative to the
// process working directory.
var ConfFile = "./config.toml"

// LogLevel is the general log level, overridable from the config file.
var LogLevel = 4

// Settings is the global configuration tree, populated by Setup.
var Settings conf

var initialized = false

type conf struct {
	Search  searchConfiguration
	Eval    evalConfiguration
	Variant variantConfiguration
}

// Setup reads the config file (if present) over the compiled-in defaults.
// A missing or malformed file is not fatal: defaults set in each area's
// init() remain in effect.
func Setup() {
	if initialized {
		return
	}
	if _, err := toml.DecodeFile(ConfFile, &Settings); err != nil {
		fmt.Println("config: using compiled-in defaults:", err)
	}
	initialized = true
}
