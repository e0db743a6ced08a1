// Package logging configures the shared op/go-logging backend used by every
// package in this module and hands out named loggers.
package logging

import (
	"os"
	"sync"

	"github.com/op/go-logging"
)

var (
	once      sync.Once
	formatter = logging.MustStringFormatter(
		`%{time:15:04:05.000} %{shortfile}:%{shortfunc} %{level:7s}: %{message}`,
	)
)

func setupBackend(level logging.Level) {
	backend := logging.NewLogBackend(os.Stdout, "", 0)
	formatted := logging.NewBackendFormatter(backend, formatter)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(level, "")
	logging.SetBackend(leveled)
}

// GetLog returns a logger for name, configuring the shared backend on first
// use. Level is controlled globally via SetLevel.
func GetLog(name string) *logging.Logger {
	once.Do(func() { setupBackend(logging.INFO) })
	return logging.MustGetLogger(name)
}

// SetLevel changes the module-wide log level. Safe to call before the first
// GetLog or at any time afterwards.
func SetLevel(level logging.Level) {
	once.Do(func() { setupBackend(level) })
	logging.SetLevel(level, "")
}
