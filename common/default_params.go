package common

import (
	"os"
	"os/user"
	"path/filepath"
)

// Fallback endpoint for the JSON-RPC server when the config names none.
const (
	DefaultHTTPHost = "localhost"
	DefaultHTTPPort = 48450
)

// DefaultDataDir resolves to $HOME/.grebase, or the empty string when
// no home directory can be determined.
func DefaultDataDir() string {
	if home := HomeDir(); home != "" {
		return filepath.Join(home, ".grebase")
	}
	return ""
}

func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
