package gorebase

// Build metadata, overridden at link time:
//
//	go build -ldflags "-X github.com/rebaselabs/go-rebase.REBASE_BUILD_VERSION=$(git rev-parse HEAD)"
var (
	REBASE_VERSION       = "1.0.0"
	REBASE_BUILD_VERSION = "unknown"
)
